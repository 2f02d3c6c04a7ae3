package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Auth      Auth      `envPrefix:"AUTH_"`
	Razorpay  Razorpay  `envPrefix:"RAZORPAY_"`
	Braintree Braintree `envPrefix:"BRAINTREE_"`
	Order     Order     `envPrefix:"ORDER_"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type Order struct {
	Currency string `env:"CURRENCY" envDefault:"INR"`
	// Fulfillment stages; the first entry is the stage new orders start in.
	Stages []string `env:"STAGES" envDefault:"Order Placed,Packing,Shipped,Out for delivery,Delivered"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

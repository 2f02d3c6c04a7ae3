package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCOD       PaymentMethod = "COD"
	PaymentMethodRazorpay  PaymentMethod = "Razorpay"
	PaymentMethodBraintree PaymentMethod = "Braintree"
)

// Address is the shipping address snapshot embedded in an order.
type Address struct {
	Name    string `gorm:"size:128" json:"name"`
	Street  string `gorm:"size:256" json:"street"`
	City    string `gorm:"size:128" json:"city"`
	State   string `gorm:"size:128" json:"state"`
	Country string `gorm:"size:128" json:"country"`
	Zipcode string `gorm:"size:32" json:"zipcode"`
	Phone   string `gorm:"size:32" json:"phone"`
}

type Order struct {
	// Storage identifier, also the receipt token sent to the gateway.
	ID string `gorm:"primaryKey;size:36;not null" json:"id"`
	// Human-readable order code: ORD-YYYYMMDD-XXXXXX.
	PurchaseID string `gorm:"size:32;uniqueIndex;not null" json:"purchaseId"`
	UserID     string `gorm:"size:64;index;not null" json:"userId"`

	Items   []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items"`
	Amount  float64     `gorm:"not null" json:"amount"`
	Address Address     `gorm:"embedded;embeddedPrefix:addr_" json:"address"`

	PaymentMethod PaymentMethod `gorm:"size:16;not null" json:"paymentMethod"`
	// Flips false -> true through the verification path only.
	Payment bool `gorm:"not null" json:"payment"`

	Status      string `gorm:"size:32;index;not null" json:"status"`
	AdminRemark string `gorm:"size:512" json:"adminRemark"`

	CreatedAt       time.Time `json:"date"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`
}

// OrderItem is a denormalized snapshot of a product at purchase time,
// not a live reference into a catalog.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"size:36;index;not null" json:"-"`
	ProductID string  `gorm:"size:64;not null" json:"productId"`
	Name      string  `gorm:"size:256" json:"name"`
	Image     string  `gorm:"size:512" json:"image"`
	Size      string  `gorm:"size:16" json:"size"`
	Quantity  int32   `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

type UserCart struct {
	UserID string `gorm:"primaryKey;size:64"`
	// Serialized cart snapshot, "{}" when empty.
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

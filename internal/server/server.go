package server

import (
	"context"
	"net/http"

	"storefront-api/internal/auth"
	"storefront-api/internal/handler"
	"storefront-api/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo         *echo.Echo
	orderHandler *handler.OrderHandler
	verifier     *auth.Verifier
}

func NewServer(orderHandler *handler.OrderHandler, verifier *auth.Verifier, m *metrics.Metrics, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Working")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	s := &Server{
		echo:         e,
		orderHandler: orderHandler,
		verifier:     verifier,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	order := api.Group("/order")

	// -------- user routes --------
	user := order.Group("", auth.RequireUser(s.verifier))
	user.POST("/place", s.orderHandler.PlaceOrder)
	user.POST("/razorpay", s.orderHandler.PlaceOrderRazorpay)
	user.POST("/verifyRazorpay", s.orderHandler.VerifyRazorpay)
	user.POST("/braintree", s.orderHandler.PlaceOrderBraintree)
	user.POST("/userorders", s.orderHandler.UserOrders)

	// -------- admin routes --------
	admin := order.Group("", auth.RequireAdmin(s.verifier))
	admin.POST("/list", s.orderHandler.AllOrders)
	admin.POST("/status", s.orderHandler.UpdateStatus)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router for transport tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

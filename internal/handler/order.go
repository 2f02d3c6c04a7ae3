package handler

import (
	"errors"
	"net/http"

	"storefront-api/internal/auth"
	"storefront-api/internal/dto"
	"storefront-api/internal/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// Every endpoint answers 200 with {success,...}; errors ride in the envelope.
func (h *OrderHandler) fail(c echo.Context, err error) error {
	if errors.Is(err, service.ErrPersistenceFailure) || errors.Is(err, service.ErrGatewayUnavailable) {
		h.logger.Error("order request failed", zap.Error(err))
	}
	return c.JSON(http.StatusOK, dto.Fail(errorMessage(err)))
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrPaymentVerificationFailed),
		errors.Is(err, service.ErrPaymentFailed):
		return "Payment Failed"
	case errors.Is(err, service.ErrOrderNotFound):
		return "Order not found"
	case errors.Is(err, service.ErrGatewayUnavailable):
		return "Payment service unavailable. Please try again"
	case errors.Is(err, service.ErrPersistenceFailure):
		return "Something went wrong. Please try again"
	default:
		return err.Error()
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, dto.Fail("invalid request body"))
	}

	// The token subject wins over whatever userId the body carries.
	userID := auth.IdentityFrom(c).Subject

	if _, err := h.orderService.PlaceOrder(ctx, userID, req.Items, req.Amount, req.Address); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, dto.OK("Order Placed Successfully"))
}

func (h *OrderHandler) PlaceOrderRazorpay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, dto.Fail("invalid request body"))
	}

	userID := auth.IdentityFrom(c).Subject

	gatewayOrder, err := h.orderService.PlaceOrderRazorpay(ctx, userID, req.Items, req.Amount, req.Address)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, &dto.GatewayOrderResponse{
		Success: true,
		Order:   gatewayOrder,
	})
}

func (h *OrderHandler) VerifyRazorpay(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.VerifyRazorpayRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, dto.Fail("invalid request body"))
	}

	userID := auth.IdentityFrom(c).Subject

	err := h.orderService.VerifyRazorpay(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, userID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, dto.OK("Payment Successful"))
}

func (h *OrderHandler) PlaceOrderBraintree(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.BraintreeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, dto.Fail("invalid request body"))
	}

	userID := auth.IdentityFrom(c).Subject

	if _, err := h.orderService.PlaceOrderBraintree(ctx, userID, req.Items, req.Amount, req.Address, req.PaymentNonce); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, dto.OK("Order Placed Successfully"))
}

func (h *OrderHandler) UserOrders(c echo.Context) error {
	ctx := c.Request().Context()

	// Scope is always the authenticated subject, never the body.
	userID := auth.IdentityFrom(c).Subject

	orders, err := h.orderService.UserOrders(ctx, userID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, &dto.OrdersResponse{
		Success: true,
		Orders:  orders,
	})
}

func (h *OrderHandler) AllOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.AllOrders(ctx)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, &dto.OrdersResponse{
		Success: true,
		Orders:  orders,
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, dto.Fail("invalid request body"))
	}

	if err := h.orderService.UpdateStatus(ctx, req.OrderID, req.Status, req.AdminRemark); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, dto.OK("Status Updated Successfully"))
}

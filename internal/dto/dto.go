package dto

import (
	"storefront-api/internal/client"
	"storefront-api/internal/model"
)

type OrderItemInput struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
}

type PlaceOrderRequest struct {
	UserID  string           `json:"userId"`
	Items   []OrderItemInput `json:"items"`
	Amount  float64          `json:"amount"`
	Address *model.Address   `json:"address"`
}

type BraintreeOrderRequest struct {
	PlaceOrderRequest
	PaymentNonce string `json:"paymentNonce"`
}

type VerifyRazorpayRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	UserID            string `json:"userId"`
}

type UserOrdersRequest struct {
	UserID string `json:"userId"`
}

type UpdateStatusRequest struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	AdminRemark string `json:"adminRemark"`
}

// Response is the uniform envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type OrdersResponse struct {
	Success bool          `json:"success"`
	Orders  []model.Order `json:"orders"`
}

type GatewayOrderResponse struct {
	Success bool                 `json:"success"`
	Order   *client.GatewayOrder `json:"order"`
}

func OK(message string) *Response {
	return &Response{Success: true, Message: message}
}

func Fail(message string) *Response {
	return &Response{Success: false, Message: message}
}

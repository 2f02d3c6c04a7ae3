package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/dto"
	"storefront-api/internal/metrics"
	"storefront-api/internal/model"
	"storefront-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	// PlaceOrder creates a cash-on-delivery order and clears the buyer's cart.
	PlaceOrder(ctx context.Context, userID string, items []dto.OrderItemInput, amount float64, address *model.Address) (*model.Order, error)
	// PlaceOrderRazorpay creates an unpaid order and a remote payment intent
	// for it; the buyer completes payment client-side and the gateway tokens
	// come back through VerifyRazorpay.
	PlaceOrderRazorpay(ctx context.Context, userID string, items []dto.OrderItemInput, amount float64, address *model.Address) (*client.GatewayOrder, error)
	VerifyRazorpay(ctx context.Context, remoteOrderID, remotePaymentID, signature, userID string) error
	// PlaceOrderBraintree charges a client payment nonce synchronously and
	// marks the order paid in the same request.
	PlaceOrderBraintree(ctx context.Context, userID string, items []dto.OrderItemInput, amount float64, address *model.Address, nonce string) (*model.Order, error)
	UserOrders(ctx context.Context, userID string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, status, remark string) error
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	razorpay  client.RazorpayClient
	braintree client.BraintreeClient

	razorpaySecret []byte
	currency       string
	stages         []string

	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	razorpayClient client.RazorpayClient,
	braintreeClient client.BraintreeClient,
	cfg *config.Config,
	logger *zap.Logger,
	m *metrics.Metrics,
) OrderService {
	return &orderServiceImpl{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		razorpay:       razorpayClient,
		braintree:      braintreeClient,
		razorpaySecret: []byte(cfg.Razorpay.KeySecret),
		currency:       cfg.Order.Currency,
		stages:         cfg.Order.Stages,
		logger:         logger,
		metrics:        m,
	}
}

// generatePurchaseID builds the human-readable order code, distinct from the
// storage identifier the gateway sees as receipt.
func generatePurchaseID(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), 100000+rand.Intn(900000))
}

func (s *orderServiceImpl) buildOrder(userID string, items []dto.OrderItemInput, amount float64, address *model.Address, method model.PaymentMethod) (*model.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidRequest)
	}
	if address == nil {
		return nil, fmt.Errorf("%w: delivery address is required", ErrInvalidRequest)
	}

	// The client-submitted amount stays authoritative (it may include a
	// delivery fee), but an amount below the line-item sum is rejected.
	sum := decimal.Zero
	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrInvalidRequest)
		}
		sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt32(item.Quantity)))

		orderItems[i] = model.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	if decimal.NewFromFloat(amount).LessThan(sum) {
		return nil, fmt.Errorf("%w: amount below line item total", ErrInvalidRequest)
	}

	now := time.Now()
	return &model.Order{
		ID:              uuid.NewString(),
		PurchaseID:      generatePurchaseID(now),
		UserID:          userID,
		Items:           orderItems,
		Amount:          amount,
		Address:         *address,
		PaymentMethod:   method,
		Payment:         false,
		Status:          s.stages[0],
		CreatedAt:       now,
		StatusUpdatedAt: now,
	}, nil
}

func (s *orderServiceImpl) PlaceOrder(ctx context.Context, userID string, items []dto.OrderItemInput, amount float64, address *model.Address) (*model.Order, error) {
	order, err := s.buildOrder(userID, items, amount, address, model.PaymentMethodCOD)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: store order: %v", ErrPersistenceFailure, err)
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: clear cart: %v", ErrPersistenceFailure, err)
	}

	s.metrics.OrdersPlaced.WithLabelValues(string(model.PaymentMethodCOD)).Inc()
	s.logger.Info("order placed",
		zap.String("purchase_id", order.PurchaseID),
		zap.String("user_id", userID),
		zap.String("method", string(order.PaymentMethod)),
	)

	return order, nil
}

func (s *orderServiceImpl) PlaceOrderRazorpay(ctx context.Context, userID string, items []dto.OrderItemInput, amount float64, address *model.Address) (*client.GatewayOrder, error) {
	order, err := s.buildOrder(userID, items, amount, address, model.PaymentMethodRazorpay)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: store order: %v", ErrPersistenceFailure, err)
	}

	// The order's storage id rides along as the gateway receipt so the
	// verification callback can be joined back to it.
	gatewayOrder, err := s.razorpay.CreateOrder(ctx, toPaise(amount), s.currency, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrGatewayUnavailable, err)
	}

	s.metrics.OrdersPlaced.WithLabelValues(string(model.PaymentMethodRazorpay)).Inc()
	s.logger.Info("order placed, awaiting gateway payment",
		zap.String("purchase_id", order.PurchaseID),
		zap.String("user_id", userID),
		zap.String("gateway_order_id", gatewayOrder.ID),
	)

	return gatewayOrder, nil
}

func (s *orderServiceImpl) VerifyRazorpay(ctx context.Context, remoteOrderID, remotePaymentID, signature, userID string) error {
	if remoteOrderID == "" || remotePaymentID == "" || signature == "" {
		return fmt.Errorf("%w: missing gateway tokens", ErrInvalidRequest)
	}

	// The gateway signs "<order_id>|<payment_id>" with the shared key secret.
	mac := hmac.New(sha256.New, s.razorpaySecret)
	mac.Write([]byte(remoteOrderID + "|" + remotePaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		s.metrics.PaymentVerifications.WithLabelValues(metrics.VerificationSignatureMismatch).Inc()
		s.logger.Warn("payment signature mismatch",
			zap.String("gateway_order_id", remoteOrderID),
			zap.String("user_id", userID),
		)
		return ErrPaymentVerificationFailed
	}

	// The signature only proves the tokens were issued by the gateway; the
	// settlement state must come from an authoritative re-query.
	gatewayOrder, err := s.razorpay.FetchOrder(ctx, remoteOrderID)
	if err != nil {
		s.metrics.PaymentVerifications.WithLabelValues(metrics.VerificationError).Inc()
		return fmt.Errorf("%w: fetch gateway order: %v", ErrGatewayUnavailable, err)
	}

	switch gatewayOrder.Status {
	case "paid", "attempted":
		if err := s.orderRepo.MarkPaid(ctx, gatewayOrder.Receipt); err != nil {
			s.metrics.PaymentVerifications.WithLabelValues(metrics.VerificationError).Inc()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no order for receipt %s", ErrOrderNotFound, gatewayOrder.Receipt)
			}
			return fmt.Errorf("%w: mark order paid: %v", ErrPersistenceFailure, err)
		}

		if err := s.cartRepo.Clear(ctx, userID); err != nil {
			return fmt.Errorf("%w: clear cart: %v", ErrPersistenceFailure, err)
		}

		s.metrics.PaymentVerifications.WithLabelValues(metrics.VerificationOK).Inc()
		s.logger.Info("gateway payment confirmed",
			zap.String("gateway_order_id", remoteOrderID),
			zap.String("order_id", gatewayOrder.Receipt),
		)
		return nil
	default:
		s.metrics.PaymentVerifications.WithLabelValues(metrics.VerificationPaymentFailed).Inc()
		return fmt.Errorf("%w: gateway reports status %q", ErrPaymentFailed, gatewayOrder.Status)
	}
}

func (s *orderServiceImpl) PlaceOrderBraintree(ctx context.Context, userID string, items []dto.OrderItemInput, amount float64, address *model.Address, nonce string) (*model.Order, error) {
	if nonce == "" {
		return nil, fmt.Errorf("%w: payment nonce is required", ErrInvalidRequest)
	}

	order, err := s.buildOrder(userID, items, amount, address, model.PaymentMethodBraintree)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: store order: %v", ErrPersistenceFailure, err)
	}

	txnID, err := s.braintree.ChargeNonce(ctx, nonce, decimal.NewFromFloat(amount))
	if err != nil {
		// Fail closed: the order stays unpaid whatever the charge failure was.
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	if err := s.orderRepo.MarkPaid(ctx, order.ID); err != nil {
		return nil, fmt.Errorf("%w: mark order paid: %v", ErrPersistenceFailure, err)
	}
	order.Payment = true

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: clear cart: %v", ErrPersistenceFailure, err)
	}

	s.metrics.OrdersPlaced.WithLabelValues(string(model.PaymentMethodBraintree)).Inc()
	s.logger.Info("order placed and charged",
		zap.String("purchase_id", order.PurchaseID),
		zap.String("user_id", userID),
		zap.String("transaction_id", txnID),
	)

	return order, nil
}

func (s *orderServiceImpl) UserOrders(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list user orders: %v", ErrPersistenceFailure, err)
	}
	return orders, nil
}

func (s *orderServiceImpl) AllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", ErrPersistenceFailure, err)
	}
	return orders, nil
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID, status, remark string) error {
	if orderID == "" || status == "" {
		return fmt.Errorf("%w: order id and status are required", ErrInvalidRequest)
	}
	if !s.validStage(status) {
		return fmt.Errorf("%w: unknown fulfillment status %q", ErrInvalidRequest, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, remark); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return fmt.Errorf("%w: update status: %v", ErrPersistenceFailure, err)
	}

	s.metrics.StatusUpdates.Inc()
	s.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", status),
	)
	return nil
}

// Stages may be applied in any order; only membership is checked.
func (s *orderServiceImpl) validStage(status string) bool {
	for _, stage := range s.stages {
		if stage == status {
			return true
		}
	}
	return false
}

// toPaise converts a rupee amount to minor currency units.
func toPaise(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

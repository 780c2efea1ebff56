package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"butik/internal/events"
	"butik/internal/models"
	"butik/internal/payment"
	"butik/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderRecorder receives checkout and payment counts.
type OrderRecorder interface {
	IncOrdersCreated()
	IncPayment(result string)
}

// CheckoutResult is what the client needs to open the payment widget.
type CheckoutResult struct {
	OrderID         string `json:"orderId"`
	RazorpayOrderID string `json:"razorpayOrderId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	KeyID           string `json:"keyId"`
}

// VerifyPaymentInput is the payment callback forwarded by the client.
type VerifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	OrderID           string `json:"orderId"`
}

// OrderService drives checkout, payment verification and status changes.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	gateway   payment.Gateway
	publisher events.Publisher
	recorder  OrderRecorder
	currency  string
	log       *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	gateway payment.Gateway,
	publisher events.Publisher,
	recorder OrderRecorder,
	currency string,
	log *zap.Logger,
) *OrderService {
	if currency == "" {
		currency = "INR"
	}
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		gateway:   gateway,
		publisher: publisher,
		recorder:  recorder,
		currency:  currency,
		log:       log,
	}
}

// Checkout turns the caller's cart into a pending order and opens a provider
// transaction for its total. The order and its items are written as separate
// statements; if the provider call fails they stay behind as a pending order.
// The cart is left as is until payment is verified.
func (s *OrderService) Checkout(ctx context.Context, userID string, shipping models.ShippingDetails) (*CheckoutResult, error) {
	lines, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	for _, line := range lines {
		if line.Product != nil {
			items = append(items, line)
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := Subtotal(items)
	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		ShippingDetails: shipping,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	for _, line := range items {
		item := &models.OrderItem{
			OrderID:      order.ID,
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductImage: line.Product.ImageURL,
			Price:        line.Product.Price,
			Quantity:     line.Quantity,
			Size:         line.Size,
			Color:        line.Color,
		}
		if err := s.orderRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	s.recorder.IncOrdersCreated()
	s.emit(ctx, events.OrderCreated, order)

	amount := AmountInMinorUnits(total)
	providerOrder, err := s.gateway.CreateOrder(amount, s.currency, Receipt(order.ID))
	if err != nil {
		s.log.Error("provider order creation failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		if errors.Is(err, payment.ErrNotConfigured) {
			return nil, ErrPaymentNotConfigured
		}
		return nil, fmt.Errorf("failed to create provider order for %s: %w", order.ID, err)
	}

	if err := s.orderRepo.SetProviderOrderID(order.ID, providerOrder.ID); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		OrderID:         order.ID,
		RazorpayOrderID: providerOrder.ID,
		Amount:          providerOrder.Amount,
		Currency:        providerOrder.Currency,
		KeyID:           s.gateway.KeyID(),
	}, nil
}

// VerifyPayment checks the callback signature and marks the order paid.
// On success the order owner's whole cart is cleared, including lines added
// after checkout.
func (s *OrderService) VerifyPayment(ctx context.Context, caller Caller, in VerifyPaymentInput) (*models.Order, error) {
	if !s.gateway.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		s.recorder.IncPayment("invalid_signature")
		return nil, ErrInvalidSignature
	}

	var (
		order *models.Order
		err   error
	)
	if in.OrderID != "" {
		order, err = s.orderRepo.GetByID(in.OrderID)
	} else {
		order, err = s.orderRepo.GetByProviderOrderID(in.RazorpayOrderID)
	}
	if err != nil {
		return nil, err
	}

	if order.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if order.RazorpayOrderID != in.RazorpayOrderID {
		s.recorder.IncPayment("order_mismatch")
		return nil, fmt.Errorf("%w: payment does not belong to order %s", ErrValidation, order.ID)
	}

	if err := s.orderRepo.MarkPaid(order.ID, in.RazorpayPaymentID, in.RazorpaySignature, time.Now()); err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteAllByUser(order.UserID); err != nil {
		return nil, err
	}

	s.recorder.IncPayment("verified")

	paid, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.OrderPaid, paid)
	return paid, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetOrder returns an order with its items if the caller owns it or is an admin.
func (s *OrderService) GetOrder(caller Caller, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return order, nil
}

// UpdateStatus overwrites an order's status. Any status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, events.OrderStatusChanged, order)
	return order, nil
}

// emit publishes an order event. Failures are logged and never returned.
func (s *OrderService) emit(ctx context.Context, eventType string, order *models.Order) {
	evt := events.Event{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Amount:     order.TotalAmount.StringFixed(2),
		OccurredAt: time.Now().UTC(),
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, evt); err != nil {
		s.log.Warn("failed to publish order event",
			zap.String("type", eventType),
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}

// AmountInMinorUnits converts a rupee amount to paise, rounding half away from zero.
func AmountInMinorUnits(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Receipt builds the provider receipt for an order. Hyphens are dropped to
// stay under the provider's 40 character receipt limit.
func Receipt(orderID string) string {
	return "order_" + strings.ReplaceAll(orderID, "-", "")
}

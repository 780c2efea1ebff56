package services_test

import (
	"context"
	"errors"
	"testing"

	"butik/internal/events"
	"butik/internal/models"
	"butik/internal/payment"
	"butik/internal/services"
	"butik/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	orders    *MockOrderRepository
	cart      *MockCartRepository
	gateway   *MockGateway
	publisher *MockPublisher
	metrics   *metrics.ServerMetrics
	service   *services.OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    new(MockOrderRepository),
		cart:      new(MockCartRepository),
		gateway:   new(MockGateway),
		publisher: new(MockPublisher),
		metrics:   metrics.NewServerMetrics("test"),
	}
	f.service = services.NewOrderService(f.orders, f.cart, f.gateway, f.publisher, f.metrics, "INR", zap.NewNop())
	return f
}

func cartLine(id, productID, price string, qty int) models.CartItem {
	return models.CartItem{
		ID:        id,
		ProductID: productID,
		Quantity:  qty,
		Size:      "M",
		Product: &models.Product{
			ID:       productID,
			Name:     "Product " + productID,
			ImageURL: "https://img/" + productID,
			Price:    decimal.RequireFromString(price),
		},
	}
}

func TestOrderService_Checkout(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.cart.On("ListByUser", "u-1").Return([]models.CartItem{
		cartLine("c-1", "p-1", "499.99", 2),
		cartLine("c-2", "p-2", "100.00", 1),
		{ID: "c-3", ProductID: "deleted", Quantity: 7},
	}, nil).Once()
	f.orders.On("Create", mock.MatchedBy(func(o *models.Order) bool {
		return o.Status == models.OrderStatusPending &&
			o.TotalAmount.Equal(decimal.RequireFromString("1099.98")) &&
			o.ShippingCity == "Pune"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Order).ID = "11111111-2222-3333-4444-555555555555"
	}).Return(nil).Once()
	f.orders.On("CreateItem", mock.MatchedBy(func(i *models.OrderItem) bool {
		return i.OrderID == "11111111-2222-3333-4444-555555555555" && i.ProductName == "Product "+i.ProductID
	})).Return(nil).Twice()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.OrderCreated
	})).Return(nil).Once()
	f.gateway.On("CreateOrder", int64(109998), "INR", "order_11111111222233334444555555555555").
		Return(&payment.ProviderOrder{ID: "order_RZP1", Amount: 109998, Currency: "INR"}, nil).Once()
	f.orders.On("SetProviderOrderID", "11111111-2222-3333-4444-555555555555", "order_RZP1").Return(nil).Once()

	res, err := f.service.Checkout(ctx, "u-1", models.ShippingDetails{ShippingCity: "Pune"})

	require.NoError(t, err)
	assert.Equal(t, &services.CheckoutResult{
		OrderID:         "11111111-2222-3333-4444-555555555555",
		RazorpayOrderID: "order_RZP1",
		Amount:          109998,
		Currency:        "INR",
		KeyID:           "rzp_test_key",
	}, res)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrdersCreated))
	f.cart.AssertNotCalled(t, "DeleteAllByUser", mock.Anything)
	f.orders.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	f := newOrderFixture()

	f.cart.On("ListByUser", "u-1").Return([]models.CartItem{}, nil).Once()

	_, err := f.service.Checkout(context.Background(), "u-1", models.ShippingDetails{})

	assert.ErrorIs(t, err, services.ErrEmptyCart)
	f.orders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Checkout_OnlyOrphanLines(t *testing.T) {
	f := newOrderFixture()

	f.cart.On("ListByUser", "u-1").Return([]models.CartItem{{ID: "c-1", ProductID: "gone", Quantity: 1}}, nil).Once()

	_, err := f.service.Checkout(context.Background(), "u-1", models.ShippingDetails{})

	assert.ErrorIs(t, err, services.ErrEmptyCart)
	f.orders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Checkout_GatewayNotConfiguredKeepsOrder(t *testing.T) {
	f := newOrderFixture()

	f.cart.On("ListByUser", "u-1").Return([]models.CartItem{cartLine("c-1", "p-1", "10.00", 1)}, nil).Once()
	f.orders.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Order).ID = "o-1"
	}).Return(nil).Once()
	f.orders.On("CreateItem", mock.Anything).Return(nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	f.gateway.On("CreateOrder", int64(1000), "INR", "order_o1").Return(nil, payment.ErrNotConfigured).Once()

	_, err := f.service.Checkout(context.Background(), "u-1", models.ShippingDetails{})

	assert.ErrorIs(t, err, services.ErrPaymentNotConfigured)
	f.orders.AssertNotCalled(t, "SetProviderOrderID", mock.Anything, mock.Anything)
	f.orders.AssertExpectations(t)
}

func TestOrderService_VerifyPayment_Success(t *testing.T) {
	f := newOrderFixture()
	caller := services.Caller{UserID: "u-1", Role: models.RoleUser}
	in := services.VerifyPaymentInput{
		RazorpayOrderID:   "order_RZP1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
		OrderID:           "o-1",
	}

	f.gateway.On("VerifySignature", "order_RZP1", "pay_1", "sig").Return(true).Once()
	f.orders.On("GetByID", "o-1").Return(&models.Order{ID: "o-1", UserID: "u-1", Status: models.OrderStatusPending, RazorpayOrderID: "order_RZP1"}, nil).Once()
	f.orders.On("MarkPaid", "o-1", "pay_1", "sig", mock.AnythingOfType("time.Time")).Return(nil).Once()
	f.cart.On("DeleteAllByUser", "u-1").Return(nil).Once()
	f.orders.On("GetByID", "o-1").Return(&models.Order{ID: "o-1", UserID: "u-1", Status: models.OrderStatusPaid}, nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.OrderPaid && e.Status == "paid"
	})).Return(nil).Once()

	order, err := f.service.VerifyPayment(context.Background(), caller, in)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Payments.WithLabelValues("verified")))
	f.orders.AssertExpectations(t)
	f.cart.AssertExpectations(t)
}

func TestOrderService_VerifyPayment_BadSignature(t *testing.T) {
	f := newOrderFixture()

	f.gateway.On("VerifySignature", "order_RZP1", "pay_1", "forged").Return(false).Once()

	_, err := f.service.VerifyPayment(context.Background(), services.Caller{UserID: "u-1"}, services.VerifyPaymentInput{
		RazorpayOrderID:   "order_RZP1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "forged",
		OrderID:           "o-1",
	})

	assert.ErrorIs(t, err, services.ErrInvalidSignature)
	f.orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.cart.AssertNotCalled(t, "DeleteAllByUser", mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Payments.WithLabelValues("invalid_signature")))
}

func TestOrderService_VerifyPayment_OtherUsersOrder(t *testing.T) {
	f := newOrderFixture()
	in := services.VerifyPaymentInput{RazorpayOrderID: "order_RZP1", RazorpayPaymentID: "pay_1", RazorpaySignature: "sig"}

	f.gateway.On("VerifySignature", "order_RZP1", "pay_1", "sig").Return(true)
	f.orders.On("GetByProviderOrderID", "order_RZP1").
		Return(&models.Order{ID: "o-1", UserID: "owner", RazorpayOrderID: "order_RZP1"}, nil)

	_, err := f.service.VerifyPayment(context.Background(), services.Caller{UserID: "intruder", Role: models.RoleUser}, in)
	assert.ErrorIs(t, err, services.ErrForbidden)
	f.orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_VerifyPayment_ProviderOrderMismatch(t *testing.T) {
	f := newOrderFixture()
	in := services.VerifyPaymentInput{RazorpayOrderID: "order_OTHER", RazorpayPaymentID: "pay_1", RazorpaySignature: "sig", OrderID: "o-1"}

	f.gateway.On("VerifySignature", "order_OTHER", "pay_1", "sig").Return(true)
	f.orders.On("GetByID", "o-1").Return(&models.Order{ID: "o-1", UserID: "u-1", RazorpayOrderID: "order_RZP1"}, nil)

	_, err := f.service.VerifyPayment(context.Background(), services.Caller{UserID: "u-1"}, in)
	assert.ErrorIs(t, err, services.ErrValidation)
	f.cart.AssertNotCalled(t, "DeleteAllByUser", mock.Anything)
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("GetByID", "o-1").Return(&models.Order{ID: "o-1", UserID: "owner"}, nil)

	_, err := f.service.GetOrder(services.Caller{UserID: "someone", Role: models.RoleUser}, "o-1")
	assert.ErrorIs(t, err, services.ErrForbidden)

	order, err := f.service.GetOrder(services.Caller{UserID: "admin", Role: models.RoleAdmin}, "o-1")
	require.NoError(t, err)
	assert.NotNil(t, order.Items)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("UpdateStatus", "o-1", models.OrderStatusPending).
		Return(&models.Order{ID: "o-1", Status: models.OrderStatusPending}, nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.OrderStatusChanged
	})).Return(nil).Once()

	// Backward transitions are allowed.
	order, err := f.service.UpdateStatus(context.Background(), "o-1", models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	_, err = f.service.UpdateStatus(context.Background(), "o-1", models.OrderStatus("lost"))
	assert.ErrorIs(t, err, services.ErrValidation)
	f.orders.AssertExpectations(t)
}

func TestAmountInMinorUnits(t *testing.T) {
	assert.Equal(t, int64(109998), services.AmountInMinorUnits(decimal.RequireFromString("1099.98")))
	assert.Equal(t, int64(1), services.AmountInMinorUnits(decimal.RequireFromString("0.005")))
	assert.Equal(t, int64(0), services.AmountInMinorUnits(decimal.Zero))
}

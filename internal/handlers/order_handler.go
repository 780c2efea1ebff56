package handlers

import (
	"butik/internal/middleware"
	"butik/internal/models"
	"butik/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout, payment and order reads.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers order routes behind requireAuth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	orders := router.Group("/orders", requireAuth)
	orders.Post("/create-razorpay-order", h.Checkout)
	orders.Post("/verify-payment", h.VerifyPayment)
	orders.Get("/", h.ListOrders)
	orders.Get("/:id", h.GetOrder)
}

// CheckoutRequest is the shipping snapshot submitted at checkout.
type CheckoutRequest struct {
	ShippingName    string `json:"shippingName" validate:"max=100"`
	ShippingEmail   string `json:"shippingEmail" validate:"max=255"`
	ShippingPhone   string `json:"shippingPhone" validate:"max=20"`
	ShippingAddress string `json:"shippingAddress"`
	ShippingCity    string `json:"shippingCity" validate:"max=100"`
	ShippingState   string `json:"shippingState" validate:"max=100"`
	ShippingPincode string `json:"shippingPincode" validate:"max=10"`
}

// Checkout creates a pending order from the cart and a provider transaction.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	result, err := h.orderService.Checkout(c.UserContext(), middleware.CallerFrom(c).UserID, models.ShippingDetails(req))
	if err != nil {
		return respondError(c, err, "Order not found", "Failed to create order")
	}
	return c.JSON(result)
}

// VerifyPayment checks the provider signature and marks the order paid.
func (h *OrderHandler) VerifyPayment(c *fiber.Ctx) error {
	var req services.VerifyPaymentInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	order, err := h.orderService.VerifyPayment(c.UserContext(), middleware.CallerFrom(c), req)
	if err != nil {
		return respondError(c, err, "Order not found", "Payment verification failed")
	}
	return c.JSON(fiber.Map{
		"message": "Payment verified successfully",
		"orderId": order.ID,
	})
}

// ListOrders returns the caller's orders.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListOrders(middleware.CallerFrom(c).UserID)
	if err != nil {
		return respondError(c, err, "", "Failed to fetch orders")
	}
	return c.JSON(orders)
}

// GetOrder returns one order with its items.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(middleware.CallerFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Order not found", "Failed to fetch order")
	}
	return c.JSON(order)
}

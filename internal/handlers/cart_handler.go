package handlers

import (
	"butik/internal/middleware"
	"butik/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers cart routes behind requireAuth.
func (h *CartHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	cart := router.Group("/cart", requireAuth)
	cart.Get("/", h.GetCart)
	cart.Post("/", h.AddItem)
	cart.Put("/:id", h.UpdateItem)
	cart.Delete("/:id", h.RemoveItem)
	cart.Delete("/", h.ClearCart)
}

// GetCart returns the cart with computed totals.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	view, err := h.cartService.GetCart(middleware.CallerFrom(c).UserID)
	if err != nil {
		return respondError(c, err, "", "Failed to fetch cart")
	}
	return c.JSON(view)
}

// AddItem adds a product to the cart or bumps an existing line.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req services.AddToCartInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	item, err := h.cartService.AddItem(middleware.CallerFrom(c).UserID, req)
	if err != nil {
		return respondError(c, err, "Product not found", "Failed to add to cart")
	}
	return c.JSON(item)
}

// UpdateCartRequest represents the request body for a quantity change.
type UpdateCartRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// UpdateItem sets a line's quantity; zero or less removes it.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req UpdateCartRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	item, err := h.cartService.UpdateItem(middleware.CallerFrom(c).UserID, c.Params("id"), *req.Quantity)
	if err != nil {
		return respondError(c, err, "Cart item not found", "Failed to update cart")
	}
	if item == nil {
		return c.JSON(fiber.Map{"message": "Item removed"})
	}
	return c.JSON(item)
}

// RemoveItem deletes a line. Ids that are not the caller's are ignored.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.cartService.RemoveItem(middleware.CallerFrom(c).UserID, c.Params("id")); err != nil {
		return respondError(c, err, "", "Failed to remove from cart")
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// ClearCart empties the caller's cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.cartService.ClearCart(middleware.CallerFrom(c).UserID); err != nil {
		return respondError(c, err, "", "Failed to clear cart")
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

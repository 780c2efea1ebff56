package handlers

import (
	"butik/internal/models"
	"butik/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles back-office reports and overrides.
type AdminHandler struct {
	adminService  *services.AdminService
	orderService  *services.OrderService
	exportService *services.ExportService
	validate      *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService, orderService *services.OrderService, exportService *services.ExportService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		orderService:  orderService,
		exportService: exportService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers admin routes behind requireAuth and requireAdmin.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, requireAuth, requireAdmin fiber.Handler) {
	admin := router.Group("/admin", requireAuth, requireAdmin)
	admin.Get("/orders", h.ListOrders)
	admin.Put("/orders/:id/status", h.UpdateOrderStatus)
	admin.Get("/users", h.ListUsers)
	admin.Get("/stats", h.Stats)
	admin.Get("/products/export", h.ExportProducts)
}

// ListOrders returns every order with its owner.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.adminService.ListOrders()
	if err != nil {
		return respondError(c, err, "", "Failed to fetch orders")
	}
	return c.JSON(orders)
}

// UpdateStatusRequest represents the request body for a status override.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus overwrites an order's status.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	order, err := h.orderService.UpdateStatus(c.UserContext(), c.Params("id"), models.OrderStatus(req.Status))
	if err != nil {
		return respondError(c, err, "Order not found", "Failed to update order status")
	}
	return c.JSON(order)
}

// ListUsers returns every user.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers()
	if err != nil {
		return respondError(c, err, "", "Failed to fetch users")
	}
	return c.JSON(users)
}

// Stats returns the dashboard summary.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		return respondError(c, err, "", "Failed to fetch stats")
	}
	return c.JSON(stats)
}

// ExportProducts streams the catalog as an .xlsx download.
func (h *AdminHandler) ExportProducts(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=products.xlsx")

	if err := h.exportService.WriteProductsXLSX(c.Response().BodyWriter()); err != nil {
		c.Response().ResetBody()
		c.Set(fiber.HeaderContentDisposition, "")
		return respondError(c, err, "", "Failed to export products")
	}
	return nil
}

package handlers

import (
	"butik/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	productService  *services.ProductService
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, categoryService *services.CategoryService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers product and category routes. Reads are public;
// writes go through the given auth and admin middleware.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, requireAuth, requireAdmin fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.GetAllProducts)
	products.Get("/featured", h.GetFeaturedProducts)
	products.Get("/:id", h.GetProductByID)
	products.Post("/", requireAuth, requireAdmin, h.CreateProduct)
	products.Put("/:id", requireAuth, requireAdmin, h.UpdateProduct)
	products.Delete("/:id", requireAuth, requireAdmin, h.DeleteProduct)

	categories := router.Group("/categories")
	categories.Get("/", h.GetAllCategories)
	categories.Post("/", requireAuth, requireAdmin, h.CreateCategory)
}

// GetAllProducts handles fetching all products.
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		return respondError(c, err, "", "Failed to fetch products")
	}
	return c.JSON(products)
}

// GetFeaturedProducts handles fetching featured products.
func (h *ProductHandler) GetFeaturedProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetFeaturedProducts()
	if err != nil {
		return respondError(c, err, "", "Failed to fetch featured products")
	}
	return c.JSON(products)
}

// GetProductByID handles fetching a single product.
func (h *ProductHandler) GetProductByID(c *fiber.Ctx) error {
	product, err := h.productService.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Product not found", "Failed to fetch product")
	}
	return c.JSON(product)
}

// CreateProduct handles creating a product.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req services.ProductInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.productService.CreateProduct(req)
	if err != nil {
		return respondError(c, err, "Product not found", "Failed to create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles a partial product update.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req services.ProductInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	product, err := h.productService.UpdateProduct(c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "Product not found", "Failed to update product")
	}
	return c.JSON(product)
}

// DeleteProduct handles deleting a product.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err, "Product not found", "Failed to delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetAllCategories handles fetching all categories.
func (h *ProductHandler) GetAllCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAllCategories()
	if err != nil {
		return respondError(c, err, "", "Failed to fetch categories")
	}
	return c.JSON(categories)
}

// CreateCategory handles creating a category.
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var req services.CategoryInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		return respondError(c, err, "Category not found", "Failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

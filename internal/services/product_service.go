package services

import (
	"fmt"
	"time"

	"butik/internal/models"
	"butik/internal/repositories"

	"github.com/shopspring/decimal"
)

// DefaultStock is assigned to products created without a stock count.
const DefaultStock = 100

// ProductInput carries product fields from a create or update request.
// Nil fields are left untouched on update.
type ProductInput struct {
	Name          *string              `json:"name" validate:"omitempty,max=200"`
	Description   *string              `json:"description"`
	Price         *decimal.Decimal     `json:"price"`
	OriginalPrice *decimal.NullDecimal `json:"originalPrice"`
	CategoryID    *string              `json:"categoryId" validate:"omitempty,max=36"`
	ImageURL      *string              `json:"imageUrl" validate:"omitempty,max=500"`
	Images        *string              `json:"images"`
	Sizes         *string              `json:"sizes" validate:"omitempty,max=100"`
	Colors        *string              `json:"colors" validate:"omitempty,max=200"`
	Stock         *int                 `json:"stock"`
	InStock       *bool                `json:"inStock"`
	Featured      *bool                `json:"featured"`
	NewArrival    *bool                `json:"newArrival"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
	now  func() time.Time
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
		now:  time.Now,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetFeaturedProducts retrieves the featured products.
func (s *ProductService) GetFeaturedProducts() ([]models.Product, error) {
	return s.repo.GetFeatured()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a product with a unique slug derived from its name.
func (s *ProductService) CreateProduct(in ProductInput) (*models.Product, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price is required", ErrValidation)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}

	product := &models.Product{
		Stock:   DefaultStock,
		InStock: true,
	}
	applyProductInput(product, in)
	// A zero stock on create means the field was left out.
	if product.Stock == 0 {
		product.Stock = DefaultStock
	}
	product.Slug = ProductSlug(product.Name, s.now())

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies the supplied fields to an existing product.
// The slug never changes.
func (s *ProductService) UpdateProduct(id string, in ProductInput) (*models.Product, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}

	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	applyProductInput(product, in)
	product.UpdatedAt = s.now()

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

func applyProductInput(p *models.Product, in ProductInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = *in.OriginalPrice
	}
	if in.CategoryID != nil {
		if *in.CategoryID == "" {
			p.CategoryID = nil
		} else {
			id := *in.CategoryID
			p.CategoryID = &id
		}
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Images != nil {
		p.Images = *in.Images
	}
	if in.Sizes != nil {
		p.Sizes = *in.Sizes
	}
	if in.Colors != nil {
		p.Colors = *in.Colors
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.NewArrival != nil {
		p.NewArrival = *in.NewArrival
	}
}

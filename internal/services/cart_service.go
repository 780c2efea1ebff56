package services

import (
	"errors"
	"fmt"

	"butik/internal/models"
	"butik/internal/repositories"

	"github.com/shopspring/decimal"
)

// TaxRate is applied to the cart subtotal for display.
var TaxRate = decimal.NewFromFloat(0.18)

// AddToCartInput is the payload of an add-to-cart request.
type AddToCartInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size" validate:"max=20"`
	Color     string `json:"color" validate:"max=50"`
}

// CartView is a user's cart with its computed totals.
type CartView struct {
	Items    []models.CartItem `json:"items"`
	Subtotal string            `json:"subtotal"`
	Tax      string            `json:"tax"`
	Shipping string            `json:"shipping"`
	Total    string            `json:"total"`
}

// CartService handles business logic for per-user carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's lines priced at the current product price.
func (s *CartService) GetCart(userID string) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}

	subtotal := Subtotal(items)
	tax := subtotal.Mul(TaxRate).Round(2)
	shipping := decimal.Zero

	return &CartView{
		Items:    items,
		Subtotal: subtotal.StringFixed(2),
		Tax:      tax.StringFixed(2),
		Shipping: shipping.StringFixed(2),
		Total:    subtotal.Add(tax).Add(shipping).StringFixed(2),
	}, nil
}

// AddItem merges the request into the line with the same product, size and
// color, or inserts a new line. Two concurrent adds may both insert.
func (s *CartService) AddItem(userID string, in AddToCartInput) (*models.CartItem, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: productId is required", ErrValidation)
	}
	if _, err := s.productRepo.GetByID(in.ProductID); err != nil {
		return nil, err
	}

	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}

	existing, err := s.cartRepo.FindLine(userID, in.ProductID, in.Size, in.Color)
	switch {
	case err == nil:
		return s.cartRepo.SetQuantity(userID, existing.ID, existing.Quantity+quantity)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  quantity,
		Size:      in.Size,
		Color:     in.Color,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem sets a line's quantity. A quantity of zero or less removes the
// line and returns a nil item.
func (s *CartService) UpdateItem(userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, s.cartRepo.Delete(userID, itemID)
	}
	return s.cartRepo.SetQuantity(userID, itemID, quantity)
}

// RemoveItem deletes one of the user's lines. Unknown ids are ignored.
func (s *CartService) RemoveItem(userID, itemID string) error {
	return s.cartRepo.Delete(userID, itemID)
}

// ClearCart deletes every line of the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.DeleteAllByUser(userID)
}

// Subtotal sums current price times quantity. Lines without a product count as zero.
func Subtotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

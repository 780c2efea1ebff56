package repositories

import "butik/internal/models"

// CartRepository defines the interface for cart line data access.
// Every method is scoped to the owning user.
type CartRepository interface {
	ListByUser(userID string) ([]models.CartItem, error)
	FindLine(userID, productID, size, color string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	SetQuantity(userID, itemID string, quantity int) (*models.CartItem, error)
	Delete(userID, itemID string) error
	DeleteAllByUser(userID string) error
}

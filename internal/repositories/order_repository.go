package repositories

import (
	"time"

	"butik/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	CreateItem(item *models.OrderItem) error
	GetByID(id string) (*models.Order, error)
	GetByProviderOrderID(providerOrderID string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	SetProviderOrderID(id, providerOrderID string) error
	MarkPaid(id, paymentID, signature string, paidAt time.Time) error
	UpdateStatus(id string, status models.OrderStatus) (*models.Order, error)
}

package repositories

import (
	"time"

	"butik/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts the order row only; items are written separately.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Omit("Items", "User").Create(order).Error; err != nil {
		return wrap(err, "failed to create order")
	}
	return nil
}

// CreateItem inserts a single order line.
func (r *GORMOrderRepository) CreateItem(item *models.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return wrap(err, "failed to create order item for order %s", item.OrderID)
	}
	return nil
}

// GetByID returns an order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "order with ID %s", id)
	}
	return &order, nil
}

// GetByProviderOrderID returns the order carrying the given gateway order id.
func (r *GORMOrderRepository) GetByProviderOrderID(providerOrderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "razorpay_order_id = ?", providerOrderID).Error; err != nil {
		return nil, wrap(err, "order with provider ID %s", providerOrderID)
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, wrap(err, "failed to get orders for user %s", userID)
	}
	return orders, nil
}

// GetAll returns every order with its owner, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "email", "name")
	}).Order("created_at desc").Find(&orders).Error
	if err != nil {
		return nil, wrap(err, "failed to get all orders")
	}
	return orders, nil
}

// SetProviderOrderID records the gateway transaction id on the order.
func (r *GORMOrderRepository) SetProviderOrderID(id, providerOrderID string) error {
	return r.updateColumns(id, map[string]interface{}{
		"razorpay_order_id": providerOrderID,
		"updated_at":        time.Now(),
	})
}

// MarkPaid moves the order to paid and records the payment details.
func (r *GORMOrderRepository) MarkPaid(id, paymentID, signature string, paidAt time.Time) error {
	return r.updateColumns(id, map[string]interface{}{
		"status":              models.OrderStatusPaid,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
		"paid_at":             paidAt,
		"updated_at":          time.Now(),
	})
}

// UpdateStatus overwrites the status of an order and returns the new row.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if err := r.updateColumns(id, map[string]interface{}{"status": status, "updated_at": time.Now()}); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *GORMOrderRepository) updateColumns(id string, columns map[string]interface{}) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return wrap(res.Error, "failed to update order %s", id)
	}
	if res.RowsAffected == 0 {
		return wrap(gorm.ErrRecordNotFound, "order with ID %s", id)
	}
	return nil
}

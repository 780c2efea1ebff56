package repositories

import (
	"time"

	"butik/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// ListByUser returns the user's cart lines with their current product rows.
// Lines whose product was deleted come back with a nil Product.
func (r *GORMCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, wrap(err, "failed to get cart for user %s", userID)
	}
	return items, nil
}

// FindLine looks up the line matching the exact (user, product, size, color) tuple.
func (r *GORMCartRepository) FindLine(userID, productID, size, color string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?", userID, productID, size, color).
		First(&item).Error
	if err != nil {
		return nil, wrap(err, "cart line for product %s", productID)
	}
	return &item, nil
}

// Create inserts a new cart line.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return wrap(err, "failed to add cart line")
	}
	return nil
}

// SetQuantity overwrites the quantity of one of the user's lines.
func (r *GORMCartRepository) SetQuantity(userID, itemID string, quantity int) (*models.CartItem, error) {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{"quantity": quantity, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, wrap(res.Error, "failed to update cart line %s", itemID)
	}
	if res.RowsAffected == 0 {
		return nil, wrap(gorm.ErrRecordNotFound, "cart line %s", itemID)
	}
	var item models.CartItem
	if err := r.db.First(&item, "id = ?", itemID).Error; err != nil {
		return nil, wrap(err, "cart line %s", itemID)
	}
	return &item, nil
}

// Delete removes one of the user's lines. Matching nothing is not an error.
func (r *GORMCartRepository) Delete(userID, itemID string) error {
	if err := r.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{}).Error; err != nil {
		return wrap(err, "failed to delete cart line %s", itemID)
	}
	return nil
}

// DeleteAllByUser empties the user's cart.
func (r *GORMCartRepository) DeleteAllByUser(userID string) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return wrap(err, "failed to clear cart for user %s", userID)
	}
	return nil
}

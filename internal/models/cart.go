package models

import "time"

// CartItem is one line of a user's cart. Product is the live catalog row,
// so prices shown in the cart always follow the current product price.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	ProductID string    `json:"productId" gorm:"type:varchar(36);not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Size      string    `json:"size" gorm:"type:varchar(20)"`
	Color     string    `json:"color" gorm:"type:varchar(50)"`
	Product   *Product  `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable catalog item.
type Product struct {
	ID            string              `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string              `json:"name" gorm:"type:varchar(200);not null"`
	Slug          string              `json:"slug" gorm:"type:varchar(200);uniqueIndex;not null"`
	Description   string              `json:"description" gorm:"type:text"`
	Price         decimal.Decimal     `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice" gorm:"type:decimal(10,2)"`
	CategoryID    *string             `json:"categoryId" gorm:"type:varchar(36);index"`
	ImageURL      string              `json:"imageUrl" gorm:"type:varchar(500)"`
	Images        string              `json:"images" gorm:"type:text"` // JSON array of image URLs
	Sizes         string              `json:"sizes" gorm:"type:varchar(100)"`  // e.g. "S,M,L,XL"
	Colors        string              `json:"colors" gorm:"type:varchar(200)"` // e.g. "Pink,Purple"
	Stock         int                 `json:"stock"`
	InStock       bool                `json:"inStock"`
	Featured      bool                `json:"featured" gorm:"index"`
	NewArrival    bool                `json:"newArrival"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

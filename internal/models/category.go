package models

import "time"

// Category groups products for browsing.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"imageUrl" gorm:"type:varchar(500)"`
	CreatedAt   time.Time `json:"createdAt"`
}

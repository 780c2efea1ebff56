package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or back-office account.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Name         string    `json:"name" gorm:"type:varchar(100)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	Role         string    `json:"role" gorm:"type:varchar(10);not null"`
	Phone        string    `json:"phone" gorm:"type:varchar(20)"`
	Address      string    `json:"address" gorm:"type:text"`
	City         string    `json:"city" gorm:"type:varchar(100)"`
	State        string    `json:"state" gorm:"type:varchar(100)"`
	Pincode      string    `json:"pincode" gorm:"type:varchar(10)"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CountsAsRevenue reports whether orders in this status contribute to revenue.
func (s OrderStatus) CountsAsRevenue() bool {
	return s != OrderStatusPending && s != OrderStatusCancelled
}

// OrderItem is a line of an order. Name, image and price are copied from the
// product when the order is created and never reread afterwards.
type OrderItem struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID      string          `json:"orderId" gorm:"type:varchar(36);index;not null"`
	ProductID    string          `json:"productId" gorm:"type:varchar(36);not null"`
	ProductName  string          `json:"productName" gorm:"type:varchar(200);not null"`
	ProductImage string          `json:"productImage" gorm:"type:varchar(500)"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	Size         string          `json:"size" gorm:"type:varchar(20)"`
	Color        string          `json:"color" gorm:"type:varchar(50)"`
}

// ShippingDetails is the address snapshot captured at checkout.
type ShippingDetails struct {
	ShippingName    string `json:"shippingName" gorm:"type:varchar(100)"`
	ShippingEmail   string `json:"shippingEmail" gorm:"type:varchar(255)"`
	ShippingPhone   string `json:"shippingPhone" gorm:"type:varchar(20)"`
	ShippingAddress string `json:"shippingAddress" gorm:"type:text"`
	ShippingCity    string `json:"shippingCity" gorm:"type:varchar(100)"`
	ShippingState   string `json:"shippingState" gorm:"type:varchar(100)"`
	ShippingPincode string `json:"shippingPincode" gorm:"type:varchar(10)"`
}

// Order represents a customer order.
type Order struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `json:"userId" gorm:"type:varchar(36);index;not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	ShippingDetails
	RazorpayOrderID   string      `json:"razorpayOrderId" gorm:"type:varchar(100);index"`
	RazorpayPaymentID string      `json:"razorpayPaymentId" gorm:"type:varchar(100)"`
	RazorpaySignature string      `json:"razorpaySignature" gorm:"type:varchar(255)"`
	PaidAt            *time.Time  `json:"paidAt"`
	Items             []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	User              *User       `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

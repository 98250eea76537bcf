package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses (typical flow: Pending -> Confirmed -> Shipped -> Delivered)
	OrderStatusPending   OrderStatus = "Pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "Confirmed" // Confirmed by admin
	OrderStatusShipped   OrderStatus = "Shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "Delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "Cancelled" // Cancelled before shipping

	// Payment methods
	PaymentMethodCOD        PaymentMethod = "cod"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderRef        string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID          uint          `gorm:"not null" json:"user_id"`
	User            User          `gorm:"foreignKey:UserID" json:"user"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64       `gorm:"not null" json:"total_amount"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	DeliveryAddress string        `gorm:"not null" json:"delivery_address"`
	Phone           string        `gorm:"not null" json:"phone"`
	PaymentMethod   PaymentMethod `gorm:"type:VARCHAR(20);default:'cod'" json:"payment_method"`
	CreatedAt       time.Time     `json:"created_at"`
}

// NewOrderRef generates a unique order reference, e.g. "20250908130500-<uuid4>".
func NewOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"` // price at time of purchase
}

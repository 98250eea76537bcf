package models

import "time"

type SubscriptionFrequency string
type SubscriptionStatus string
type DeliveryTime string

const (
	FrequencyDaily  SubscriptionFrequency = "daily"
	FrequencyWeekly SubscriptionFrequency = "weekly"

	SubscriptionStatusPending  SubscriptionStatus = "pending"
	SubscriptionStatusApproved SubscriptionStatus = "approved"
	SubscriptionStatusRejected SubscriptionStatus = "rejected"

	DeliveryMorning DeliveryTime = "morning"
	DeliveryEvening DeliveryTime = "evening"
)

// Subscription is a customer's recurring order template. Only subscriptions
// with IsActive AND Status == approved AND NextDelivery <= now are eligible
// for conversion into orders.
type Subscription struct {
	ID           uint                  `gorm:"primaryKey" json:"id"`
	UserID       uint                  `gorm:"not null;index" json:"user_id"`
	User         User                  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name         string                `gorm:"not null" json:"name"`
	Frequency    SubscriptionFrequency `gorm:"type:VARCHAR(20);not null" json:"frequency"`
	DeliveryTime DeliveryTime          `gorm:"type:VARCHAR(20);default:'morning'" json:"delivery_time"`
	StartDate    time.Time             `json:"start_date"`
	NextDelivery time.Time             `gorm:"not null" json:"next_delivery"`
	IsActive     bool                  `json:"is_active"`
	Status       SubscriptionStatus    `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	AdminNotes   string                `json:"admin_notes"`
	Items        []SubscriptionItem    `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ScheduleNextDelivery advances NextDelivery based on the frequency, counted
// from the given time. A late run advances from the actual processing time,
// so missed cadence windows are never caught up.
func (s *Subscription) ScheduleNextDelivery(from time.Time) {
	switch s.Frequency {
	case FrequencyWeekly:
		s.NextDelivery = from.Add(7 * 24 * time.Hour)
	default:
		s.NextDelivery = from.Add(24 * time.Hour)
	}
}

type SubscriptionItem struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	SubscriptionID uint    `gorm:"not null;index" json:"subscription_id"`
	ProductID      uint    `gorm:"not null" json:"product_id"`
	Product        Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity       int     `gorm:"not null;default:1" json:"quantity"`
}

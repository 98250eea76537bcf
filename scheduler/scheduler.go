// Package scheduler converts due subscriptions into orders.
//
// It is designed to be run periodically by an external cron-like trigger (see
// cmd/scheduler). Each subscription is processed in its own transaction, so
// one failure never aborts the rest of the run. NextDelivery is advanced only
// inside a successful commit, which makes an immediate re-run select zero
// subscriptions. The package does no distributed locking: overlapping runs
// against the same database rely on the guarded stock decrement and the
// per-subscription commit for safety.
package scheduler

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

const (
	fallbackAddress = "Address not provided"
	fallbackPhone   = "Phone not provided"
)

// Result aggregates per-run counts across the full due set.
type Result struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeFailed
	outcomeSkipped
)

// Processor runs the subscription-to-order reconciliation.
type Processor struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Processor {
	return &Processor{db: db, now: time.Now}
}

// DueSubscriptions returns every subscription eligible for conversion at the
// given time: active, approved, and next_delivery in the past. The query is
// always computed fresh since eligibility depends on wall-clock time and on
// externally mutated flags.
func DueSubscriptions(db *gorm.DB, now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := db.
		Where("is_active = ? AND status = ? AND next_delivery <= ?",
			true, models.SubscriptionStatusApproved, now).
		Order("next_delivery asc, id asc").
		Find(&subs).Error
	return subs, err
}

// ProcessDueSubscriptions converts all due subscriptions into orders. The
// current time is read once at the start of the run; each subscription either
// fully converts (order + items + stock decrement + next_delivery advance in
// one transaction) or is left untouched.
func (p *Processor) ProcessDueSubscriptions() (Result, error) {
	now := p.now()

	due, err := DueSubscriptions(p.db, now)
	if err != nil {
		return Result{}, fmt.Errorf("query due subscriptions: %w", err)
	}

	log.Printf("Found %d approved subscriptions due for delivery", len(due))

	result := Result{Total: len(due)}
	for _, sub := range due {
		switch p.convert(sub, now) {
		case outcomeProcessed:
			result.Processed++
		case outcomeFailed:
			result.Failed++
		case outcomeSkipped:
			result.Skipped++
		}
	}

	logSummary(result)
	return result, nil
}

// convert processes a single subscription and classifies the outcome.
// Skippable preconditions (no items, missing/inactive user) and stock
// validation are checked before any write, so nothing needs rolling back for
// those; commit-time faults roll the whole subscription back.
func (p *Processor) convert(sub models.Subscription, now time.Time) outcome {
	log.Printf("Processing subscription #%d - %s", sub.ID, sub.Name)

	var items []models.SubscriptionItem
	if err := p.db.Preload("Product").
		Where("subscription_id = ?", sub.ID).
		Find(&items).Error; err != nil {
		log.Printf("⚠️ Failed to load items for subscription #%d: %v", sub.ID, err)
		return outcomeFailed
	}
	if len(items) == 0 {
		log.Printf("⚠️ Subscription #%d has no items, skipping", sub.ID)
		return outcomeSkipped
	}

	var user models.User
	if err := p.db.First(&user, sub.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ User #%d not found, skipping subscription #%d", sub.UserID, sub.ID)
			return outcomeSkipped
		}
		log.Printf("⚠️ Failed to load user #%d for subscription #%d: %v", sub.UserID, sub.ID, err)
		return outcomeFailed
	}
	if !user.IsActive {
		log.Printf("⚠️ User #%d is not active, skipping subscription #%d", user.ID, sub.ID)
		return outcomeSkipped
	}

	// Validate stock for every item before mutating anything, collecting all
	// violations so the failure reason is fully diagnostic.
	var total float64
	var stockIssues []string
	for _, item := range items {
		if item.Product.ID == 0 || !item.Product.IsActive {
			stockIssues = append(stockIssues, fmt.Sprintf("Product ID %d not available", item.ProductID))
			continue
		}
		if item.Product.Stock < item.Quantity {
			stockIssues = append(stockIssues, fmt.Sprintf("%s: need %d, only %d available",
				item.Product.Name, item.Quantity, item.Product.Stock))
		}
		total += float64(item.Quantity) * item.Product.Price
	}
	if len(stockIssues) > 0 {
		log.Printf("⚠️ Stock issues for subscription #%d: %s", sub.ID, strings.Join(stockIssues, ", "))
		return outcomeFailed
	}

	address := user.Address
	if address == "" {
		address = fallbackAddress
	}
	phone := user.Phone
	if phone == "" {
		phone = fallbackPhone
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			OrderRef:        models.NewOrderRef(),
			UserID:          sub.UserID,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			DeliveryAddress: address,
			Phone:           phone,
			PaymentMethod:   models.PaymentMethodCOD, // subscriptions carry no payment method
			CreatedAt:       now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range items {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price, // snapshot of the current price
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			// Guarded decrement: the stock condition is re-checked inside the
			// write so a concurrent checkout cannot drive stock negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("insufficient stock for product #%d", item.ProductID)
			}

			log.Printf("  - Added %dx %s to order #%d", item.Quantity, item.Product.Name, order.ID)
		}

		sub.ScheduleNextDelivery(now)
		if err := tx.Model(&models.Subscription{}).
			Where("id = ?", sub.ID).
			Update("next_delivery", sub.NextDelivery).Error; err != nil {
			return err
		}

		log.Printf("Created order #%d for subscription #%d, next delivery %s",
			order.ID, sub.ID, sub.NextDelivery.Format("2006-01-02 15:04:05"))
		return nil
	})
	if err != nil {
		log.Printf("❌ Error processing subscription #%d: %v", sub.ID, err)
		return outcomeFailed
	}

	return outcomeProcessed
}

// CheckUpcomingStock is a read-only advisory pass over subscriptions due in
// the next 24 hours. It warn-logs any product whose stock is below twice the
// quantity an upcoming delivery needs, so admins can restock early. It never
// blocks or alters reconciliation.
func (p *Processor) CheckUpcomingStock() error {
	tomorrow := p.now().Add(24 * time.Hour)

	upcoming, err := DueSubscriptions(p.db, tomorrow)
	if err != nil {
		return fmt.Errorf("query upcoming subscriptions: %w", err)
	}

	log.Printf("Found %d subscriptions due in the next 24 hours", len(upcoming))

	for _, sub := range upcoming {
		var items []models.SubscriptionItem
		if err := p.db.Preload("Product").
			Where("subscription_id = ?", sub.ID).
			Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if item.Product.ID != 0 && item.Product.Stock < item.Quantity*2 {
				log.Printf("⚠️ Low stock alert: %s has %d units, subscription #%d needs %d",
					item.Product.Name, item.Product.Stock, sub.ID, item.Quantity)
			}
		}
	}
	return nil
}

// LogStatistics logs overall subscription counts for reporting.
func (p *Processor) LogStatistics() error {
	var total, active, pending int64
	if err := p.db.Model(&models.Subscription{}).Count(&total).Error; err != nil {
		return err
	}
	if err := p.db.Model(&models.Subscription{}).
		Where("is_active = ? AND status = ?", true, models.SubscriptionStatusApproved).
		Count(&active).Error; err != nil {
		return err
	}
	if err := p.db.Model(&models.Subscription{}).
		Where("status = ?", models.SubscriptionStatusPending).
		Count(&pending).Error; err != nil {
		return err
	}

	log.Println("Subscription Statistics:")
	log.Printf("  Total: %d", total)
	log.Printf("  Active & Approved: %d", active)
	log.Printf("  Pending Approval: %d", pending)
	return nil
}

func logSummary(r Result) {
	line := strings.Repeat("=", 60)
	log.Println(line)
	log.Println("Subscription Processing Summary")
	log.Println(line)
	log.Printf("Total subscriptions found: %d", r.Total)
	log.Printf("Successfully processed: %d", r.Processed)
	log.Printf("Failed: %d", r.Failed)
	log.Printf("Skipped: %d", r.Skipped)
	log.Println(line)
}

package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

type subscriptionReviewRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// ListSubscriptions returns all customer subscriptions, optionally filtered
// by status, with per-status counts for the review queue.
func ListSubscriptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		statusFilter := c.DefaultQuery("status", "all")

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
		if perPage < 1 || perPage > 100 {
			perPage = 20
		}

		query := db.Model(&models.Subscription{})
		if statusFilter != "all" {
			query = query.Where("status = ?", statusFilter)
		}

		var subs []models.Subscription
		if err := query.
			Preload("User").
			Preload("Items.Product").
			Order("created_at DESC").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&subs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
			return
		}

		var total, pending, approved, rejected, active int64
		counts := []struct {
			dest  *int64
			query *gorm.DB
		}{
			{&total, db.Model(&models.Subscription{})},
			{&pending, db.Model(&models.Subscription{}).Where("status = ?", models.SubscriptionStatusPending)},
			{&approved, db.Model(&models.Subscription{}).Where("status = ?", models.SubscriptionStatusApproved)},
			{&rejected, db.Model(&models.Subscription{}).Where("status = ?", models.SubscriptionStatusRejected)},
			{&active, db.Model(&models.Subscription{}).Where("is_active = ? AND status = ?", true, models.SubscriptionStatusApproved)},
		}
		for _, count := range counts {
			if err := count.query.Count(count.dest).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count subscriptions"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"subscriptions":  subs,
			"status_filter":  statusFilter,
			"total":          total,
			"pending_count":  pending,
			"approved_count": approved,
			"rejected_count": rejected,
			"active_count":   active,
			"page":           page,
			"per_page":       perPage,
		})
	}
}

// GetSubscription returns one subscription with its items for review.
func GetSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.Subscription
		if err := db.
			Preload("User").
			Preload("Items.Product").
			First(&sub, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}

		c.JSON(http.StatusOK, sub)
	}
}

// ApproveSubscription marks a subscription approved and active, making it
// eligible for the delivery scheduler.
func ApproveSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscriptionReviewRequest
		_ = c.ShouldBindJSON(&req)

		var sub models.Subscription
		if err := db.First(&sub, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}

		updates := map[string]interface{}{
			"status":      models.SubscriptionStatusApproved,
			"is_active":   true,
			"admin_notes": req.AdminNotes,
		}
		if err := db.Model(&sub).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve subscription"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Subscription \"" + sub.Name + "\" has been approved"})
	}
}

// RejectSubscription marks a subscription rejected and inactive.
func RejectSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscriptionReviewRequest
		_ = c.ShouldBindJSON(&req)

		var sub models.Subscription
		if err := db.First(&sub, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}

		updates := map[string]interface{}{
			"status":      models.SubscriptionStatusRejected,
			"is_active":   false,
			"admin_notes": req.AdminNotes,
		}
		if err := db.Model(&sub).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject subscription"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Subscription \"" + sub.Name + "\" has been rejected"})
	}
}

// ToggleSubscriptionStatus pauses/resumes an approved subscription on behalf
// of the customer. Only approved subscriptions can be toggled.
func ToggleSubscriptionStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.Subscription
		if err := db.First(&sub, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}

		if sub.Status != models.SubscriptionStatusApproved {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only approved subscriptions can be toggled"})
			return
		}

		if err := db.Model(&sub).Update("is_active", !sub.IsActive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
			return
		}

		status := "paused"
		if sub.IsActive {
			status = "activated"
		}
		c.JSON(http.StatusOK, gin.H{"message": "Subscription " + status + " successfully", "is_active": sub.IsActive})
	}
}

// DeleteSubscription removes a subscription and its items.
func DeleteSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.Subscription
		if err := db.First(&sub, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("subscription_id = ?", sub.ID).Delete(&models.SubscriptionItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&sub).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
	}
}

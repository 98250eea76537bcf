package subscriptionControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

type CreateSubscriptionRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=200"`
	Frequency    string `json:"frequency" binding:"required,oneof=daily weekly"`
	DeliveryTime string `json:"delivery_time" binding:"omitempty,oneof=morning evening"`
}

type SubscriptionItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// ownedSubscription loads a subscription and verifies the caller owns it.
func ownedSubscription(db *gorm.DB, c *gin.Context, id string) (*models.Subscription, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var sub models.Subscription
	if err := db.Where("id = ? AND user_id = ?", id, userIDVal.(uint)).First(&sub).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return nil, false
	}
	return &sub, true
}

// POST /user/subscriptions — new subscriptions start pending until an admin
// approves them.
func CreateSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateSubscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		deliveryTime := models.DeliveryTime(req.DeliveryTime)
		if deliveryTime == "" {
			deliveryTime = models.DeliveryMorning
		}

		now := time.Now()
		sub := models.Subscription{
			UserID:       userIDVal.(uint),
			Name:         req.Name,
			Frequency:    models.SubscriptionFrequency(req.Frequency),
			DeliveryTime: deliveryTime,
			StartDate:    now,
			IsActive:     true,
			Status:       models.SubscriptionStatusPending,
		}
		sub.ScheduleNextDelivery(now)

		if err := db.Create(&sub).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
			return
		}

		c.JSON(http.StatusCreated, sub)
	}
}

// GET /user/subscriptions
func GetUserSubscriptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var subs []models.Subscription
		if err := db.
			Where("user_id = ?", userIDVal.(uint)).
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&subs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
			return
		}

		c.JSON(http.StatusOK, subs)
	}
}

// GET /user/subscriptions/:id
func GetSubscriptionByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := ownedSubscription(db, c, c.Param("id"))
		if !ok {
			return
		}

		if err := db.Preload("Items.Product").First(sub, sub.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
			return
		}

		c.JSON(http.StatusOK, sub)
	}
}

// POST /user/subscriptions/:id/items — adding a product already in the
// subscription increments its quantity instead of creating a duplicate row.
func AddSubscriptionItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := ownedSubscription(db, c, c.Param("id"))
		if !ok {
			return
		}

		var input SubscriptionItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This product is currently unavailable"})
			return
		}

		var item models.SubscriptionItem
		err := db.Where("subscription_id = ? AND product_id = ?", sub.ID, input.ProductID).First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription item"})
				return
			}
			item = models.SubscriptionItem{
				SubscriptionID: sub.ID,
				ProductID:      input.ProductID,
				Quantity:       input.Quantity,
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to subscription"})
				return
			}
			c.JSON(http.StatusCreated, item)
			return
		}

		item.Quantity += input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// PUT /user/subscriptions/:id/items/:itemID — zero or less removes the item.
func UpdateSubscriptionItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := ownedSubscription(db, c, c.Param("id"))
		if !ok {
			return
		}

		var input struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var item models.SubscriptionItem
		if err := db.Where("id = ? AND subscription_id = ?", c.Param("itemID"), sub.ID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription item not found"})
			return
		}

		if input.Quantity <= 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription item"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Subscription item removed"})
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/subscriptions/:id/items/:itemID
func RemoveSubscriptionItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := ownedSubscription(db, c, c.Param("id"))
		if !ok {
			return
		}

		result := db.Where("id = ? AND subscription_id = ?", c.Param("itemID"), sub.ID).
			Delete(&models.SubscriptionItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Subscription item removed"})
	}
}

// POST /user/subscriptions/:id/toggle — customer pause/resume.
func ToggleSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := ownedSubscription(db, c, c.Param("id"))
		if !ok {
			return
		}

		if err := db.Model(sub).Update("is_active", !sub.IsActive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
			return
		}

		status := "paused"
		if sub.IsActive {
			status = "activated"
		}
		c.JSON(http.StatusOK, gin.H{"message": "Subscription " + status, "is_active": sub.IsActive})
	}
}

// DELETE /user/subscriptions/:id
func DeleteSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := ownedSubscription(db, c, c.Param("id"))
		if !ok {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("subscription_id = ?", sub.ID).Delete(&models.SubscriptionItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(sub).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
	}
}

package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

// Dashboard aggregates the storefront counters shown on the admin landing
// page, including subscription approval backlog and total delivered sales.
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			totalUsers, activeUsers           int64
			totalCategories, activeCategories int64
			totalProducts, activeProducts     int64
			totalOrders, pendingOrders        int64
			activeSubs, pendingSubs           int64
			totalSales                        float64
		)

		counts := []struct {
			dest  *int64
			query *gorm.DB
		}{
			{&totalUsers, db.Model(&models.User{})},
			{&activeUsers, db.Model(&models.User{}).Where("is_active = ?", true)},
			{&totalCategories, db.Model(&models.Category{})},
			{&activeCategories, db.Model(&models.Category{}).Where("is_active = ?", true)},
			{&totalProducts, db.Model(&models.Product{})},
			{&activeProducts, db.Model(&models.Product{}).Where("is_active = ?", true)},
			{&totalOrders, db.Model(&models.Order{})},
			{&pendingOrders, db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending)},
			{&activeSubs, db.Model(&models.Subscription{}).Where("is_active = ? AND status = ?", true, models.SubscriptionStatusApproved)},
			{&pendingSubs, db.Model(&models.Subscription{}).Where("status = ?", models.SubscriptionStatusPending)},
		}
		for _, count := range counts {
			if err := count.query.Count(count.dest).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect dashboard stats"})
				return
			}
		}

		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusDelivered).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalSales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate total sales"})
			return
		}

		var recentOrders []models.Order
		if err := db.Preload("User").Order("created_at DESC").Limit(5).Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent orders"})
			return
		}

		var recentSubscriptions []models.Subscription
		if err := db.Preload("User").Order("created_at DESC").Limit(5).Find(&recentSubscriptions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent subscriptions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_users":           totalUsers,
			"active_users":          activeUsers,
			"total_categories":      totalCategories,
			"active_categories":     activeCategories,
			"total_products":        totalProducts,
			"active_products":       activeProducts,
			"total_orders":          totalOrders,
			"pending_orders":        pendingOrders,
			"total_sales":           totalSales,
			"subscription_count":    activeSubs,
			"pending_subscriptions": pendingSubs,
			"recent_orders":         recentOrders,
			"recent_subscriptions":  recentSubscriptions,
		})
	}
}

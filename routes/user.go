package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/YugaBharathi29/grocery-app/controllers/cart"
	subscriptionControllers "github.com/YugaBharathi29/grocery-app/controllers/subscription"
	userControllers "github.com/YugaBharathi29/grocery-app/controllers/user"
	"github.com/YugaBharathi29/grocery-app/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.AddCartItem(db))
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}

		// ──────────────── Subscriptions ────────────────
		subGroup := userGroup.Group("/subscriptions")
		{
			subGroup.POST("", subscriptionControllers.CreateSubscription(db))
			subGroup.GET("", subscriptionControllers.GetUserSubscriptions(db))
			subGroup.GET("/:id", subscriptionControllers.GetSubscriptionByID(db))
			subGroup.POST("/:id/items", subscriptionControllers.AddSubscriptionItem(db))
			subGroup.PUT("/:id/items/:itemID", subscriptionControllers.UpdateSubscriptionItem(db))
			subGroup.DELETE("/:id/items/:itemID", subscriptionControllers.RemoveSubscriptionItem(db))
			subGroup.POST("/:id/toggle", subscriptionControllers.ToggleSubscription(db))
			subGroup.DELETE("/:id", subscriptionControllers.DeleteSubscription(db))
		}
	}
}

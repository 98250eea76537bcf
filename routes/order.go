package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/YugaBharathi29/grocery-app/controllers/order"
	"github.com/YugaBharathi29/grocery-app/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		authed := orders.Group("")
		authed.Use(middleware.ValidateToken)
		{
			// Checkout: convert the caller's cart into an order
			authed.POST("/place", orderControllers.PlaceOrderHandler(db))

			// Fetch the caller's own orders
			authed.GET("/", orderControllers.GetUserOrdersHandler(db))

			// Fetch a single order by id or order_ref
			authed.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
		}
	}
}

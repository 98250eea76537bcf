package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/YugaBharathi29/grocery-app/controllers/admin"
	orderControllers "github.com/YugaBharathi29/grocery-app/controllers/order"
	productcontroller "github.com/YugaBharathi29/grocery-app/controllers/product"
	"github.com/YugaBharathi29/grocery-app/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a JWT with
// the admin flag.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.AdminOnly)
	{
		// ─────────── Dashboard & User Management ───────────
		adminGroup.GET("/dashboard", adminController.Dashboard(db))
		adminGroup.GET("/users", adminController.GetAllUsers(db))
		adminGroup.POST("/users/:id/toggle", adminController.ToggleUser(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db, true))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.POST("/import-csv", productcontroller.ImportProductsFromCSV(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
			productAdmin.GET("/sample-csv", productcontroller.DownloadSampleCSV(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db, true))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		}

		// ─────────── Subscription Review Workflow ───────────
		subAdmin := adminGroup.Group("/subscriptions")
		{
			subAdmin.GET("", adminController.ListSubscriptions(db))
			subAdmin.GET("/:id", adminController.GetSubscription(db))
			subAdmin.POST("/:id/approve", adminController.ApproveSubscription(db))
			subAdmin.POST("/:id/reject", adminController.RejectSubscription(db))
			subAdmin.POST("/:id/toggle", adminController.ToggleSubscriptionStatus(db))
			subAdmin.DELETE("/:id", adminController.DeleteSubscription(db))
		}
	}
}

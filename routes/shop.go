package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/YugaBharathi29/grocery-app/controllers/product"
)

// SetupShopRoutes registers the public storefront browsing endpoints.
// Only active products and categories are visible here.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	shop := r.Group("/shop")
	{
		shop.GET("/products", productcontroller.GetProducts(db, false))
		shop.GET("/products/:id", productcontroller.GetProductByID(db))
		shop.GET("/categories", productcontroller.GetAllCategories(db, false))
		shop.GET("/categories/:id", productcontroller.GetCategoryWithProducts(db))
	}
}

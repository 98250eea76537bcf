package productcontroller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

const (
	categoryUploadSubdir = "categories"
	categoryPublicPath   = "/uploads/categories"
)

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		description := c.PostForm("description")
		isActive := c.DefaultPostForm("is_active", "true") == "true"

		// Image: URL takes priority over upload
		image := c.PostForm("image_url")
		if image == "" {
			if file, err := c.FormFile("image"); err == nil {
				saved, err := saveUploadedImage(c, file, categoryUploadSubdir, categoryPublicPath)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
					return
				}
				image = saved
			}
		}

		category := models.Category{
			Name:        name,
			Description: description,
			Image:       image,
			IsActive:    isActive,
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		updates := make(map[string]interface{})
		if name := c.PostForm("name"); name != "" {
			updates["name"] = name
		}
		if description, ok := c.GetPostForm("description"); ok {
			updates["description"] = description
		}
		if isActiveStr := c.PostForm("is_active"); isActiveStr != "" {
			updates["is_active"] = isActiveStr == "true"
		}

		if imageURL := c.PostForm("image_url"); imageURL != "" {
			updates["image"] = imageURL
		} else if file, err := c.FormFile("image"); err == nil {
			saved, err := saveUploadedImage(c, file, categoryUploadSubdir, categoryPublicPath)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}
			updates["image"] = saved
		}

		if len(updates) > 0 {
			if err := db.Model(&category).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
				return
			}
		}

		c.JSON(http.StatusOK, category)
	}
}

// GetAllCategories lists categories. Non-admin callers only see active ones.
func GetAllCategories(db *gorm.DB, adminView bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Category{})
		if !adminView {
			query = query.Where("is_active = ?", true)
		}

		var categories []models.Category
		if err := query.Order("name asc").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}

// GetCategoryWithProducts returns an active category and its active products.
func GetCategoryWithProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var category models.Category
		if err := db.
			Preload("Products", "is_active = ?", true).
			First(&category, "id = ? AND is_active = ?", id, true).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategory removes a category; categories that still have products
// cannot be deleted.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var category models.Category
		if err := db.First(&category, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var productCount int64
		if err := db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category products"})
			return
		}
		if productCount > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete category with products. Please delete products first."})
			return
		}

		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

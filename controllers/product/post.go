package productcontroller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

const (
	productUploadSubdir = "products"
	productPublicPath   = "/uploads/products"
)

// CreateProduct creates a new product with an optional image upload.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		categoryIDStr := c.PostForm("category_id")
		if name == "" || priceStr == "" || categoryIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, price, and category_id are required"})
			return
		}

		// Optional fields
		description := c.PostForm("description")
		stockStr := c.PostForm("stock")
		imageURL := c.PostForm("image_url")
		isActive := c.DefaultPostForm("is_active", "true") == "true"

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		var stock int
		if stockStr != "" {
			stock, err = strconv.Atoi(stockStr)
			if err != nil || stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}

		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		var category models.Category
		if err := db.First(&category, uint(categoryID)).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		// Image: URL takes priority over upload
		image := imageURL
		if image == "" {
			if file, err := c.FormFile("image"); err == nil {
				saved, err := saveUploadedImage(c, file, productUploadSubdir, productPublicPath)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
					return
				}
				image = saved
			}
		}

		product := models.Product{
			Name:        name,
			Description: description,
			Price:       price,
			Stock:       stock,
			CategoryID:  uint(categoryID),
			Image:       image,
			IsActive:    isActive,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// saveUploadedImage stores a multipart upload under the configured upload dir
// and returns its public URL path.
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader, subdir, publicPath string) (string, error) {
	dir := filepath.Join(uploadDir(), subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return publicPath + "/" + filename, nil
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./static/uploads"
}

func sanitizeFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	base = strings.ReplaceAll(base, " ", "_")
	return base + ext
}

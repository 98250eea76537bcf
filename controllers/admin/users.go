package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

// GetAllUsers lists accounts, admins first.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "username", "email", "phone", "is_admin", "is_active", "created_at").
			Order("is_admin desc, created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// ToggleUser activates/deactivates a customer account. Admin accounts cannot
// be modified.
func ToggleUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if user.IsAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot modify admin users"})
			return
		}

		if err := db.Model(&user).Update("is_active", !user.IsActive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}

		status := "deactivated"
		if user.IsActive {
			status = "activated"
		}
		c.JSON(http.StatusOK, gin.H{"message": "User " + status + " successfully", "is_active": user.IsActive})
	}
}

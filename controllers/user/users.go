package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

type UpdateUserInput struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

// GET /user — profile with order statistics.
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var user models.User
		if err := db.Preload("Cart.Items.Product").First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var totalOrders, completedOrders int64
		if err := db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order stats"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("user_id = ? AND status = ?", user.ID, models.OrderStatusDelivered).
			Count(&completedOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order stats"})
			return
		}

		var totalSpent float64
		if err := db.Model(&models.Order{}).
			Where("user_id = ? AND status = ?", user.ID, models.OrderStatusDelivered).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalSpent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":             user,
			"total_orders":     totalOrders,
			"completed_orders": completedOrders,
			"total_spent":      totalSpent,
		})
	}
}

// PUT /user — updates profile fields; a password change requires the current
// password to verify.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Username/email must stay unique across other users
		if input.Username != nil || input.Email != nil {
			username := user.Username
			if input.Username != nil {
				username = *input.Username
			}
			email := user.Email
			if input.Email != nil {
				email = *input.Email
			}

			var existing models.User
			err := db.Where("(username = ? OR email = ?) AND id != ?", username, email, user.ID).
				First(&existing).Error
			if err == nil {
				msg := "Email already registered to another user"
				if existing.Username == username {
					msg = "Username already taken by another user"
				}
				c.JSON(http.StatusConflict, gin.H{"error": msg})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing users"})
				return
			}
		}

		updates := make(map[string]interface{})
		if input.Username != nil {
			updates["username"] = *input.Username
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Address != nil {
			updates["address"] = *input.Address
		}

		if input.NewPassword != "" {
			if !user.CheckPassword(input.CurrentPassword) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
				return
			}
			if len(input.NewPassword) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 6 characters"})
				return
			}
			if err := user.SetPassword(input.NewPassword); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			updates["password_hash"] = user.PasswordHash
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		c.JSON(http.StatusOK, user)
	}
}

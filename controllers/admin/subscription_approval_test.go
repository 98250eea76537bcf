package adminController

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Subscription{},
		&models.SubscriptionItem{},
	))
	return db
}

func newReviewRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/subscriptions", ListSubscriptions(db))
	r.GET("/subscriptions/:id", GetSubscription(db))
	r.POST("/subscriptions/:id/approve", ApproveSubscription(db))
	r.POST("/subscriptions/:id/reject", RejectSubscription(db))
	r.POST("/subscriptions/:id/toggle", ToggleSubscriptionStatus(db))
	r.DELETE("/subscriptions/:id", DeleteSubscription(db))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedSubscription(t *testing.T, db *gorm.DB, status models.SubscriptionStatus, active bool) models.Subscription {
	t.Helper()

	user := models.User{
		Username: fmt.Sprintf("user-%s-%v", status, active),
		Email:    fmt.Sprintf("%s-%v@example.com", status, active),
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)

	sub := models.Subscription{
		UserID:       user.ID,
		Name:         "Weekly Box",
		Frequency:    models.FrequencyWeekly,
		NextDelivery: time.Now(),
		IsActive:     active,
		Status:       status,
	}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func TestApproveSubscription(t *testing.T) {
	db := openTestDB(t)
	sub := seedSubscription(t, db, models.SubscriptionStatusPending, false)
	r := newReviewRouter(db)

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/subscriptions/%d/approve", sub.ID),
		`{"admin_notes":"verified address"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Subscription
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Equal(t, models.SubscriptionStatusApproved, got.Status)
	assert.True(t, got.IsActive)
	assert.Equal(t, "verified address", got.AdminNotes)
}

func TestRejectSubscription(t *testing.T) {
	db := openTestDB(t)
	sub := seedSubscription(t, db, models.SubscriptionStatusPending, true)
	r := newReviewRouter(db)

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/subscriptions/%d/reject", sub.ID),
		`{"admin_notes":"out of delivery area"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Subscription
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Equal(t, models.SubscriptionStatusRejected, got.Status)
	assert.False(t, got.IsActive)
	assert.Equal(t, "out of delivery area", got.AdminNotes)
}

func TestToggleRequiresApprovedStatus(t *testing.T) {
	db := openTestDB(t)
	pending := seedSubscription(t, db, models.SubscriptionStatusPending, true)
	approved := seedSubscription(t, db, models.SubscriptionStatusApproved, true)
	r := newReviewRouter(db)

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/subscriptions/%d/toggle", pending.ID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/subscriptions/%d/toggle", approved.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Subscription
	require.NoError(t, db.First(&got, approved.ID).Error)
	assert.False(t, got.IsActive)
}

func TestListSubscriptionsFiltersAndCounts(t *testing.T) {
	db := openTestDB(t)
	seedSubscription(t, db, models.SubscriptionStatusPending, true)
	seedSubscription(t, db, models.SubscriptionStatusApproved, true)
	seedSubscription(t, db, models.SubscriptionStatusApproved, false)
	seedSubscription(t, db, models.SubscriptionStatusRejected, false)
	r := newReviewRouter(db)

	w := doJSON(r, http.MethodGet, "/subscriptions?status=approved", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Subscriptions []models.Subscription `json:"subscriptions"`
		Total         int64                 `json:"total"`
		PendingCount  int64                 `json:"pending_count"`
		ApprovedCount int64                 `json:"approved_count"`
		RejectedCount int64                 `json:"rejected_count"`
		ActiveCount   int64                 `json:"active_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Subscriptions, 2)
	assert.EqualValues(t, 4, resp.Total)
	assert.EqualValues(t, 1, resp.PendingCount)
	assert.EqualValues(t, 2, resp.ApprovedCount)
	assert.EqualValues(t, 1, resp.RejectedCount)
	assert.EqualValues(t, 1, resp.ActiveCount)
}

func TestDeleteSubscriptionRemovesItems(t *testing.T) {
	db := openTestDB(t)
	sub := seedSubscription(t, db, models.SubscriptionStatusApproved, true)

	category := models.Category{Name: "Dairy", IsActive: true}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{Name: "Milk", Price: 2.50, Stock: 10, CategoryID: category.ID, IsActive: true}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.SubscriptionItem{
		SubscriptionID: sub.ID, ProductID: product.ID, Quantity: 2,
	}).Error)

	r := newReviewRouter(db)
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/subscriptions/%d", sub.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var subs, items int64
	require.NoError(t, db.Model(&models.Subscription{}).Count(&subs).Error)
	require.NoError(t, db.Model(&models.SubscriptionItem{}).Count(&items).Error)
	assert.EqualValues(t, 0, subs)
	assert.EqualValues(t, 0, items)
}

package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

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
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedUserWithCart(t *testing.T, db *gorm.DB) (models.User, models.Cart) {
	t.Helper()

	user := models.User{
		Username: "alice",
		Email:    "alice@example.com",
		IsActive: true,
		Phone:    "9876543210",
		Address:  "12 Market Street",
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)

	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	return user, cart
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	category := models.Category{Name: "Pantry-" + name, IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func addToCart(t *testing.T, db *gorm.DB, cartID, productID uint, qty int) {
	t.Helper()

	require.NoError(t, db.Create(&models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
	}).Error)
}

func TestPlaceOrderSuccess(t *testing.T) {
	db := openTestDB(t)
	user, cart := seedUserWithCart(t, db)
	milk := seedProduct(t, db, "Milk", 2.50, 10)
	bread := seedProduct(t, db, "Bread", 1.25, 8)
	addToCart(t, db, cart.ID, milk.ID, 3)
	addToCart(t, db, cart.ID, bread.ID, 2)

	order, err := PlaceOrder(db, user.ID, CheckoutRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderRef)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, user.Address, order.DeliveryAddress)
	assert.Equal(t, user.Phone, order.Phone)
	assert.InDelta(t, 3*2.50+2*1.25, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 2)

	prices := map[uint]float64{milk.ID: 2.50, bread.ID: 1.25}
	for _, item := range order.Items {
		assert.InDelta(t, prices[item.ProductID], item.Price, 1e-9)
	}

	var gotMilk, gotBread models.Product
	require.NoError(t, db.First(&gotMilk, milk.ID).Error)
	require.NoError(t, db.First(&gotBread, bread.ID).Error)
	assert.Equal(t, 7, gotMilk.Stock)
	assert.Equal(t, 6, gotBread.Stock)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.ID).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining, "checkout must clear the cart")
}

func TestPlaceOrderOverridesDeliveryDetails(t *testing.T) {
	db := openTestDB(t)
	user, cart := seedUserWithCart(t, db)
	milk := seedProduct(t, db, "Milk", 2.50, 10)
	addToCart(t, db, cart.ID, milk.ID, 1)

	order, err := PlaceOrder(db, user.ID, CheckoutRequest{
		Phone:           "1112223333",
		DeliveryAddress: "7 Hill Road",
		PaymentMethod:   "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, "7 Hill Road", order.DeliveryAddress)
	assert.Equal(t, "1112223333", order.Phone)
	assert.Equal(t, models.PaymentMethodUPI, order.PaymentMethod)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := openTestDB(t)
	user, cart := seedUserWithCart(t, db)
	milk := seedProduct(t, db, "Milk", 2.50, 10)
	butter := seedProduct(t, db, "Butter", 3.00, 1)
	addToCart(t, db, cart.ID, milk.ID, 2)
	addToCart(t, db, cart.ID, butter.ID, 5)

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	// The transaction restores the decrement applied before the failing item.
	var gotMilk, gotButter models.Product
	require.NoError(t, db.First(&gotMilk, milk.ID).Error)
	require.NoError(t, db.First(&gotButter, butter.ID).Error)
	assert.Equal(t, 10, gotMilk.Stock)
	assert.Equal(t, 1, gotButter.Stock)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 0, orderCount)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.ID).Count(&remaining).Error)
	assert.EqualValues(t, 2, remaining, "cart must survive a failed checkout")
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := openTestDB(t)
	user, _ := seedUserWithCart(t, db)

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{})
	require.Error(t, err)
	assert.Equal(t, "cart is empty", err.Error())
}

func TestPlaceOrderRequiresContactDetails(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Username: "bob", Email: "bob@example.com", IsActive: true}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)
	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)

	milk := seedProduct(t, db, "Milk", 2.50, 10)
	addToCart(t, db, cart.ID, milk.ID, 1)

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery address and phone")
}

func TestPlaceOrderInvalidPaymentMethod(t *testing.T) {
	db := openTestDB(t)
	user, cart := seedUserWithCart(t, db)
	milk := seedProduct(t, db, "Milk", 2.50, 10)
	addToCart(t, db, cart.ID, milk.ID, 1)

	_, err := PlaceOrder(db, user.ID, CheckoutRequest{PaymentMethod: "bitcoin"})
	require.Error(t, err)
	assert.Equal(t, "invalid payment method", err.Error())
}

func TestGetOrderByIDOrRef(t *testing.T) {
	db := openTestDB(t)
	user, cart := seedUserWithCart(t, db)
	milk := seedProduct(t, db, "Milk", 2.50, 10)
	addToCart(t, db, cart.ID, milk.ID, 1)

	placed, err := PlaceOrder(db, user.ID, CheckoutRequest{})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Next()
	})
	r.GET("/orders/:orderID", GetOrderByIDHandler(db))

	fetch := func(key string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/"+key, nil))
		return w
	}

	// Numeric id and order ref both resolve to the same order.
	for _, key := range []string{fmt.Sprint(placed.ID), placed.OrderRef} {
		w := fetch(key)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got models.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, placed.ID, got.ID)
		assert.Equal(t, placed.OrderRef, got.OrderRef)
	}

	assert.Equal(t, http.StatusNotFound, fetch("no-such-ref").Code)
	assert.Equal(t, http.StatusNotFound, fetch("999999").Code)
}

func TestMapOrderStatus(t *testing.T) {
	status, err := mapOrderStatus("DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, status)

	_, err = mapOrderStatus("teleported")
	assert.Error(t, err)
}

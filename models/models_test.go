package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Records created with IsActive false must be stored inactive; a gorm
// default tag on the column would silently flip the zero value to true.
func TestInactiveFlagsPersist(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Category{}, &Product{}, &Subscription{}, &SubscriptionItem{}))

	user := User{Username: "carol", Email: "carol@example.com", IsActive: false}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(&user).Error)

	category := Category{Name: "Seasonal", IsActive: false}
	require.NoError(t, db.Create(&category).Error)

	product := Product{Name: "Mango", Price: 3.0, Stock: 5, CategoryID: category.ID, IsActive: false}
	require.NoError(t, db.Create(&product).Error)

	sub := Subscription{UserID: user.ID, Name: "Paused Box", Frequency: FrequencyDaily, IsActive: false}
	require.NoError(t, db.Create(&sub).Error)

	var gotUser User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	assert.False(t, gotUser.IsActive)

	var gotCategory Category
	require.NoError(t, db.First(&gotCategory, category.ID).Error)
	assert.False(t, gotCategory.IsActive)

	var gotProduct Product
	require.NoError(t, db.First(&gotProduct, product.ID).Error)
	assert.False(t, gotProduct.IsActive)

	var gotSub Subscription
	require.NoError(t, db.First(&gotSub, sub.ID).Error)
	assert.False(t, gotSub.IsActive)
}

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/YugaBharathi29/grocery-app/models"
)

const registerBody = `{
	"username": "alice",
	"email": "alice@example.com",
	"phone": "9876543210",
	"address": "12 Market Street",
	"password": "secret123"
}`

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", RegisterHandler(db))
	r.POST("/login", LoginHandler(db))
	return r, db
}

func doJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, db := newAuthRouter(t)

	w := doJSON(r, "/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Registration also creates the user's cart.
	var cartCount int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&cartCount).Error)
	assert.EqualValues(t, 1, cartCount)

	w = doJSON(r, "/login", `{"username":"alice","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)

	token, err := jwt.Parse(resp.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, false, claims["is_admin"])
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r, _ := newAuthRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(r, "/register", registerBody).Code)
	assert.Equal(t, http.StatusConflict, doJSON(r, "/register", registerBody).Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := newAuthRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(r, "/register", registerBody).Code)
	assert.Equal(t, http.StatusUnauthorized,
		doJSON(r, "/login", `{"username":"alice","password":"nope"}`).Code)
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	r, db := newAuthRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(r, "/register", registerBody).Code)
	require.NoError(t, db.Model(&models.User{}).
		Where("username = ?", "alice").Update("is_active", false).Error)

	assert.Equal(t, http.StatusForbidden,
		doJSON(r, "/login", `{"username":"alice","password":"secret123"}`).Code)
}

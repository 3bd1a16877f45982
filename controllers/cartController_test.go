package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RAMIR007/konfort-total2/cart"
	"github.com/RAMIR007/konfort-total2/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartRouter(db *gorm.DB, storage cart.Storage, claims jwt.MapClaims) *gin.Engine {
	router := gin.New()
	group := router.Group("/cart", fakeAuth(claims))
	group.GET("", GetCart(storage))
	group.POST("/items", AddCartItem(db, storage))
	group.PATCH("/items/:productId", UpdateCartItem(storage))
	group.DELETE("/items/:productId", RemoveCartItem(storage))
	group.DELETE("", ClearCart(storage))
	return router
}

type cartResponse struct {
	Items     []cart.Line `json:"items"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
}

func doCartRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCartEndpoints(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer)
	product := createTestProduct(t, db, "Sofá Monterrey", 10, 5)
	storage := cart.NewMemoryStorage()
	router := newCartRouter(db, storage, claimsFor(user))

	addBody := fmt.Sprintf(`{"productId":%d,"quantity":3}`, product.ID)
	w := doCartRequest(router, http.MethodPost, "/cart/items", addBody)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Equal(t, 30.0, resp.Total)
	assert.Equal(t, 3, resp.ItemCount)

	// Merging past the stock limit rejects the whole add.
	w = doCartRequest(router, http.MethodPost, "/cart/items", addBody)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"available":5`)

	// Quantity set exactly.
	w = doCartRequest(router, http.MethodPatch, fmt.Sprintf("/cart/items/%d", product.ID), `{"quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decodeCart(t, w).ItemCount)

	// The cart survives across requests through storage.
	w = doCartRequest(router, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 50.0, resp.Total)

	w = doCartRequest(router, http.MethodDelete, fmt.Sprintf("/cart/items/%d", product.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Items)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer)
	storage := cart.NewMemoryStorage()
	router := newCartRouter(db, storage, claimsFor(user))

	w := doCartRequest(router, http.MethodPost, "/cart/items", `{"productId":999,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCartEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer)
	product := createTestProduct(t, db, "Mesa de Centro", 25, 3)
	storage := cart.NewMemoryStorage()
	router := newCartRouter(db, storage, claimsFor(user))

	body := fmt.Sprintf(`{"productId":%d,"quantity":2}`, product.ID)
	w := doCartRequest(router, http.MethodPost, "/cart/items", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(router, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0.0, resp.Total)
}

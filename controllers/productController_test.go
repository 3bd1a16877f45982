package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RAMIR007/konfort-total2/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.GET("/products", GetProducts(db))
	router.GET("/products/:id", GetProduct(db))
	router.GET("/categories", GetCategories(db))
	router.DELETE("/admin/products/:id", DeleteProduct(db))
	return router
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type productListResponse struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"hasMore"`
}

func TestGetProductsFiltersAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	router := newCatalogRouter(db)

	living := models.Category{Name: "Sala"}
	bedroom := models.Category{Name: "Dormitorio"}
	require.NoError(t, db.Create(&living).Error)
	require.NoError(t, db.Create(&bedroom).Error)

	sofa := createTestProduct(t, db, "Sofá", 450, 3)
	require.NoError(t, db.Model(&sofa).Update("category_id", living.ID).Error)
	bed := createTestProduct(t, db, "Cama", 600, 2)
	require.NoError(t, db.Model(&bed).Update("category_id", bedroom.ID).Error)

	// Deactivated products stay out of the listing.
	retired := createTestProduct(t, db, "Butaca vieja", 100, 1)
	require.NoError(t, db.Model(&retired).Update("is_active", false).Error)

	w := getPath(router, "/products")
	require.Equal(t, http.StatusOK, w.Code)

	var list productListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.EqualValues(t, 2, list.Total)
	assert.Len(t, list.Products, 2)
	assert.False(t, list.HasMore)

	w = getPath(router, fmt.Sprintf("/products?categoryId=%d", living.ID))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Sofá", list.Products[0].Name)

	w = getPath(router, "/products?limit=1&offset=0")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Products, 1)
	assert.EqualValues(t, 2, list.Total)
	assert.True(t, list.HasMore)
}

func TestGetProductHidesInactive(t *testing.T) {
	db := setupTestDB(t)
	router := newCatalogRouter(db)

	product := createTestProduct(t, db, "Mesa", 120, 4)

	w := getPath(router, fmt.Sprintf("/products/%d", product.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "Mesa", fetched.Name)

	require.NoError(t, db.Model(&product).Update("is_active", false).Error)
	w = getPath(router, fmt.Sprintf("/products/%d", product.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = getPath(router, "/products/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductDeactivates(t *testing.T) {
	db := setupTestDB(t)
	router := newCatalogRouter(db)

	product := createTestProduct(t, db, "Armario", 300, 2)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/products/%d", product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.False(t, reloaded.IsActive)

	req = httptest.NewRequest(http.MethodDelete, "/admin/products/9999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

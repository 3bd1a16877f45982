package controllers

import (
	"fmt"
	"testing"

	"github.com/RAMIR007/konfort-total2/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()

	user := models.User{
		Name:     "Ana Pérez",
		Email:    fmt.Sprintf("%s-%s@example.com", t.Name(), role),
		Password: "hashed",
		Phone:    "+53 5555 1234",
		Address:  "Vedado, La Habana",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:       name,
		Price:      price,
		CostPrice:  price / 2,
		Stock:      stock,
		IsActive:   true,
		CategoryID: 1,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func claimsFor(user models.User) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": float64(user.ID),
		"email":   user.Email,
		"name":    user.Name,
		"role":    string(user.Role),
	}
}

// fakeAuth stands in for RequireAuth in router tests.
func fakeAuth(claims jwt.MapClaims) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("user", claims)
		ctx.Next()
	}
}

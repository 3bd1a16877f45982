package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/RAMIR007/konfort-total2/cart"
	"github.com/RAMIR007/konfort-total2/middlewares"
	"github.com/RAMIR007/konfort-total2/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func cartOwner(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

func loadCartStore(ctx *gin.Context, storage cart.Storage) (*cart.Store, bool) {
	userID, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	store, err := cart.New(cartOwner(userID), storage)
	if err != nil {
		log.Println("Cart load error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to load cart")
		return nil, false
	}
	return store, true
}

func productSnapshot(product models.Product) cart.Product {
	var images []string
	if len(product.Images) > 0 {
		// A malformed images column only loses the thumbnails, not the line.
		_ = json.Unmarshal(product.Images, &images)
	}
	return cart.Product{
		ID:     product.ID,
		Name:   product.Name,
		Price:  product.Price,
		Images: images,
		Stock:  product.Stock,
	}
}

func respondCart(ctx *gin.Context, store *cart.Store) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":     store.Lines(),
		"total":     store.Total(),
		"itemCount": store.ItemCount(),
	})
}

func handleCartMutationError(ctx *gin.Context, err error) {
	var stockErr *cart.InsufficientStockError
	if errors.As(err, &stockErr) {
		sendJSONResponse(ctx, http.StatusConflict, gin.H{
			"message":   stockErr.Error(),
			"productId": stockErr.ProductID,
			"available": stockErr.Available,
		})
		return
	}
	log.Println("Cart mutation error:", err)
	sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart")
}

func GetCart(storage cart.Storage) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		store, ok := loadCartStore(ctx, storage)
		if !ok {
			return
		}
		respondCart(ctx, store)
	}
}

// AddCartItem adds a quantity of a catalog product to the caller's cart,
// snapshotting the product's current data into the line.
func AddCartItem(db *gorm.DB, storage cart.Storage) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var input struct {
			ProductID uint `json:"productId" binding:"required"`
			Quantity  int  `json:"quantity"`
		}
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		var product models.Product
		result := db.Where("is_active = ?", true).First(&product, input.ProductID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
			} else {
				log.Println("Database error:", result.Error)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to validate product")
			}
			return
		}

		store, ok := loadCartStore(ctx, storage)
		if !ok {
			return
		}

		if err := store.AddItem(productSnapshot(product), input.Quantity); err != nil {
			handleCartMutationError(ctx, err)
			return
		}
		respondCart(ctx, store)
	}
}

// UpdateCartItem sets a line's quantity exactly; zero removes the line.
func UpdateCartItem(storage cart.Storage) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("productId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product id")
			return
		}

		var input struct {
			Quantity int `json:"quantity"`
		}
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
			return
		}

		store, ok := loadCartStore(ctx, storage)
		if !ok {
			return
		}

		if err := store.UpdateQuantity(uint(productID), input.Quantity); err != nil {
			handleCartMutationError(ctx, err)
			return
		}
		respondCart(ctx, store)
	}
}

func RemoveCartItem(storage cart.Storage) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productID, err := strconv.Atoi(ctx.Param("productId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product id")
			return
		}

		store, ok := loadCartStore(ctx, storage)
		if !ok {
			return
		}

		if err := store.RemoveItem(uint(productID)); err != nil {
			handleCartMutationError(ctx, err)
			return
		}
		respondCart(ctx, store)
	}
}

func ClearCart(storage cart.Storage) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		store, ok := loadCartStore(ctx, storage)
		if !ok {
			return
		}

		if err := store.Clear(); err != nil {
			handleCartMutationError(ctx, err)
			return
		}
		respondCart(ctx, store)
	}
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Konfort Total API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

CATALOG
- GET "/products" - List active products (categoryId, limit, offset)
- GET "/products/:id" - Get product by ID
- GET "/categories" - List categories
- POST "/products" - Create product (admin)
- PUT "/products/:id" - Update product (admin)
- DELETE "/products/:id" - Deactivate product (admin)
- POST "/products/:id/images" - Upload product images (admin)

CART
- GET "/cart" - Get the current cart
- POST "/cart/items" - Add a product to the cart
- PATCH "/cart/items/:productId" - Set a line's quantity
- DELETE "/cart/items/:productId" - Remove a line
- DELETE "/cart" - Empty the cart

ORDERS
- POST "/orders" - Submit an order
- GET "/orders" - List orders (own; admin: all, paginated)
- GET "/orders/:orderId" - Get order by ID
- GET "/orders/:orderId/voucher" - Download payment voucher PDF
- PATCH "/orders/:orderId/status" - Update order status (admin)

ADMIN
- GET "/admin/stats" - Revenue, costs and sales statistics`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

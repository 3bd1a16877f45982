package routes

import (
	"github.com/RAMIR007/konfort-total2/cart"
	"github.com/RAMIR007/konfort-total2/controllers"
	"github.com/RAMIR007/konfort-total2/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CartRoutes(server *gin.Engine, db *gorm.DB, storage cart.Storage) {
	group := server.Group("/cart", middlewares.RequireAuth())
	{
		group.GET("", controllers.GetCart(storage))
		group.POST("/items", controllers.AddCartItem(db, storage))
		group.PATCH("/items/:productId", controllers.UpdateCartItem(storage))
		group.DELETE("/items/:productId", controllers.RemoveCartItem(storage))
		group.DELETE("", controllers.ClearCart(storage))
	}
}

package routes

import (
	"github.com/RAMIR007/konfort-total2/controllers"
	"github.com/RAMIR007/konfort-total2/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ProductRoutes(server *gin.Engine, db *gorm.DB) {
	server.GET("/products", controllers.GetProducts(db))
	server.GET("/products/:id", controllers.GetProduct(db))
	server.GET("/categories", controllers.GetCategories(db))

	admin := server.Group("/products", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateProduct(db))
		admin.PUT("/:id", controllers.UpdateProduct(db))
		admin.DELETE("/:id", controllers.DeleteProduct(db))
		admin.POST("/:id/images", controllers.UploadProductImages(db))
	}
}

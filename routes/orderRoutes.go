package routes

import (
	"github.com/RAMIR007/konfort-total2/controllers"
	"github.com/RAMIR007/konfort-total2/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func OrderRoutes(server *gin.Engine, db *gorm.DB) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder(db))
		orders.GET("", controllers.GetOrders(db))
		orders.GET("/:orderId", controllers.GetOrderByID(db))
		orders.GET("/:orderId/voucher", controllers.DownloadVoucher(db))
		orders.PATCH("/:orderId/status", middlewares.RequireAdmin(), controllers.UpdateOrderStatus(db))
	}
}

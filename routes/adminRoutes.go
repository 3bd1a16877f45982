package routes

import (
	"github.com/RAMIR007/konfort-total2/controllers"
	"github.com/RAMIR007/konfort-total2/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AdminRoutes(server *gin.Engine, db *gorm.DB) {
	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/stats", controllers.GetAdminStats(db))
	}
}

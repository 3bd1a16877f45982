package routes

import (
	"github.com/RAMIR007/konfort-total2/controllers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRoutes(server *gin.Engine, db *gorm.DB) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup(db))
		auth.POST("/login", controllers.Login(db))
		auth.POST("/forgot-password", controllers.SendPasswordResetLink(db))
		auth.POST("/reset-password/:resetToken", controllers.ResetPassword(db))
	}
}

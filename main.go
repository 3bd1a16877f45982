package main

import (
	"time"

	"github.com/RAMIR007/konfort-total2/cart"
	"github.com/RAMIR007/konfort-total2/initializers"
	"github.com/RAMIR007/konfort-total2/middlewares"
	"github.com/RAMIR007/konfort-total2/ratelimit"
	"github.com/RAMIR007/konfort-total2/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	rateLimitMax    = 100
	rateLimitWindow = time.Minute
)

func main() {
	initializers.LoadEnv()
	db := initializers.ConnectToDB()
	initializers.SyncDatabase(db)

	redisClient := initializers.ConnectToRedis()

	var cartStorage cart.Storage
	var limiter ratelimit.Limiter
	if redisClient != nil {
		cartStorage = cart.NewRedisStorage(redisClient)
		limiter = ratelimit.NewRedisLimiter(redisClient, rateLimitMax, rateLimitWindow)
	} else {
		cartStorage = cart.NewMemoryStorage()
		limiter = ratelimit.NewFixedWindow(rateLimitMax, rateLimitWindow)
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://www.konfort-total.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.RateLimit(limiter))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, db)
	routes.ProductRoutes(server, db)
	routes.CartRoutes(server, db, cartStorage)
	routes.OrderRoutes(server, db)
	routes.AdminRoutes(server, db)

	server.Run()
}

package initializers

import (
	"log"

	"github.com/RAMIR007/konfort-total2/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database synced successfully.")
}

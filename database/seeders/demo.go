package seeders

import (
	"github.com/shashiranjanraj/posnet/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo inserts a small catalogue with warehouse pools for local
// development. Skips itself when products already exist.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{ID: 1, Name: "Widget", Category: "hardware", Price: 2.0, Stock: 25},
		{ID: 2, Name: "Gadget", Category: "hardware", Price: 9.5, Stock: 10},
		{ID: 3, Name: "Sprocket", Category: "parts", Price: 4.75, Stock: 40},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	pools := []models.CentralStock{
		{ProductID: 1, Quantity: 100},
		{ProductID: 2, Quantity: 50},
		{ProductID: 3, Quantity: 200},
	}
	if err := db.Create(&pools).Error; err != nil {
		return err
	}

	logistics := []models.LogisticsStock{
		{ProductID: 1, Quantity: 100},
		{ProductID: 2, Quantity: 50},
		{ProductID: 3, Quantity: 200},
	}
	return db.Create(&logistics).Error
}

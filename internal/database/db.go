package database

import (
	"log"

	"merchstock-backend/internal/config"
	"merchstock-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.GiftCategory{},
		&models.ApparelCategory{},
		&models.ApparelSize{},
		&models.ApparelColor{},
		&models.TakeReason{},
		&models.Gift{},
		&models.ApparelProduct{},
		&models.ApparelVariant{},
		&models.StockTransaction{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := SeedReferenceData(DB); err != nil {
		log.Fatalf("Reference data seed failed: %v", err)
	}

	log.Println("Database connected, migration completed.")
}

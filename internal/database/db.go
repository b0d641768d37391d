package database

import (
	"log"

	"feedlot-backend/internal/config"
	"feedlot-backend/internal/models"

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

	// Expense.scope migration: older rows predate the scope column and
	// carry only the reference ids. Backfill before AutoMigrate adds the
	// NOT NULL constraint, so existing data keeps loading.
	if DB.Migrator().HasTable(&models.Expense{}) {
		if !DB.Migrator().HasColumn(&models.Expense{}, "scope") {
			log.Println("Adding expenses.scope column...")
			if err := DB.Exec("ALTER TABLE expenses ADD COLUMN scope VARCHAR(20)").Error; err != nil {
				log.Printf("Error adding scope column (may already exist): %v", err)
			}
		}
		var nullCount int64
		DB.Raw("SELECT COUNT(*) FROM expenses WHERE scope IS NULL").Scan(&nullCount)
		if nullCount > 0 {
			log.Printf("Backfilling scope for %d expense rows...", nullCount)
			DB.Exec("UPDATE expenses SET scope = 'single_animal' WHERE scope IS NULL AND animal_id IS NOT NULL")
			DB.Exec("UPDATE expenses SET scope = 'single_lot' WHERE scope IS NULL AND lot_id IS NOT NULL")
			DB.Exec("UPDATE expenses SET scope = 'all_animals' WHERE scope IS NULL")
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Diet{},
		&models.Lot{},
		&models.Animal{},
		&models.Weighing{},
		&models.Expense{},
		&models.LotMovement{},
		&models.LotDeletionLog{},
		&models.HealthProtocol{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate error: %v", err)
	}

	log.Println("Database connected. Migration complete.")
}

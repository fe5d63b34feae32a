package db

import (
	"fmt"
	"log"

	"equiptrack/config"
	"equiptrack/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(gdb); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return gdb
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Vendor{},
		&models.Model{},
		&models.Equipment{},
		&models.Applicant{},
		&models.LoanLog{},
		&models.InventorySnapshot{},
		&models.InventoryCheck{},
	); err != nil {
		return err
	}

	// 同一设备最多一条未归还台账
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_equip
	  ON %s (equipment_id)
	  WHERE date_in IS NULL;
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	// 查当前借用更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_equip_dateout_desc
	  ON %s (equipment_id, date_out DESC)
	  WHERE date_in IS NULL;
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	return nil
}

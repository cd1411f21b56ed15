package models

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes database connection
func InitDB(dsn string) (*gorm.DB, error) {
	// Connect to Postgres database
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate the database models
	err = db.AutoMigrate(
		&User{},
		&Otp{},
		&OpdRecord{},
		&CustomServiceLine{},
		&PaymentDetail{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

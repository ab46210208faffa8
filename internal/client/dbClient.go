package client

import (
	"log"
	"time"

	"foodmate-server/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func InitSqliteClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Meal{},
		&domain.Order{},
		&domain.Payment{},
		&domain.Review{},
	); err != nil {
		log.Fatal(err)
	}

	return db
}

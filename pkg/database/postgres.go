package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the Postgres connection. TranslateError is on so unique
// constraint violations surface as gorm.ErrDuplicatedKey, which the ledger
// relies on for idempotent webhook inserts.
func NewDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

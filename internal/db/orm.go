package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	gormModels "solo-skies/skyledger/internal/models/gorm"
)

var PgDB *gorm.DB

// InitORM opens the journal database. A postgres DSN gets the
// postgres driver; anything else is treated as a sqlite path, which
// is what local development and tests use.
func InitORM(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if len(dsn) >= 8 && dsn[:8] == "postgres" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.AutoMigrate(&gormModels.EventRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}

	PgDB = db
	log.Println("Connected to journal database via GORM")
	return db, nil
}

package config

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	repository "skill-market.com/skill-market/internal/repositories"
)

// NewDatabaseClient opens the configured database and runs migrations.
func NewDatabaseClient(driver, dsn string) *gorm.DB {
	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector(driver, dsn), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("db handle failed: %v", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}

func dialector(driver, dsn string) gorm.Dialector {
	if driver == "postgres" {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

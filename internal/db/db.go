package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/synapselink/backend/internal/config"
)

// NewDB opens the configured store: Postgres when a DSN is present,
// otherwise a local SQLite file for development.
//
// TranslateError is on so duplicate-key violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.DB.DSN != "" {
		db, err = gorm.Open(postgres.Open(cfg.DB.DSN), gormCfg)
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.DB.SQLitePath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// AutoMigrate ensures schema is in sync with models.
	if err := db.AutoMigrate(&Profile{}, &Connection{}, &Endorsement{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

// Package postgres opens the GORM connection used by the relational
// repositories and migrates their tables.
//
// Usage:
//
//	db, err := postgres.Open(postgres.DSN(host, port, user, password, name, sslmode))
//	if err != nil {
//		return err
//	}
//	if err = postgres.Migrate(db); err != nil {
//		return err
//	}
//	movers := moverrepo.NewGormMoverRepository(db)
package postgres

import (
	"fmt"

	"magicmover/internal/adapters/out/postgres/activityrepo"
	"magicmover/internal/adapters/out/postgres/itemrepo"
	"magicmover/internal/adapters/out/postgres/moverrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a keyword/value connection string.
func DSN(host, port, user, password, name, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslMode,
	)
}

// Open connects with GORM's own logging silenced; failures reach the caller
// as errors and are logged there.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&itemrepo.ItemDTO{},
		&moverrepo.MoverDTO{},
		&moverrepo.MoverItemDTO{},
		&activityrepo.ActivityDTO{},
	); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

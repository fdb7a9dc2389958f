package config

import (
	"menuboard-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to the sqlite database and migrates all models.
// The returned handle is the single shared store; callers inject it into
// services rather than reading a package global.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.ConsumerMenuItem{},
		&models.Image{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

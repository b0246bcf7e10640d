package database

import (
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"retaildash/internal/config"
)

func Connect(c *config.Config) (*gorm.DB, error) {
	// TranslateError maps the driver's duplicate-key error onto
	// gorm.ErrDuplicatedKey; the unique index on users.email is what
	// arbitrates concurrent registrations.
	db, err := gorm.Open(mysql.Open(c.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Branch{}, &User{}, &UploadLog{}); err != nil {
		return nil, err
	}

	log.Debug("GORM connected to database")

	return db, nil
}

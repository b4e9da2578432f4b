package database

import (
	"gorm.io/gorm"

	"tixmarket/internal/requestlog"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&requestlog.Entry{},
	)
}

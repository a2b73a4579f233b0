package datastore

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/fluwatch/fluwatch-go/internal/conf"
	"github.com/fluwatch/fluwatch-go/internal/errors"
	"github.com/fluwatch/fluwatch-go/internal/logging"
)

// New selects the datastore implementation for the configured output.
// Validation guarantees at most one database is enabled; SQLite is the
// default when neither is.
func New(settings *conf.Settings) Interface {
	if settings.Output.MySQL.Enabled {
		return &MySQLStore{Settings: settings}
	}
	return &SQLiteStore{Settings: settings}
}

// performAutoMigration creates or updates the schema for all models.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Context("db_type", dbType).
			Context("operation", "auto_migration").
			Build()
	}

	if debug {
		logging.ForService("datastore").Debug("database initialized",
			slog.String("db_type", dbType),
			slog.String("connection", connectionInfo))
	}
	return nil
}

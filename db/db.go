package db

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultPath is where the client keeps its local state database.
var DefaultPath = filepath.Join(os.Getenv("HOME"), ".bariq/bariq.db")

// Open opens (creating if needed) the sqlite database at the given path
// and migrates the tables. Returns the handle; callers own closing it.
func Open(path string) (*gorm.DB, error) {
	if err := createDBDirectory(path); err != nil {
		return nil, err
	}

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database")
		return nil, err
	}

	if err := conn.AutoMigrate(&Credential{}); err != nil {
		log.Error().Err(err).Msg("Failed to auto-migrate database")
		return nil, err
	}

	configureLogger(conn)
	log.Debug().Str("path", path).Msg("Database opened")
	return conn, nil
}

// Close closes the underlying database connection.
func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get raw database connection")
		return err
	}
	return sqlDB.Close()
}

// createDBDirectory creates the parent directory of the database file if it does not exist.
func createDBDirectory(path string) error {
	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			log.Error().Err(err).Msg("Failed to create database directory")
			return err
		}
	}
	return nil
}

// configureLogger silences GORM unless debug logging is enabled.
func configureLogger(conn *gorm.DB) {
	if zerolog.GlobalLevel() == zerolog.Disabled {
		conn.Logger = conn.Logger.LogMode(0) // Silent mode
	} else {
		conn.Logger = conn.Logger.LogMode(4) // Debug mode
	}
}

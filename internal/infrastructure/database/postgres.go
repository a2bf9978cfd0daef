package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DocumentRecord is the row backing one stored JSON document. Body has no
// explicit type so each dialect picks its unbounded text type: text on
// Postgres, longtext on MySQL. MySQL's plain TEXT stops at 64 KiB, which
// the sales history outgrows.
type DocumentRecord struct {
	Key       string `gorm:"primaryKey;size:64"`
	Body      string `gorm:"not null"`
	UpdatedAt time.Time
}

func (DocumentRecord) TableName() string {
	return "documents"
}

func gormConfig(debug bool) *gorm.Config {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := configurePool(db); err != nil {
		return nil, err
	}

	log.Info().Msg("Successfully connected to PostgreSQL database")
	return db, nil
}

// NewMySQLDB creates a new MySQL database connection
func NewMySQLDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := configurePool(db); err != nil {
		return nil, err
	}

	log.Info().Msg("Successfully connected to MySQL database")
	return db, nil
}

func configurePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	return nil
}

// AutoMigrate creates the documents table.
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")

	if err := db.AutoMigrate(&DocumentRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("Database migrations completed successfully")
	return nil
}

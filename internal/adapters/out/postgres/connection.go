package postgres

import (
	"fmt"

	"parcelflow/internal/adapters/out/postgres/orderrepo"
	"parcelflow/internal/pkg/errs"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionConfig holds PostgreSQL connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a libpq keyword/value connection string.
func (c ConnectionConfig) DSN() (string, error) {
	if c.Host == "" {
		return "", errs.NewValueIsRequiredError("host")
	}
	if c.Port == "" {
		return "", errs.NewValueIsRequiredError("port")
	}
	if c.User == "" {
		return "", errs.NewValueIsRequiredError("user")
	}
	if c.DBName == "" {
		return "", errs.NewValueIsRequiredError("dbname")
	}

	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode), nil
}

// Open connects with GORM and migrates the archive schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the orders table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return fmt.Errorf("migrate orders: %w", err)
	}
	return nil
}

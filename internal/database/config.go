package database

import (
	"fmt"

	"stockfolio/internal/config"
)

// DSN returns the gorm connection string for the configured driver.
func DSN(c config.Database) string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// MigrateURL returns the golang-migrate URL for a postgres database.
func MigrateURL(c config.Database) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

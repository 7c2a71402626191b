package config

import (
	"fmt"
)

// PostgresConfig holds configuration for the run journal database.
// The journal is disabled when no host is configured.
type PostgresConfig struct {
	User     string `env:"POSTGRES_USER" validate:"required_with=Host"`
	Password string `env:"POSTGRES_PASSWORD" validate:"required_with=Host"`
	Database string `env:"POSTGRES_DB" validate:"required_with=Host"`
	Host     string `env:"POSTGRES_HOSTNAME"`
}

// LoadPostgresConfig loads PostgreSQL configuration from environment variables
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
	}
	if err := check(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Enabled reports whether the run journal should be written
func (c *PostgresConfig) Enabled() bool {
	return c.Host != ""
}

// ConnectionString returns a PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Database)
}

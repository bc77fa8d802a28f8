package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Environment controls cookie hardening: production cookies are Secure
	// and SameSite=None, everything else gets SameSite=Lax.
	Environment string `mapstructure:"environment" validate:"required,oneof=development test production"`
}

// IsProduction reports whether the server runs in the production environment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the store implementation: the document store (mongo)
	// or the relational one (postgres).
	Driver string `mapstructure:"driver" validate:"required,oneof=mongo postgres"`
	URL    string `mapstructure:"url"    validate:"required,url"`
	// Name is the MongoDB database name; ignored by the postgres driver.
	Name             string `mapstructure:"name"               validate:"required_if=Driver mongo"`
	OpTimeoutSeconds int    `mapstructure:"op_timeout_seconds" validate:"required,gt=0,lte=60"`
}

// OpTimeout is the per-operation deadline applied to store calls.
func (c DatabaseConfig) OpTimeout() time.Duration {
	return time.Duration(c.OpTimeoutSeconds) * time.Second
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// BcryptCost is the work factor for password hashes. The floor of 10
	// matches bcrypt.DefaultCost.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=10,lte=31"`
}

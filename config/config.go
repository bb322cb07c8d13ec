// Package config - dashboard configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm/logger"
)

// HTTPConfig dashboard HTTP server config
type HTTPConfig struct {
	// Listen server listen address
	Listen string `yaml:"listen" validate:"required"`
	// ReadTimeout request read timeout
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"gte=0"`
	// WriteTimeout response write timeout
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`
	// ShutdownTimeout graceful shutdown limit
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	// SecureCookie only send the session cookie over HTTPS
	SecureCookie bool `yaml:"secure_cookie"`
}

// DatabaseConfig persistence config
type DatabaseConfig struct {
	// Driver database driver
	Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	// DSN driver specific data source; the file path for sqlite
	DSN string `yaml:"dsn" validate:"required"`
	// SQLLogLevel GORM SQL log level
	SQLLogLevel string `yaml:"sql_log_level" validate:"required,oneof=silent error warn info"`
}

// AuthConfig credential and session config
type AuthConfig struct {
	// SessionSecret HMAC key signing session tokens
	SessionSecret string `yaml:"session_secret" validate:"required,min=16"`
	// SessionTTL session lifetime
	SessionTTL time.Duration `yaml:"session_ttl" validate:"gt=0"`
	// BcryptCost password hashing cost
	BcryptCost int `yaml:"bcrypt_cost" validate:"min=4,max=31"`
}

// NotifyConfig notification config
type NotifyConfig struct {
	// TTL how long a notification stays visible
	TTL time.Duration `yaml:"ttl" validate:"gt=0"`
}

// LoggingConfig logging config
type LoggingConfig struct {
	// Level log level
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`
	// JSON output logs as JSON
	JSON bool `yaml:"json"`
}

// Config dashboard config
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Notify   NotifyConfig   `yaml:"notify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EnvPrefix prefix of the environment variables overriding the config
const EnvPrefix = "ROUTEDESK_"

// Default the built-in config. The session secret has no default.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Listen:          ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:      "sqlite",
			DSN:         "routedesk.db",
			SQLLogLevel: "warn",
		},
		Auth: AuthConfig{
			SessionTTL: 24 * time.Hour,
			BcryptCost: 12,
		},
		Notify: NotifyConfig{
			TTL: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

/*
Load build the config: built-in defaults, then the YAML file if one is given, then
environment overrides. The result is validated.

	@param path string - the YAML config file; empty to skip
	@param lookupEnv func(string) (string, bool) - environment lookup, os.LookupEnv if nil
	@returns the config
*/
func Load(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file '%s' [%w]", path, err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file '%s' [%w]", path, err)
		}
	}

	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if err := cfg.applyEnvOverrides(lookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate check the config values
func (c Config) Validate() error {
	if err := validator.New().Struct(&c); err != nil {
		return fmt.Errorf("invalid config [%w]", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides(lookupEnv func(string) (string, bool)) error {
	texts := map[string]*string{
		"HTTP_LISTEN":            &c.HTTP.Listen,
		"DATABASE_DRIVER":        &c.Database.Driver,
		"DATABASE_DSN":           &c.Database.DSN,
		"DATABASE_SQL_LOG_LEVEL": &c.Database.SQLLogLevel,
		"AUTH_SESSION_SECRET":    &c.Auth.SessionSecret,
		"LOGGING_LEVEL":          &c.Logging.Level,
	}
	for key, field := range texts {
		if value, ok := lookupEnv(EnvPrefix + key); ok {
			*field = value
		}
	}

	durations := map[string]*time.Duration{
		"HTTP_READ_TIMEOUT":     &c.HTTP.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":    &c.HTTP.WriteTimeout,
		"HTTP_SHUTDOWN_TIMEOUT": &c.HTTP.ShutdownTimeout,
		"AUTH_SESSION_TTL":      &c.Auth.SessionTTL,
		"NOTIFY_TTL":            &c.Notify.TTL,
	}
	for key, field := range durations {
		value, ok := lookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("failed to parse %s%s [%w]", EnvPrefix, key, err)
		}
		*field = parsed
	}

	if value, ok := lookupEnv(EnvPrefix + "AUTH_BCRYPT_COST"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("failed to parse %sAUTH_BCRYPT_COST [%w]", EnvPrefix, err)
		}
		c.Auth.BcryptCost = parsed
	}

	flags := map[string]*bool{
		"HTTP_SECURE_COOKIE": &c.HTTP.SecureCookie,
		"LOGGING_JSON":       &c.Logging.JSON,
	}
	for key, field := range flags {
		value, ok := lookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse %s%s [%w]", EnvPrefix, key, err)
		}
		*field = parsed
	}

	return nil
}

// ErrUnknownSQLLogLevel the SQL log level is not one GORM supports
var ErrUnknownSQLLogLevel = errors.New("unknown SQL log level")

// GormLogLevel the GORM logger level of the database config
func (d DatabaseConfig) GormLogLevel() (logger.LogLevel, error) {
	switch d.SQLLogLevel {
	case "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	}
	return logger.Silent, fmt.Errorf("%w: '%s'", ErrUnknownSQLLogLevel, d.SQLLogLevel)
}

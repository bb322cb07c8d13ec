package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alwitt/routedesk/config"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func envOf(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	// The session secret has no default
	_, err := config.Load("", envOf(nil))
	assert.NotNil(err)

	cfg, err := config.Load("", envOf(map[string]string{
		"ROUTEDESK_AUTH_SESSION_SECRET": "0123456789abcdef",
	}))
	assert.Nil(err)
	assert.Equal(":8080", cfg.HTTP.Listen)
	assert.Equal("sqlite", cfg.Database.Driver)
	assert.Equal(24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(12, cfg.Auth.BcryptCost)
	assert.Equal(5*time.Second, cfg.Notify.TTL)
	assert.Equal("info", cfg.Logging.Level)

	level, err := cfg.Database.GormLogLevel()
	assert.Nil(err)
	assert.Equal(logger.Warn, level)
}

func TestConfigFileAndEnv(t *testing.T) {
	assert := assert.New(t)

	cfgFile := filepath.Join(os.TempDir(), fmt.Sprintf("routedesk_ut_%s.yaml", ulid.Make().String()))
	assert.Nil(os.WriteFile(cfgFile, []byte(`
http:
  listen: ":9090"
  read_timeout: 3s
database:
  driver: postgres
  dsn: "host=localhost user=routedesk dbname=routedesk"
  sql_log_level: error
auth:
  session_secret: "file-session-secret"
  session_ttl: 2h
  bcrypt_cost: 10
notify:
  ttl: 8s
logging:
  level: debug
  json: true
`), 0600))
	t.Cleanup(func() { _ = os.Remove(cfgFile) })

	cfg, err := config.Load(cfgFile, envOf(nil))
	assert.Nil(err)
	assert.Equal(":9090", cfg.HTTP.Listen)
	assert.Equal(3*time.Second, cfg.HTTP.ReadTimeout)
	// Unset in the file, keeps the default
	assert.Equal(15*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal("postgres", cfg.Database.Driver)
	assert.Equal(2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(10, cfg.Auth.BcryptCost)
	assert.Equal(8*time.Second, cfg.Notify.TTL)
	assert.True(cfg.Logging.JSON)

	// Environment wins over the file
	cfg, err = config.Load(cfgFile, envOf(map[string]string{
		"ROUTEDESK_HTTP_LISTEN":        ":7070",
		"ROUTEDESK_AUTH_SESSION_TTL":   "30m",
		"ROUTEDESK_AUTH_BCRYPT_COST":   "4",
		"ROUTEDESK_HTTP_SECURE_COOKIE": "true",
	}))
	assert.Nil(err)
	assert.Equal(":7070", cfg.HTTP.Listen)
	assert.Equal(30*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(4, cfg.Auth.BcryptCost)
	assert.True(cfg.HTTP.SecureCookie)

	// Missing file
	_, err = config.Load(cfgFile+".missing", envOf(nil))
	assert.NotNil(err)
}

func TestConfigValidation(t *testing.T) {
	assert := assert.New(t)

	base := map[string]string{"ROUTEDESK_AUTH_SESSION_SECRET": "0123456789abcdef"}
	with := func(key, value string) map[string]string {
		values := map[string]string{}
		for k, v := range base {
			values[k] = v
		}
		values[key] = value
		return values
	}

	for _, env := range []map[string]string{
		with("ROUTEDESK_AUTH_SESSION_SECRET", "short"),
		with("ROUTEDESK_DATABASE_DRIVER", "mysql"),
		with("ROUTEDESK_DATABASE_SQL_LOG_LEVEL", "loud"),
		with("ROUTEDESK_AUTH_BCRYPT_COST", "3"),
		with("ROUTEDESK_AUTH_BCRYPT_COST", "twelve"),
		with("ROUTEDESK_NOTIFY_TTL", "soon"),
		with("ROUTEDESK_LOGGING_LEVEL", "trace"),
		with("ROUTEDESK_LOGGING_JSON", "maybe"),
	} {
		_, err := config.Load("", envOf(env))
		assert.NotNil(err, "%v", env)
	}

	_, err := config.DatabaseConfig{SQLLogLevel: "loud"}.GormLogLevel()
	assert.ErrorIs(err, config.ErrUnknownSQLLogLevel)
}

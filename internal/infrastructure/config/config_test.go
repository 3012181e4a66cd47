package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "optivista-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, int64(20<<20), cfg.Upload.MaxFileSize)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("development config passes with no secrets", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "short"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("production rejects wildcard CORS origin", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Storage.AccessKeyID = "key"
		cfg.Storage.SecretAccessKey = "secret"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("rejects idle conns exceeding open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100

		assert.Error(t, cfg.validate())
	})

	t.Run("rejects out-of-range sampling ratio", func(t *testing.T) {
		cfg := base()
		cfg.Telemetry.SamplingRatio = 1.5

		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     3306,
		User:     "app",
		Password: "p4ss",
		DBName:   "optivista",
	}

	dsn := d.DSN()
	assert.Equal(t, "app:p4ss@tcp(db.internal:3306)/optivista?charset=utf8mb4&parseTime=True&loc=Local", dsn)

	d.Params = "tls=preferred"
	assert.Contains(t, d.DSN(), "&tls=preferred")
}

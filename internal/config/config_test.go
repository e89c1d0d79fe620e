package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("CHECKOUT_DELAY_MS", "0")
		t.Setenv("NOTIFIER", "log,redis")
		t.Setenv("REDIS_ADDR", "redis:6379")

		cfg := LoadConfig()

		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5433", cfg.DBPort)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
		assert.Equal(t, time.Duration(0), cfg.CheckoutDelay)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.True(t, cfg.UseDatabase())
		assert.True(t, cfg.NotifierEnabled("redis"))
		assert.False(t, cfg.NotifierEnabled("rabbitmq"))
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("APP_PORT", "")
		t.Setenv("DB_HOST", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("CHECKOUT_DELAY_MS", "not-a-number")
		t.Setenv("NOTIFIER", "")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
		assert.Equal(t, 2*time.Second, cfg.CheckoutDelay)
		assert.Equal(t, []string{"log"}, cfg.Notifiers)
		assert.False(t, cfg.UseDatabase())
	})
}

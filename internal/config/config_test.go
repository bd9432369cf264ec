package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"JWT_SECRET", "JWT_EXPIRY", "FIREBASE_PROJECT_ID",
		"EXPO_PUSH_URL", "EXPO_PUSH_TIMEOUT", "PORT", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "onde_tem", cfg.DBName)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "https://exp.host/--/api/v2/push/send", cfg.ExpoPushURL)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_EXPIRY", "24h")
	t.Setenv("EXPO_PUSH_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10*time.Second, cfg.ExpoPushTimeout, "bad durations fall back to the default")
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "localhost", DBPort: "5432", DBUser: "postgres",
		DBPassword: "secret", DBName: "onde_tem", DBSSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=onde_tem port=5432 sslmode=disable TimeZone=UTC",
		cfg.DSN())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("COINS_PER_RUPEE", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(10), cfg.CoinsPerRupee)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("COINS_PER_RUPEE", "25")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example/")
	t.Setenv("ENV", "production")

	cfg := Load()
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(25), cfg.CoinsPerRupee)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "https://cdn.example", cfg.PublicBaseURL)
	assert.True(t, cfg.IsProduction())
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("COINS_PER_RUPEE", "-3")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(10), cfg.CoinsPerRupee)
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestInitDBSQLite(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: "sqlite", SQLitePath: t.TempDir() + "/app.db"})
	if assert.NoError(t, err) {
		assert.Nil(t, db.Mongo)
		db.CloseDB()
	}
}

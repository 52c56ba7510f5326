package config_test

import (
	"testing"
	"time"

	"go-payroll/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RUN_LOCK_TTL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "payroll_db", cfg.Database.Name)
	assert.Equal(t, 60*time.Second, cfg.Payroll.RunLockTTL)
	assert.Equal(t, []string{"http://localhost:4000", "http://localhost:5173", "http://127.0.0.1:5173"}, cfg.App.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/payroll-test.db")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SUMMARY_CACHE_TTL", "30s")
	t.Setenv("DB_MAX_RETRIES", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/payroll-test.db", cfg.Database.SQLitePath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Payroll.SummaryCacheTTL)
	assert.Equal(t, 5, cfg.Database.MaxRetries)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongodb")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	d := config.DatabaseConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=require", d.PostgresDSN())
}

package app

import (
	"fmt"

	"go-payroll/internal/config"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return connection.ConnectSQLite(cfg.SQLitePath, logger)
	case config.DriverPostgres:
		return connection.ConnectGORMWithRetry(cfg.PostgresDSN(), cfg.MaxRetries, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the employees, payroll and outbox tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&payroll.PayrollRun{},
		&payroll.PayrollItem{},
		&kafka.OutboxEvent{},
	)
}

// openRedis returns nil when no address is configured.
func openRedis(cfg config.RedisConfig, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not set, run lock, summary cache and idempotency are disabled")
		return nil, nil
	}
	return connection.ConnectRedisWithRetry(cfg.Addr, maxRetries, logger)
}

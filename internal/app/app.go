package app

import (
	"go-payroll/internal/config"
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects storage, migrates the schema and mounts every route on
// router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	db, err := openDatabase(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established", zap.String("driver", cfg.Database.Driver))

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	rdb, err := openRedis(cfg.Redis, cfg.Database.MaxRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger.Named("http")),
	)
	registerModules(router, db, rdb, cfg, logger)

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}
	return cleanup, nil
}

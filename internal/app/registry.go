package app

import (
	"net/http"

	"go-payroll/internal/config"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/report"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(db)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, logger)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, rdb, cfg.Payroll.RunLockTTL, logger)
	reportService := report.NewService(payrollRepo, rdb, cfg.Payroll.SummaryCacheTTL, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	reportHandler := report.NewHandler(reportService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			response.OK(c, http.StatusOK)
		})

		employee.RegisterRoutes(api, employeeHandler, rdb, cfg.Auth.JWTSecret)
		payroll.RegisterRoutes(api, payrollHandler, rdb, cfg.Auth.JWTSecret)
		report.RegisterRoutes(api, reportHandler, cfg.Auth.JWTSecret)
	}
}

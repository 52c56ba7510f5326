package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	jwtSecret string,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(jwtSecret))
	{
		payroll.POST("/run",
			middleware.RateLimitByIP(1, 5),
			middleware.ExtractUserID(),
			middleware.Idempotency(rdb),
			handler.Run,
		)
		payroll.GET("/runs", handler.ListRuns)
		payroll.GET("/runs/:id", handler.GetRun)
		payroll.GET("/runs/:id/payslips/:employeeId", handler.DownloadPayslip)
	}
}

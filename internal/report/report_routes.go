package report

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(jwtSecret))
	{
		reports.GET("/summary", handler.Summary)
		reports.GET("/run/:file", handler.ExportCSV)
	}
}

package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(jwtSecret))
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetById)

		employees.POST("",
			middleware.ExtractUserID(),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.PUT("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
	}
}

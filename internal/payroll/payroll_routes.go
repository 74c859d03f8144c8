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
) {
	calculations := r.Group("/payroll-calculations")
	calculations.Use(middleware.AuthMiddleware())
	{
		calculations.POST("/calculate",
			middleware.RateLimitByUser(2, 5),
			handler.Calculate,
		)
		calculations.POST("/calculate-bulk",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Idempotency(rdb),
			handler.CalculateBulk,
		)
		calculations.DELETE("/cache",
			middleware.RateLimitByUser(0.5, 1),
			handler.ClearCache,
		)
	}
}

package routes

import (
	"crm-backend/handlers/health"

	"github.com/gin-gonic/gin"
)

func HealthRoutes(r *gin.Engine) {
	r.GET("/health", health.HandleHealth)
}

package routes

import (
	"crm-backend/handlers/dashboard"
	"crm-backend/middleware"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(r *gin.Engine, recommender dashboard.Recommender) {
	group := r.Group("/dashboard", middleware.JWTAuth())

	group.GET("", dashboard.GetDashboard(recommender))
}

package routes

import (
	"crm-backend/handlers/interactions"
	"crm-backend/middleware"

	"github.com/gin-gonic/gin"
)

func InteractionsRoutes(r *gin.Engine) {
	group := r.Group("/interactions", middleware.JWTAuth())

	group.POST("", interactions.CreateInteraction)
	group.GET("/recent", interactions.GetRecentInteractions)
	group.DELETE("/:id", interactions.DeleteInteraction)
}

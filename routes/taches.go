package routes

import (
	"crm-backend/handlers/taches"
	"crm-backend/middleware"

	"github.com/gin-gonic/gin"
)

func TachesRoutes(r *gin.Engine) {
	group := r.Group("/taches", middleware.JWTAuth())

	group.GET("", taches.GetTaches)
	group.POST("", taches.CreateTache)
	group.PUT("/:id", taches.UpdateTache)
	group.DELETE("/:id", taches.DeleteTache)
}

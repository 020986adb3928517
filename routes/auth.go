package routes

import (
	"crm-backend/handlers/auth"
	"crm-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	group := r.Group("/auth")

	group.POST("/login", auth.Login)
	group.GET("/verify", middleware.JWTAuth(), auth.Verify)
}

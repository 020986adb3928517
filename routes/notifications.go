package routes

import (
	"crm-backend/handlers/notifications"
	"crm-backend/middleware"

	"github.com/gin-gonic/gin"
)

func NotificationsRoutes(r *gin.Engine) {
	group := r.Group("/notifications", middleware.JWTAuth())

	group.GET("", notifications.GetNotifications)
	group.PUT("/:id/read", notifications.MarkNotificationRead)
}

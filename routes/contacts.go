package routes

import (
	"crm-backend/handlers/contacts"
	"crm-backend/middleware"
	"crm-backend/services/contact360"

	"github.com/gin-gonic/gin"
)

func ContactsRoutes(r *gin.Engine, detail *contact360.Service) {
	group := r.Group("/contacts", middleware.JWTAuth())

	group.GET("", contacts.GetContacts)
	group.GET("/stats", contacts.GetContactStats)
	group.GET("/:id", contacts.GetContactDetail(detail))
	group.POST("", contacts.CreateContact)
	group.PUT("/:id", contacts.UpdateContact)
	group.DELETE("/:id", contacts.DeleteContact)
}

package notifications

import (
	"net/http"

	"crm-backend/db"
	"crm-backend/models"
	"crm-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary List notifications
// @Description Latest 50 advisory notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Notification
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /notifications [get]
func GetNotifications(c *gin.Context) {
	var notifications []models.Notification
	err := db.DB.Order("date_creation DESC").Limit(50).Find(&notifications).Error
	if err != nil {
		utils.LogError(err, "Erreur récupération notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Notification lue"
// @Failure 404 {object} map[string]string "error: Notification introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /notifications/{id}/read [put]
func MarkNotificationRead(c *gin.Context) {
	result := db.DB.Model(&models.Notification{}).
		Where("id = ?", c.Param("id")).
		Update("lu", true)
	if result.Error != nil {
		utils.LogError(result.Error, "Erreur mise à jour notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification lue"})
}

package interactions

import (
	"errors"
	"net/http"

	"crm-backend/db"
	"crm-backend/models"
	"crm-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Add an interaction
// @Description Record a new interaction with a contact and touch its last-interaction date
// @Tags interactions
// @Accept json
// @Produce json
// @Param interaction body models.InteractionCreate true "Interaction information"
// @Security BearerAuth
// @Success 201 {object} models.Interaction
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Contact introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /interactions [post]
func CreateInteraction(c *gin.Context) {
	var input models.InteractionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var contact models.Contact
	if err := db.DB.First(&contact, "id = ?", input.ContactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact introuvable"})
			return
		}
		utils.LogError(err, "Erreur ajout interaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	interaction := models.Interaction{
		ContactID: input.ContactID,
		Type:      input.Type,
		Resultat:  input.Resultat,
		Contenu:   input.Contenu,
	}
	if err := db.DB.Create(&interaction).Error; err != nil {
		utils.LogError(err, "Erreur ajout interaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// Mettre à jour la date de dernière interaction du contact
	if err := db.DB.Model(&models.Contact{}).
		Where("id = ?", input.ContactID).
		Update("date_derniere_interaction", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
		utils.LogError(err, "Erreur mise à jour date dernière interaction")
	}

	db.Notify(models.NotificationInteraction, "Nouvelle interaction "+interaction.Type+" ajoutée")

	c.JSON(http.StatusCreated, interaction)
}

// @Summary Recent interactions
// @Description Last 10 interactions across all contacts, for the dashboard feed
// @Tags interactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.InteractionWithContact
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /interactions/recent [get]
func GetRecentInteractions(c *gin.Context) {
	var rows []models.InteractionWithContact
	err := db.DB.Model(&models.Interaction{}).
		Select("interactions.*, contacts.nom, contacts.prenom, contacts.telephone").
		Joins("JOIN contacts ON interactions.contact_id = contacts.id").
		Order("interactions.date_interaction DESC").
		Limit(10).
		Find(&rows).Error
	if err != nil {
		utils.LogError(err, "Erreur interactions récentes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary Delete an interaction
// @Description Remove an interaction record
// @Tags interactions
// @Produce json
// @Param id path string true "Interaction ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Interaction supprimée"
// @Failure 404 {object} map[string]string "error: Interaction introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /interactions/{id} [delete]
func DeleteInteraction(c *gin.Context) {
	result := db.DB.Delete(&models.Interaction{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.LogError(result.Error, "Erreur suppression interaction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Interaction introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Interaction supprimée"})
}

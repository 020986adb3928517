package taches

import (
	"errors"
	"net/http"

	"crm-backend/db"
	"crm-backend/models"
	"crm-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List tasks
// @Description Tasks filtered by status, joined with their contact, ordered by due date
// @Tags taches
// @Produce json
// @Param statut query string false "Task status (default: À faire)"
// @Security BearerAuth
// @Success 200 {array} models.TacheWithContact
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /taches [get]
func GetTaches(c *gin.Context) {
	statut := c.DefaultQuery("statut", models.TacheAFaire)

	var rows []models.TacheWithContact
	err := db.DB.Model(&models.Tache{}).
		Select("taches.*, contacts.nom, contacts.prenom, contacts.telephone").
		Joins("JOIN contacts ON taches.contact_id = contacts.id").
		Where("taches.statut = ?", statut).
		Order("taches.date_echeance ASC").
		Find(&rows).Error
	if err != nil {
		utils.LogError(err, "Erreur récupération tâches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// Le caractère urgent est dérivé, jamais stocké
	for i := range rows {
		rows[i].Urgente = rows[i].Tache.Urgente()
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary Create a task
// @Description Create a follow-up task attached to a contact
// @Tags taches
// @Accept json
// @Produce json
// @Param tache body models.TacheCreate true "Task information"
// @Security BearerAuth
// @Success 201 {object} models.Tache
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Contact introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /taches [post]
func CreateTache(c *gin.Context) {
	var input models.TacheCreate
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
		utils.LogError(err, "Erreur création tâche")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	tache := models.Tache{
		ContactID:    input.ContactID,
		Description:  input.Description,
		DateEcheance: input.DateEcheance,
		Statut:       models.TacheAFaire,
	}
	if err := db.DB.Create(&tache).Error; err != nil {
		utils.LogError(err, "Erreur création tâche")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	db.Notify(models.NotificationTache, "Nouvelle tâche créée: "+tache.Description)

	c.JSON(http.StatusCreated, tache)
}

// @Summary Update a task
// @Description Update a task's description, due date or status
// @Tags taches
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param tache body models.TacheUpdate true "Task information"
// @Security BearerAuth
// @Success 200 {object} models.Tache
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Tâche introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /taches/{id} [put]
func UpdateTache(c *gin.Context) {
	tacheID := c.Param("id")

	var input models.TacheUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var tache models.Tache
	if err := db.DB.First(&tache, "id = ?", tacheID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tâche introuvable"})
			return
		}
		utils.LogError(err, "Erreur modification tâche")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	statut := input.Statut
	if statut == "" {
		statut = tache.Statut
	}

	updates := map[string]interface{}{
		"description":   input.Description,
		"date_echeance": input.DateEcheance,
		"statut":        statut,
	}
	if err := db.DB.Model(&tache).Updates(updates).Error; err != nil {
		utils.LogError(err, "Erreur modification tâche")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, tache)
}

// @Summary Delete a task
// @Description Remove a task
// @Tags taches
// @Produce json
// @Param id path string true "Task ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Tâche supprimée"
// @Failure 404 {object} map[string]string "error: Tâche introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /taches/{id} [delete]
func DeleteTache(c *gin.Context) {
	result := db.DB.Delete(&models.Tache{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		utils.LogError(result.Error, "Erreur suppression tâche")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tâche introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tâche supprimée"})
}

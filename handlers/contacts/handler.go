package contacts

import (
	"errors"
	"net/http"

	"crm-backend/db"
	"crm-backend/models"
	"crm-backend/services/contact360"
	"crm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// @Summary List contacts
// @Description Retrieve contacts with optional filters, sorting and pagination
// @Tags contacts
// @Produce json
// @Param statut query string false "Filter by status"
// @Param source query string false "Filter by acquisition source"
// @Param regime query string false "Filter by regime"
// @Param search query string false "Search in last name, first name or phone"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param sortBy query string false "Sort field (allow-listed)"
// @Param sortOrder query string false "ASC or DESC"
// @Security BearerAuth
// @Success 200 {object} models.ContactList
// @Failure 400 {object} map[string]string "error: Invalid sort parameters"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contacts [get]
func GetContacts(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var total int64
	if err := params.countQuery(db.DB).Count(&total).Error; err != nil {
		utils.LogError(err, "Erreur comptage contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var rows []models.ContactWithCounts
	if err := params.listQuery(db.DB).Find(&rows).Error; err != nil {
		utils.LogError(err, "Erreur récupération contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, models.ContactList{
		Contacts:   rows,
		Pagination: params.pagination(total),
	})
}

// @Summary Contact statistics
// @Description KPIs for the contact listing page
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ContactStats
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contacts/stats [get]
func GetContactStats(c *gin.Context) {
	var stats models.ContactStats

	if err := db.DB.Model(&models.Contact{}).
		Where("date_creation >= NOW() - INTERVAL '7 days'").
		Count(&stats.NouveauxLeads).Error; err != nil {
		utils.LogError(err, "Erreur stats contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := db.DB.Model(&models.ContratClient{}).
		Distinct("contact_id").
		Count(&stats.ClientsActifs).Error; err != nil {
		utils.LogError(err, "Erreur stats contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := db.DB.Model(&models.Contact{}).
		Where("statut IN ?", []models.Statut{models.StatutContacteNRP, models.StatutARecycler}).
		Count(&stats.LeadsNRP).Error; err != nil {
		utils.LogError(err, "Erreur stats contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var total30j, gagnes30j int64
	if err := db.DB.Model(&models.Contact{}).
		Where("date_creation >= NOW() - INTERVAL '30 days'").
		Count(&total30j).Error; err != nil {
		utils.LogError(err, "Erreur stats contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if err := db.DB.Model(&models.Contact{}).
		Where("statut = ?", models.StatutClientGagne).
		Where("date_creation >= NOW() - INTERVAL '30 days'").
		Count(&gagnes30j).Error; err != nil {
		utils.LogError(err, "Erreur stats contacts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if total30j > 0 {
		stats.TauxConversion = gagnes30j * 100 / total30j
	}

	if err := db.DB.Model(&models.Contact{}).
		Select("source, COUNT(*) as nombre").
		Where("date_creation >= NOW() - INTERVAL '30 days'").
		Group("source").
		Order("nombre DESC").
		Scan(&stats.RepartitionSource).Error; err != nil {
		utils.LogError(err, "Erreur répartition par source")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary Contact detail (360 view)
// @Description Full contact view: record, interactions, tasks, contracts and AI enrichment
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Security BearerAuth
// @Success 200 {object} models.ContactDetail
// @Failure 400 {object} map[string]string "error: Invalid contact ID"
// @Failure 404 {object} map[string]string "error: Contact introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contacts/{id} [get]
func GetContactDetail(service *contact360.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactID := c.Param("id")
		if _, err := uuid.Parse(contactID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de contact invalide"})
			return
		}

		detail, err := service.GetDetail(c.Request.Context(), contactID)
		if err != nil {
			if errors.Is(err, contact360.ErrContactNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Contact introuvable"})
				return
			}
			utils.LogError(err, "Erreur détail contact")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		c.JSON(http.StatusOK, detail)
	}
}

// @Summary Create a contact
// @Description Create a new contact with the provided information
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body models.ContactCreate true "Contact information"
// @Security BearerAuth
// @Success 201 {object} models.Contact
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 409 {object} map[string]string "error: Ce téléphone ou cet email existe déjà"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contacts [post]
func CreateContact(c *gin.Context) {
	var input models.ContactCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Email != nil && *input.Email != "" && !utils.ValidateEmail(*input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format d'email invalide"})
		return
	}

	contact := models.Contact{
		Nom:            input.Nom,
		Prenom:         input.Prenom,
		Telephone:      input.Telephone,
		DateNaissance:  input.DateNaissance,
		Regime:         input.Regime,
		Source:         input.Source,
		Statut:         input.Statut,
		NotesGenerales: input.NotesGenerales,
	}
	if input.Email != nil && *input.Email != "" {
		contact.Email = input.Email
	}
	if contact.Regime == "" {
		contact.Regime = models.RegimeAutre
	}
	if contact.Source == "" {
		contact.Source = models.SourceImportManuel
	}
	if contact.Statut == "" {
		contact.Statut = models.StatutNouveau
	}

	if err := db.DB.Create(&contact).Error; err != nil {
		if db.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ce téléphone ou cet email existe déjà"})
			return
		}
		utils.LogError(err, "Erreur création contact")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	db.Notify(models.NotificationSysteme, "Nouveau contact ajouté: "+contact.Nom+" "+contact.Prenom)

	c.JSON(http.StatusCreated, contact)
}

// @Summary Update a contact
// @Description Update a contact with the provided information
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param contact body models.ContactUpdate true "Contact information"
// @Security BearerAuth
// @Success 200 {object} models.Contact
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Contact introuvable"
// @Failure 409 {object} map[string]string "error: Ce téléphone ou cet email existe déjà"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contacts/{id} [put]
func UpdateContact(c *gin.Context) {
	contactID := c.Param("id")

	var input models.ContactUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var contact models.Contact
	if err := db.DB.First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact introuvable"})
			return
		}
		utils.LogError(err, "Erreur modification contact")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	updates := map[string]interface{}{
		"nom":                       input.Nom,
		"prenom":                    input.Prenom,
		"email":                     input.Email,
		"telephone":                 input.Telephone,
		"date_naissance":            input.DateNaissance,
		"regime":                    input.Regime,
		"source":                    input.Source,
		"statut":                    input.Statut,
		"notes_generales":           input.NotesGenerales,
		"date_derniere_interaction": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	// Le score persisté n'est réécrit que sur demande explicite
	if input.ScoreEngagement != nil {
		updates["score_engagement"] = *input.ScoreEngagement
	}

	if err := db.DB.Model(&contact).Updates(updates).Error; err != nil {
		if db.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ce téléphone ou cet email existe déjà"})
			return
		}
		utils.LogError(err, "Erreur modification contact")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, contact)
}

// @Summary Delete a contact
// @Description Delete a contact and its owned interactions, tasks and contracts
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Contact supprimé avec succès"
// @Failure 404 {object} map[string]string "error: Contact introuvable"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /contacts/{id} [delete]
func DeleteContact(c *gin.Context) {
	contactID := c.Param("id")

	result := db.DB.Delete(&models.Contact{}, "id = ?", contactID)
	if result.Error != nil {
		utils.LogError(result.Error, "Erreur suppression contact")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact supprimé avec succès"})
}

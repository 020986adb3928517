package dashboard

import (
	"context"
	"net/http"

	"crm-backend/db"
	"crm-backend/models"
	"crm-backend/utils"

	"github.com/gin-gonic/gin"
)

// Recommender produit les recommandations IA du dashboard. Best-effort : une
// valeur est toujours renvoyée.
type Recommender interface {
	DashboardRecommendations(ctx context.Context, stats models.KPIs) string
}

// @Summary Dashboard
// @Description KPIs, today's tasks, leads by source, recent activity and AI recommendations
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Dashboard
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /dashboard [get]
func GetDashboard(recommender Recommender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var kpis models.KPIs

		if err := db.DB.Model(&models.Contact{}).
			Where("date_creation >= NOW() - INTERVAL '7 days'").
			Count(&kpis.NouveauxLeads).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		var total30j, gagnes30j int64
		if err := db.DB.Model(&models.Contact{}).
			Where("date_creation >= NOW() - INTERVAL '30 days'").
			Count(&total30j).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}
		if err := db.DB.Model(&models.Contact{}).
			Where("statut = ?", models.StatutClientGagne).
			Where("date_creation >= NOW() - INTERVAL '30 days'").
			Count(&gagnes30j).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}
		if total30j > 0 {
			kpis.TauxConversion = gagnes30j * 100 / total30j
		}

		if err := db.DB.Model(&models.ContratClient{}).
			Distinct("contact_id").
			Count(&kpis.ClientsActifs).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		if err := db.DB.Model(&models.Contact{}).
			Where("statut IN ?", []models.Statut{models.StatutContacteNRP, models.StatutARecycler}).
			Count(&kpis.LeadsNRP).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		var tachesDuJour []models.TacheWithContact
		if err := db.DB.Model(&models.Tache{}).
			Select("taches.*, contacts.nom, contacts.prenom, contacts.telephone").
			Joins("JOIN contacts ON taches.contact_id = contacts.id").
			Where("taches.statut = ?", models.TacheAFaire).
			Where("DATE(taches.date_echeance) = CURRENT_DATE").
			Order("taches.date_echeance ASC").
			Find(&tachesDuJour).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}
		for i := range tachesDuJour {
			tachesDuJour[i].Urgente = tachesDuJour[i].Tache.Urgente()
		}

		var leadsParSource []models.SourceCount
		if err := db.DB.Model(&models.Contact{}).
			Select("source, COUNT(*) as nombre, DATE(date_creation) as date").
			Where("date_creation >= NOW() - INTERVAL '30 days'").
			Group("source, DATE(date_creation)").
			Order("date DESC").
			Scan(&leadsParSource).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		var activiteRecente []models.InteractionWithContact
		if err := db.DB.Model(&models.Interaction{}).
			Select("interactions.*, contacts.nom, contacts.prenom, contacts.telephone").
			Joins("JOIN contacts ON interactions.contact_id = contacts.id").
			Order("interactions.date_interaction DESC").
			Limit(10).
			Find(&activiteRecente).Error; err != nil {
			utils.LogError(err, "Erreur dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}

		recommandations := recommender.DashboardRecommendations(c.Request.Context(), kpis)

		c.JSON(http.StatusOK, models.Dashboard{
			KPIs:              kpis,
			TachesDuJour:      tachesDuJour,
			LeadsParSource:    leadsParSource,
			ActiviteRecente:   activiteRecente,
			RecommandationsIA: recommandations,
		})
	}
}

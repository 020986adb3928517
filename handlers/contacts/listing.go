package contacts

import (
	"errors"
	"strconv"
	"strings"

	"crm-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Champs de tri autorisés. sortBy/sortOrder ne peuvent pas être liés comme
// des paramètres : tout ce qui entre dans l'ORDER BY passe par cette liste,
// une valeur inconnue fait échouer la requête au lieu d'être substituée.
var allowedSortFields = map[string]bool{
	"date_creation":             true,
	"date_derniere_interaction": true,
	"nom":                       true,
	"prenom":                    true,
	"statut":                    true,
	"score_engagement":          true,
}

var allowedSortOrders = map[string]bool{
	"ASC":  true,
	"DESC": true,
}

var errInvalidSort = errors.New("champ ou ordre de tri non reconnu")

// ListParams paramètres reconnus du listing de contacts. Chaque filtre présent
// contribue exactement un prédicat ; un filtre absent ne contribue rien.
type ListParams struct {
	Statut    string
	Source    string
	Regime    string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func parseListParams(c *gin.Context) (ListParams, error) {
	params := ListParams{
		Statut:    c.Query("statut"),
		Source:    c.Query("source"),
		Regime:    c.Query("regime"),
		Search:    c.Query("search"),
		Page:      1,
		Limit:     defaultLimit,
		SortBy:    c.DefaultQuery("sortBy", "date_creation"),
		SortOrder: strings.ToUpper(c.DefaultQuery("sortOrder", "DESC")),
	}

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		params.Limit = limit
	}
	if params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	if !allowedSortFields[params.SortBy] || !allowedSortOrders[params.SortOrder] {
		return params, errInvalidSort
	}

	return params, nil
}

// scope applique le prédicat de filtrage, partagé entre la requête de listing
// et la requête de comptage. Toute valeur fournie par l'utilisateur est liée
// en paramètre, jamais interpolée.
func (p ListParams) scope(tx *gorm.DB) *gorm.DB {
	if p.Statut != "" {
		tx = tx.Where("statut = ?", p.Statut)
	}
	if p.Source != "" {
		tx = tx.Where("source = ?", p.Source)
	}
	if p.Regime != "" {
		tx = tx.Where("regime = ?", p.Regime)
	}
	if p.Search != "" {
		// Une seule valeur, trois cibles : chaque cible reçoit son propre
		// placeholder pour éviter les réutilisations positionnelles
		term := "%" + strings.ToLower(p.Search) + "%"
		tx = tx.Where("(LOWER(nom) LIKE ? OR LOWER(prenom) LIKE ? OR telephone LIKE ?)", term, term, term)
	}
	return tx
}

// listQuery requête de listing : contacts filtrés, annotés des compteurs
// dérivés, triés et paginés (pages 1-based)
func (p ListParams) listQuery(database *gorm.DB) *gorm.DB {
	offset := (p.Page - 1) * p.Limit
	return database.Model(&models.Contact{}).
		Select("contacts.*, (SELECT COUNT(*) FROM interactions WHERE interactions.contact_id = contacts.id) AS nb_interactions, (SELECT COUNT(*) FROM taches WHERE taches.contact_id = contacts.id AND taches.statut = ?) AS nb_taches",
			models.TacheAFaire).
		Scopes(p.scope).
		Order(p.SortBy + " " + p.SortOrder).
		Limit(p.Limit).
		Offset(offset)
}

// countQuery requête de comptage : même prédicat que le listing, recomposé à
// partir des seules valeurs de filtre, sans limit/offset
func (p ListParams) countQuery(database *gorm.DB) *gorm.DB {
	return database.Model(&models.Contact{}).Scopes(p.scope)
}

// pagination calcule les métadonnées de pagination (pages = plafond)
func (p ListParams) pagination(total int64) models.Pagination {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return models.Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}

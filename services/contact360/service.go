package contact360

import (
	"context"
	"errors"
	"sync"

	"crm-backend/models"

	"gorm.io/gorm"
)

// ErrContactNotFound le contact demandé n'existe pas ; aucun enrichissement
// n'est tenté dans ce cas.
var ErrContactNotFound = errors.New("contact introuvable")

// Scorer expose les trois enrichissements IA d'une fiche contact. Chaque
// méthode garantit une valeur (réponse du service ou repli), jamais d'erreur.
type Scorer interface {
	EngagementScore(ctx context.Context, contact models.Contact, interactions []models.Interaction) int
	ActionSuggestion(ctx context.Context, contact models.Contact, interactions []models.Interaction) string
	CrossSellOpportunity(ctx context.Context, contact models.Contact, contrats []models.ContratClient) string
}

// Service assemble la fiche 360 d'un contact : la fiche elle-même, son
// historique, ses tâches, ses contrats, et les trois signaux IA.
type Service struct {
	db     *gorm.DB
	scorer Scorer
}

func NewService(db *gorm.DB, scorer Scorer) *Service {
	return &Service{db: db, scorer: scorer}
}

// GetDetail renvoie la vue complète d'un contact.
//
// Les trois lectures secondaires (interactions, tâches, contrats) sont
// indépendantes et lancées en parallèle ; une erreur de lecture est fatale à
// l'ensemble (pas de fiche à moitié remplie). Les trois appels de scoring
// partent ensuite en parallèle et se résolvent toujours, par repli au pire.
func (s *Service) GetDetail(ctx context.Context, contactID string) (*models.ContactDetail, error) {
	var contact models.Contact
	if err := s.db.WithContext(ctx).First(&contact, "id = ?", contactID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}

	var (
		interactions []models.Interaction
		taches       []models.Tache
		contrats     []models.ContratClient
		errInter     error
		errTaches    error
		errContrats  error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		errInter = s.db.WithContext(ctx).
			Where("contact_id = ?", contactID).
			Order("date_interaction DESC").
			Find(&interactions).Error
	}()
	go func() {
		defer wg.Done()
		errTaches = s.db.WithContext(ctx).
			Where("contact_id = ?", contactID).
			Order("date_echeance ASC").
			Find(&taches).Error
	}()
	go func() {
		defer wg.Done()
		errContrats = s.db.WithContext(ctx).
			Preload("Produit").
			Where("contact_id = ?", contactID).
			Order("date_souscription DESC").
			Find(&contrats).Error
	}()
	wg.Wait()

	if errInter != nil {
		return nil, errInter
	}
	if errTaches != nil {
		return nil, errTaches
	}
	if errContrats != nil {
		return nil, errContrats
	}

	// Fan-out des trois appels de scoring : leur latence combinée doit rester
	// proche du plus lent, pas de leur somme. Chaque goroutine écrit sa propre
	// variable, la jointure se fait sur le WaitGroup.
	var (
		score     int
		action    string
		crossSell string
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		score = s.scorer.EngagementScore(ctx, contact, interactions)
	}()
	go func() {
		defer wg.Done()
		action = s.scorer.ActionSuggestion(ctx, contact, interactions)
	}()
	go func() {
		defer wg.Done()
		crossSell = s.scorer.CrossSellOpportunity(ctx, contact, contrats)
	}()
	wg.Wait()

	scored := models.ContactScored{Contact: contact, ScoreIA: score}
	scored.ScoreEngagement = score

	return &models.ContactDetail{
		Contact:      scored,
		Interactions: interactions,
		Taches:       taches,
		Contrats:     contrats,
		Suggestions: models.Suggestions{
			Action:    action,
			CrossSell: crossSell,
		},
	}, nil
}

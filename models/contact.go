package models

import (
	"time"
)

// Regime définit le régime social d'un contact
type Regime string

const (
	RegimeSenior Regime = "Senior"
	RegimeTNS    Regime = "TNS"
	RegimeAutre  Regime = "Autre"
)

// Source définit la source d'acquisition d'un contact
type Source string

const (
	SourceFacebook     Source = "Facebook"
	SourceTikTok       Source = "TikTok"
	SourceImportManuel Source = "Import Manuel"
)

// Statut définit le statut commercial d'un contact
type Statut string

const (
	StatutNouveau     Statut = "Nouveau"
	StatutAContacter  Statut = "À Contacter"
	StatutContacteNRP Statut = "Contacté - NRP"
	StatutEnNegoc     Statut = "En Négociation"
	StatutClientGagne Statut = "Client - Gagné"
	StatutARecycler   Statut = "À Recycler"
)

// Contact représente un lead/client dans la base de données
// @Description Modèle complet d'un contact. Racine d'agrégat : les interactions,
// @Description tâches et contrats sont supprimés en cascade avec lui.
type Contact struct {
	ID                      string     `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	Nom                     string     `json:"nom" binding:"required"`
	Prenom                  string     `json:"prenom" binding:"required"`
	Email                   *string    `json:"email" gorm:"uniqueIndex"`
	Telephone               string     `json:"telephone" gorm:"uniqueIndex;not null" binding:"required"`
	DateNaissance           *time.Time `json:"date_naissance" gorm:"column:date_naissance"`
	Regime                  Regime     `json:"regime" gorm:"default:Autre"`
	Source                  Source     `json:"source" gorm:"default:Import Manuel"`
	Statut                  Statut     `json:"statut" gorm:"default:Nouveau"`
	ScoreEngagement         int        `json:"score_engagement" gorm:"column:score_engagement;default:10"`
	DateCreation            time.Time  `json:"date_creation" gorm:"column:date_creation;default:CURRENT_TIMESTAMP"`
	DateDerniereInteraction *time.Time `json:"date_derniere_interaction" gorm:"column:date_derniere_interaction"`
	NotesGenerales          string     `json:"notes_generales" gorm:"column:notes_generales;type:text"`
}

func (Contact) TableName() string {
	return "contacts"
}

// ContactCreate modèle pour créer un contact
// @Description modèle pour créer un contact (nom, prénom et téléphone requis)
type ContactCreate struct {
	Nom            string     `json:"nom" binding:"required" example:"Martin"`
	Prenom         string     `json:"prenom" binding:"required" example:"Pierre"`
	Email          *string    `json:"email" example:"pierre.martin@email.fr"`
	Telephone      string     `json:"telephone" binding:"required" example:"0123456789"`
	DateNaissance  *time.Time `json:"date_naissance"`
	Regime         Regime     `json:"regime" example:"Senior"`
	Source         Source     `json:"source" example:"Facebook"`
	Statut         Statut     `json:"statut" example:"À Contacter"`
	NotesGenerales string     `json:"notes_generales"`
}

// ContactUpdate modèle pour modifier un contact
type ContactUpdate struct {
	Nom             string     `json:"nom" binding:"required"`
	Prenom          string     `json:"prenom" binding:"required"`
	Email           *string    `json:"email"`
	Telephone       string     `json:"telephone" binding:"required"`
	DateNaissance   *time.Time `json:"date_naissance"`
	Regime          Regime     `json:"regime"`
	Source          Source     `json:"source"`
	Statut          Statut     `json:"statut"`
	NotesGenerales  string     `json:"notes_generales"`
	ScoreEngagement *int       `json:"score_engagement"`
}

// ContactWithCounts ligne de listing : contact + compteurs dérivés
type ContactWithCounts struct {
	Contact
	NbInteractions int64 `json:"nb_interactions"`
	NbTaches       int64 `json:"nb_taches"`
}

// Pagination métadonnées renvoyées avec chaque listing
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ContactList réponse du listing paginé
type ContactList struct {
	Contacts   []ContactWithCounts `json:"contacts"`
	Pagination Pagination          `json:"pagination"`
}

// Suggestions résultats d'enrichissement IA d'une fiche contact
type Suggestions struct {
	Action    string `json:"action"`
	CrossSell string `json:"crossSell"`
}

// ContactScored contact dont le score a été recalculé pour l'affichage.
// Le score persisté n'est jamais réécrit par la lecture : la valeur fraîche
// ne vit que dans la vue.
type ContactScored struct {
	Contact
	ScoreIA int `json:"scoreIA"`
}

// ContactDetail vue complète d'un contact (fiche 360)
type ContactDetail struct {
	Contact      ContactScored   `json:"contact"`
	Interactions []Interaction   `json:"interactions"`
	Taches       []Tache         `json:"taches"`
	Contrats     []ContratClient `json:"contrats"`
	Suggestions  Suggestions     `json:"suggestions"`
}

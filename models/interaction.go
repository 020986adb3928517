package models

import (
	"time"
)

// Interaction représente un échange avec un contact (appel, email, RDV...)
type Interaction struct {
	ID              string    `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	ContactID       string    `json:"contact_id" gorm:"column:contact_id;not null"`
	Contact         *Contact  `json:"-" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Type            string    `json:"type" binding:"required"`
	Resultat        string    `json:"resultat"`
	Contenu         string    `json:"contenu" gorm:"type:text" binding:"required"`
	DateInteraction time.Time `json:"date_interaction" gorm:"column:date_interaction;default:CURRENT_TIMESTAMP"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// InteractionCreate modèle pour ajouter une interaction
type InteractionCreate struct {
	ContactID string `json:"contact_id" binding:"required"`
	Type      string `json:"type" binding:"required" example:"Appel"`
	Resultat  string `json:"resultat" example:"Intéressé"`
	Contenu   string `json:"contenu" binding:"required"`
}

// InteractionWithContact interaction enrichie des coordonnées du contact,
// pour le fil d'activité du dashboard
type InteractionWithContact struct {
	Interaction
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Telephone string `json:"telephone"`
}

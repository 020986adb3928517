package models

import (
	"time"
)

// Valeurs possibles pour le statut d'une tâche
const (
	TacheAFaire   = "À faire"
	TacheTerminee = "Terminée"
)

// Tache représente une tâche de suivi rattachée à un contact
type Tache struct {
	ID           string     `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	ContactID    string     `json:"contact_id" gorm:"column:contact_id;not null"`
	Contact      *Contact   `json:"-" gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	Description  string     `json:"description" gorm:"type:text;not null" binding:"required"`
	DateEcheance *time.Time `json:"date_echeance" gorm:"column:date_echeance"`
	Statut       string     `json:"statut" gorm:"default:À faire"`
	DateCreation time.Time  `json:"date_creation" gorm:"column:date_creation;default:CURRENT_TIMESTAMP"`
}

func (Tache) TableName() string {
	return "taches"
}

// Urgente indique si la tâche est en retard : échéance passée alors que la
// tâche est encore à faire. Propriété dérivée, jamais stockée.
func (t Tache) Urgente() bool {
	return t.DateEcheance != nil && t.DateEcheance.Before(time.Now()) && t.Statut == TacheAFaire
}

// TacheCreate modèle pour créer une tâche
type TacheCreate struct {
	ContactID    string     `json:"contact_id" binding:"required"`
	Description  string     `json:"description" binding:"required" example:"Rappeler pour devis mutuelle"`
	DateEcheance *time.Time `json:"date_echeance"`
}

// TacheUpdate modèle pour modifier une tâche
type TacheUpdate struct {
	Description  string     `json:"description" binding:"required"`
	DateEcheance *time.Time `json:"date_echeance"`
	Statut       string     `json:"statut"`
}

// TacheWithContact tâche enrichie des coordonnées du contact et du drapeau
// d'urgence dérivé
type TacheWithContact struct {
	Tache
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Telephone string `json:"telephone"`
	Urgente   bool   `json:"urgente" gorm:"-"`
}

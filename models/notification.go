package models

import (
	"time"
)

// Types de notification émis par les mutations
const (
	NotificationSysteme     = "Système"
	NotificationInteraction = "Interaction"
	NotificationTache       = "Tâche"
)

// Notification trace consultative d'un événement (création de contact,
// d'interaction, de tâche). Jamais relue par la logique métier.
type Notification struct {
	ID           string    `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	Utilisateur  string    `json:"utilisateur" gorm:"default:admin"`
	Type         string    `json:"type" gorm:"not null"`
	Message      string    `json:"message" gorm:"type:text;not null"`
	Lu           bool      `json:"lu" gorm:"default:false"`
	DateCreation time.Time `json:"date_creation" gorm:"column:date_creation;default:CURRENT_TIMESTAMP"`
}

func (Notification) TableName() string {
	return "notifications"
}

package models

import (
	"time"
)

// Utilisateur représente un compte courtier de l'application
type Utilisateur struct {
	ID           string    `json:"id" gorm:"primaryKey;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" binding:"required,email"`
	MotDePasse   string    `json:"-" gorm:"column:mot_de_passe;not null"`
	Nom          string    `json:"nom"`
	Role         string    `json:"role" gorm:"default:admin"`
	DateCreation time.Time `json:"date_creation" gorm:"column:date_creation;default:CURRENT_TIMESTAMP"`
}

func (Utilisateur) TableName() string {
	return "utilisateurs"
}

// LoginRequest identifiants de connexion
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@crm-assurance.fr"`
	Password string `json:"password" binding:"required"`
}

package db

import (
	"crm-backend/models"
	"crm-backend/utils"
)

// Notify enregistre une notification consultative. Best-effort : un échec est
// journalisé mais ne doit jamais faire échouer la mutation qui l'a déclenchée.
func Notify(kind, message string) {
	notification := models.Notification{
		Type:    kind,
		Message: message,
	}
	if err := DB.Create(&notification).Error; err != nil {
		utils.LogError(err, "Erreur lors de la création de la notification")
	}
}

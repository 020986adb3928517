package health

import (
	"net/http"

	"crm-backend/db"
	"crm-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Health check
// @Description Vérifie que l'API et la base de données répondent
// @Tags health
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /health [get]
func HandleHealth(c *gin.Context) {
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		utils.SendError(c, http.StatusServiceUnavailable, "Base de données injoignable")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Service opérationnel", gin.H{
		"database": "ok",
	})
}

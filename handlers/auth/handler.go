package auth

import (
	"errors"
	"net/http"

	"crm-backend/db"
	"crm-backend/models"
	"crm-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Login
// @Description Authenticate a broker account and issue a JWT (24h)
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "token + user"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Identifiants invalides"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	var user models.Utilisateur
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
			return
		}
		utils.LogError(err, "Erreur login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.MotDePasse), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateJWT(user, 24)
	if err != nil {
		utils.LogError(err, "Erreur génération du token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Connexion réussie",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"nom":   user.Nom,
			"role":  user.Role,
		},
	})
}

// @Summary Verify token
// @Description Validate the bearer token and return the matching account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "user"
// @Failure 401 {object} map[string]string "error: Token invalide"
// @Router /auth/verify [get]
func Verify(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
		return
	}

	var user models.Utilisateur
	if err := db.DB.Select("id, email, nom, role").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

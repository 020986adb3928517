package main

import (
	"log"
	"os"

	"crm-backend/db"
	_ "crm-backend/docs"
	"crm-backend/routes"

	"github.com/gin-gonic/gin"
)

// @title API CRM Assurance
// @version 1.0
// @description API de gestion de la relation client pour courtiers en assurance
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Entrez le JWT avec le préfixe Bearer: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	// Initialiser la base de données
	db.InitDB()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Erreur lors du démarrage du serveur:", err)
	}
}

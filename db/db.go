package db

import (
	"errors"
	"os"

	"crm-backend/models"
	"crm-backend/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.LogError(err, "Warning: Impossible to load the .env file")
		utils.LogInfo("The environment variable DB_URL must be defined in the system environment")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		utils.LogError(nil, "Variable DB_URL non définie")
		panic("URL de base de données non configurée")
	}

	var err error
	// Utilisation du logger GORM harmonisé
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: utils.GetGormLogger(),
	})
	if err != nil {
		utils.LogError(err, "Error connecting to the database")
		panic("Could not connect to the database")
	}

	err = DB.AutoMigrate(
		&models.Utilisateur{},
		&models.Contact{},
		&models.Interaction{},
		&models.Tache{},
		&models.Produit{},
		&models.ContratClient{},
		&models.Notification{},
	)
	if err != nil {
		utils.LogError(err, "Error migrating database")
		panic("Could not migrate database")
	}

	seedCatalog()
	seedAdmin()

	utils.LogSuccess("Database connection successful")
}

// IsUniqueViolation indique si l'erreur vient d'une contrainte d'unicité
// (téléphone ou email déjà utilisés). Code Postgres 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// seedCatalog insère le catalogue de produits d'assurance s'il est vide
func seedCatalog() {
	var count int64
	if err := DB.Model(&models.Produit{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	produits := []models.Produit{
		{NomProduit: "Mutuelle Santé Senior+", Categorie: "Santé", Description: "Couverture santé complète pour seniors"},
		{NomProduit: "Prévoyance TNS Pro", Categorie: "Prévoyance", Description: "Protection revenus pour travailleurs non-salariés"},
		{NomProduit: "Assurance Dépendance Gold", Categorie: "Dépendance", Description: "Prise en charge perte d'autonomie"},
		{NomProduit: "Complémentaire Santé Famille", Categorie: "Santé", Description: "Protection santé pour toute la famille"},
		{NomProduit: "Garantie Obsèques Sérénité", Categorie: "Prévoyance", Description: "Prise en charge frais obsèques"},
	}
	if err := DB.Create(&produits).Error; err != nil {
		utils.LogError(err, "Erreur lors de l'insertion du catalogue produits")
	}
}

// seedAdmin crée le compte administrateur par défaut s'il n'existe pas
func seedAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@crm-assurance.fr"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var existing models.Utilisateur
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(err, "Erreur lors de la vérification du compte admin")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError(err, "Erreur lors du hachage du mot de passe admin")
		return
	}

	admin := models.Utilisateur{
		Email:      email,
		MotDePasse: string(hashed),
		Nom:        "Administrateur",
		Role:       "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		utils.LogError(err, "Erreur lors de la création du compte admin")
	}
}

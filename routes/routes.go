package routes

import (
	"time"

	"crm-backend/db"
	"crm-backend/services/contact360"
	"crm-backend/services/scoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter() *gin.Engine {

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Pour autoriser toutes les origines en dev
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Les dépendances externes sont construites une fois et injectées : le
	// comportement de repli et de timeout du scoring se teste sans réseau
	scorer := scoring.NewClient()
	detail := contact360.NewService(db.DB, scorer)

	HealthRoutes(r)
	AuthRoutes(r)
	ContactsRoutes(r, detail)
	InteractionsRoutes(r)
	TachesRoutes(r)
	DashboardRoutes(r, scorer)
	NotificationsRoutes(r)

	return r
}

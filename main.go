package main

import (
	"fmt"
	"log"
	"os"
	"taxinvoice-backend/cache"
	"taxinvoice-backend/config"
	"taxinvoice-backend/controllers"
	"taxinvoice-backend/models"
	"taxinvoice-backend/routes"
	"taxinvoice-backend/services"
	"taxinvoice-backend/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.InventoryItem{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.ReminderLog{},
	)
}

func main() {
	cacheDir := os.Getenv("CACHE_DIR")
	if cacheDir == "" {
		cacheDir = "."
	}
	controllers.CompanyCache = cache.NewCompanyCache(cacheDir)
	config.SeedCompanies = controllers.CompanyCache.Load(config.DefaultCompanies())

	controllers.Drafts = session.NewStore()

	reminderService := services.NewReminderService(config.DB, controllers.Drafts)
	reminderService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

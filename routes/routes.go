package routes

import (
	"taxinvoice-backend/config"
	"taxinvoice-backend/controllers"
	"taxinvoice-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.GET("/profile", controllers.Me)
		auth.PUT("/profile", controllers.UpdateProfile)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Inventory routes
		items := api.Group("/items")
		{
			items.POST("", controllers.CreateItem)
			items.GET("", controllers.GetItems)
			items.GET("/:id", controllers.GetItem)
			items.PUT("/:id", controllers.UpdateItem)
			items.DELETE("/:id", controllers.DeleteItem)
		}

		// Company (buyer) routes
		companies := api.Group("/companies")
		{
			companies.POST("", controllers.CreateCompany)
			companies.GET("", controllers.GetCompanies)
			companies.GET("/:id", controllers.GetCompany)
			companies.PUT("/:id", controllers.UpdateCompany)
			companies.DELETE("/:id", controllers.DeleteCompany)
		}

		// Draft invoice routes
		draft := api.Group("/draft")
		{
			draft.GET("", controllers.GetDraft)
			draft.DELETE("", controllers.ClearDraft)
			draft.POST("/items", controllers.AddDraftItem)
			draft.PUT("/items/:lineId", controllers.UpdateDraftLine)
			draft.DELETE("/items/:lineId", controllers.RemoveDraftLine)
			draft.PUT("/company", controllers.SelectDraftCompany)
			draft.PUT("/options", controllers.SetDraftOptions)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("/generate", controllers.GenerateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboard)
	}

	return r
}

package main

import (
	"log"
	"net/http"

	"reviews-server/config"
	"reviews-server/database"
	"reviews-server/handlers"
	"reviews-server/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.Connect(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Initialize tables
	if err := db.InitializeTables(); err != nil {
		log.Fatal("Failed to initialize tables:", err)
	}

	// Initialize Cloudinary; image uploads stay disabled without it
	if config.AppConfig.CloudinaryURL != "" {
		if err := services.InitializeCloudinary(config.AppConfig.CloudinaryURL); err != nil {
			log.Printf("WARNING: Failed to initialize Cloudinary: %v", err)
		}
	}

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Reviews server is running",
		})
	})

	// Initialize handlers
	handlers.InitializeHandlers(db)

	// Authentication routes
	router.POST("/auth/login", handlers.Login)
	router.POST("/auth/company-login", handlers.CompanyLogin)

	// User routes
	router.GET("/users", handlers.GetUsers)
	router.POST("/users", handlers.CreateUser)
	router.GET("/users/:id", handlers.GetUser)
	router.PUT("/users/:id", handlers.UpdateUser)
	router.DELETE("/users/:id", handlers.DeleteUser)
	router.POST("/users/:id/image", handlers.AuthMiddleware(), handlers.UploadUserImage)

	// Review routes
	router.GET("/reviews", handlers.GetReviews)
	router.POST("/reviews", handlers.CreateReview)
	router.GET("/reviews/:id", handlers.GetReview)
	router.PUT("/reviews/:id", handlers.UpdateReview)
	router.DELETE("/reviews/:id", handlers.DeleteReview)

	// Company routes
	router.GET("/companies", handlers.GetCompanies)
	router.POST("/companies", handlers.CreateCompany)
	router.GET("/companies/:id", handlers.GetCompany)
	router.PUT("/companies/:id", handlers.UpdateCompany)
	router.DELETE("/companies/:id", handlers.DeleteCompany)
	router.POST("/companies/:id/image", handlers.AuthMiddleware(), handlers.UploadCompanyImage)

	// Category routes
	router.GET("/categories", handlers.GetCategories)
	router.POST("/categories", handlers.CreateCategory)
	router.GET("/categories/:id", handlers.GetCategory)
	router.PUT("/categories/:id", handlers.UpdateCategory)
	router.DELETE("/categories/:id", handlers.DeleteCategory)

	// CORS wrapper around the whole router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)

	log.Printf("Server starting on port %s", config.AppConfig.ServerPort)
	if err := http.ListenAndServe(":"+config.AppConfig.ServerPort, corsHandler); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

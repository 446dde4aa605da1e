package main

import (
	_ "foodback/api/swagger" // swagger docs
	"foodback/internal/database"
	"foodback/internal/handler"
	"foodback/internal/middleware"
	"foodback/internal/repository"
	"foodback/internal/service"
	"foodback/internal/websocket"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           FoodBack API
// @version         1.0
// @description     Donation-matching backend: empresas post surplus-food donations, ONGs claim them, an admin approves registrations.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "foodback"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub for the donation event feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	adminRepo := repository.NewAdminRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	ngoRepo := repository.NewNGORepository(db)
	donationRepo := repository.NewDonationRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	txManager := repository.NewTransactionManager(db)

	authService := service.NewAuthService(adminRepo, companyRepo, ngoRepo)
	approvalService := service.NewApprovalService(companyRepo, ngoRepo, txManager)
	donationService := service.NewDonationService(donationRepo, companyRepo, ngoRepo, txManager, wsHub)
	requestService := service.NewRequestService(requestRepo, donationRepo, ngoRepo, txManager, wsHub)
	statisticsService := service.NewStatisticsService(donationRepo, companyRepo, ngoRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(approvalService, statisticsService)
	donationHandler := handler.NewDonationHandler(donationService)
	requestHandler := handler.NewRequestHandler(requestService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint: donation lifecycle feed for ONGs and admins
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	adminHandler.RegisterRoutes(router.Group(""))
	donationHandler.RegisterRoutes(router.Group(""))
	requestHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

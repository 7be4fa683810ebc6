package main

import (
	"context"
	"log"
	"os"

	"backoffice/internal/database"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"
	"backoffice/internal/repository"
	"backoffice/internal/service"
	"backoffice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Practice Back Office API
// @version         1.0
// @description     Invoice template composition and memo registry for a tax and accounting practice.
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
		dbName = "postgres"
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

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	memoRepo := repository.NewMemoTemplateRepository(db)
	catalogRepo := repository.NewLineItemCatalogRepository(db)

	if err := database.Seed(context.Background(), templateRepo, catalogRepo, userRepo); err != nil {
		log.Println("WARNING: Failed to seed database:", err)
	}

	auditService := service.NewAuditService(db)
	userService := service.NewUserService(userRepo, middleware.GetJWTSecret(), auditService)
	templateService := service.NewTemplateService(templateRepo, txManager, auditService, wsHub)
	memoService := service.NewMemoTemplateService(memoRepo, auditService, wsHub)
	catalogService := service.NewCatalogService(templateRepo, catalogRepo)
	draftService := service.NewDraftSessionService(templateRepo, catalogRepo, templateService)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	templateHandler := handler.NewTemplateHandler(templateService)
	draftHandler := handler.NewDraftHandler(draftService, memoService)
	memoHandler := handler.NewMemoTemplateHandler(memoService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
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

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	templateHandler.RegisterRoutes(router.Group(""))
	draftHandler.RegisterRoutes(router.Group(""))
	memoHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

package main

import (
	"log"
	"os"

	_ "shopstock/api/swagger" // swagger docs
	"shopstock/internal/database"
	"shopstock/internal/handler"
	"shopstock/internal/middleware"
	"shopstock/internal/repository"
	"shopstock/internal/service"
	"shopstock/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Shop Stock API
// @version         1.0
// @description     Inventory and transaction backend for small retail shops.
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
		dbName = "shopstock"
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
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	productRepo := repository.NewProductRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	contactRepo := repository.NewContactRepository(db)
	bookRepo := repository.NewBookRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTransactionManager(db)

	userService := service.NewUserService(userRepo)
	shopService := service.NewShopService(shopRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	stockService := service.NewStockService(shopRepo, catalogRepo, productRepo, transactionRepo, contactRepo, txManager, wsHub)
	transactionService := service.NewTransactionService(shopRepo, transactionRepo)
	orderService := service.NewOrderService(shopRepo, productRepo, orderRepo, contactRepo, txManager)
	contactService := service.NewContactService(shopRepo, contactRepo)
	bookService := service.NewBookService(shopRepo, bookRepo)
	reportService := service.NewReportService(shopRepo, reportRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	shopHandler := handler.NewShopHandler(shopService)
	catalogHandler := handler.NewCatalogHandler(catalogService, stockService)
	productHandler := handler.NewProductHandler(stockService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	orderHandler := handler.NewOrderHandler(orderService)
	contactHandler := handler.NewContactHandler(contactService)
	bookHandler := handler.NewBookHandler(bookService)
	reportHandler := handler.NewReportHandler(reportService)

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

	// WebSocket endpoint for live stock updates
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	shopHandler.RegisterRoutes(router.Group(""))
	catalogHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	transactionHandler.RegisterRoutes(router.Group(""))
	orderHandler.RegisterRoutes(router.Group(""))
	contactHandler.RegisterRoutes(router.Group(""))
	bookHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

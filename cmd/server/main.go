package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"delivery_api/internal/config"
	"delivery_api/internal/handler"
	"delivery_api/internal/middleware"
	"delivery_api/internal/repository"
	"delivery_api/internal/service"
	"delivery_api/internal/storage"
	"delivery_api/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	utils.InitLogger(os.Getenv("LOG_LEVEL"))
	defer utils.Logger.Sync()

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		utils.Logger.Fatal("failed to load DB config", zap.Error(err))
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		utils.Logger.Fatal("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHours, err := strconv.ParseInt(os.Getenv("JWT_EXPIRATION_HOURS"), 10, 64)
	if err != nil {
		utils.Logger.Warn("invalid JWT_EXPIRATION_HOURS, defaulting to 24", zap.Error(err))
		jwtExpHours = 24
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads" // Default uploads directory
	}

	// --- File Storage ---
	fileStorage, err := storage.NewLocalStorage(uploadsDir)
	if err != nil {
		utils.Logger.Fatal("failed to set up uploads storage", zap.Error(err))
	}
	utils.Logger.Info("uploads directory ready", zap.String("dir", uploadsDir))

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		utils.Logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		utils.Logger.Fatal("failed to auto-migrate database", zap.Error(err))
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	addressRepo := repository.NewAddressRepository(dbPool)
	riderRepo := repository.NewRiderProfileRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, fileStorage, jwtUtil)
	addressService := service.NewAddressService(addressRepo)
	riderService := service.NewRiderService(riderRepo, userRepo)

	// --- Initialize Handlers ---
	userHandler := handler.NewUserHandler(authService)
	addressHandler := handler.NewAddressHandler(addressService)
	riderHandler := handler.NewRiderHandler(riderService)
	fileHandler := handler.NewFileHandler(fileStorage)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"}
	router.Use(cors.New(corsConfig))

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	riderRoleMW := middleware.RiderMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1") // Base path for API
	userHandler.RegisterUserRoutes(apiGroup)
	addressHandler.RegisterAddressRoutes(apiGroup)
	riderHandler.RegisterRiderRoutes(apiGroup, jwtAuthMW, riderRoleMW)
	fileHandler.RegisterFileRoutes(apiGroup)

	// Static mount mirrors the file retrieval endpoint for direct links
	router.Static("/uploads", uploadsDir)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		utils.Logger.Info("server starting", zap.String("port", serverPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	utils.Logger.Info("server exiting")
}

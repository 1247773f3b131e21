package main

import (
	"net/http"
	"os"

	"giftlist-api/internal/database"
	"giftlist-api/internal/handlers"
	"giftlist-api/internal/logging"
	"giftlist-api/internal/middleware"
	"giftlist-api/internal/session"
	"giftlist-api/internal/storage"
	tlsconfig "giftlist-api/internal/tls"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	logging.Init(logging.OptionsFromEnv())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Base URL used to build guest share links (e.g. https://gifts.example.com)
	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")

	// Check if we should use in-memory storage (for development)
	useInMemory := os.Getenv("USE_MEMORY_STORAGE") == "true"

	var store storage.Store
	var db *gorm.DB

	if useInMemory {
		logging.Logger.Info("Using in-memory storage")
		store = storage.NewStorage()
	} else {
		dbConfig := database.NewConfigFromEnv()
		conn, err := database.Connect(dbConfig)
		if err != nil {
			logging.Logger.Fatalf("Failed to connect to database: %v", err)
		}

		if err := database.AutoMigrate(conn); err != nil {
			logging.Logger.Fatalf("Failed to run migrations: %v", err)
		}

		logging.Logger.Info("PostgreSQL storage initialized successfully")
		db = conn
		store = storage.NewPostgresStorage(conn)
	}

	guard := session.NewMemoryGuard()

	listHandler := handlers.NewListHandler(store, publicBaseURL)
	sessionHandler := handlers.NewSessionHandler(store, guard)
	giftHandler := handlers.NewGiftHandler(store)
	healthHandler := handlers.NewHealthHandler(db)

	// Set up Gin router (without default logger since we'll use our own)
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.SecurityHeaders())

	corsConfig := middleware.NewCORSConfigFromEnv()
	router.Use(middleware.CORS(corsConfig))

	router.Use(middleware.RequestSizeLimit(middleware.MaxBodySizeFromEnv()))

	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorSanitizer())

	rateLimitConfig := middleware.NewRateLimitConfigFromEnv()
	router.Use(middleware.GlobalRateLimiter(rateLimitConfig))

	// API version 1 routes
	v1 := router.Group("/api/v1")
	{
		lists := v1.Group("/lists")
		{
			// Creation and owner login flow
			lists.POST("", listHandler.CreateList)
			lists.POST("/lookup", listHandler.Lookup)

			// Guest view: read the document, request a gift
			lists.GET("/:listId", listHandler.GetList)
			lists.POST("/:listId/gifts/:giftId/request", giftHandler.RequestGift)

			// Admin session
			lists.POST("/:listId/session", sessionHandler.Login)
			lists.GET("/:listId/session", sessionHandler.Status)
			lists.DELETE("/:listId/session", sessionHandler.Logout)

			// Owner-only gift administration
			admin := lists.Group("/:listId/gifts", middleware.AdminSession(guard))
			{
				admin.POST("", giftHandler.CreateGift)
				admin.PUT("/:giftId", giftHandler.UpdateGift)
				admin.DELETE("/:giftId", giftHandler.DeleteGift)
				admin.POST("/:giftId/approve", giftHandler.ApproveGift)
				admin.POST("/:giftId/reject", giftHandler.RejectGift)
			}
		}
	}

	router.GET("/health", healthHandler.BasicHealth)
	router.GET("/health/detailed", healthHandler.DetailedHealth)

	tlsCfg := tlsconfig.NewConfigFromEnv()
	if tlsCfg.Enabled {
		serveTLS(router, tlsCfg)
		return
	}

	logging.Logger.Infof("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}

// serveTLS runs the HTTPS server, optionally with an HTTP redirect listener.
func serveTLS(router *gin.Engine, cfg *tlsconfig.Config) {
	serverTLSConfig, err := cfg.Build()
	if err != nil {
		logging.Logger.Fatalf("Failed to configure TLS: %v", err)
	}

	if cfg.RedirectHTTP {
		go func() {
			logging.Logger.Infof("Starting HTTP redirect server on port %s...", cfg.HTTPPort)
			redirect := &http.Server{
				Addr:    ":" + cfg.HTTPPort,
				Handler: tlsconfig.RedirectHandler(cfg.Port),
			}
			if err := redirect.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Logger.Errorf("HTTP redirect server failed: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:      cfg.Addr(),
		Handler:   router,
		TLSConfig: serverTLSConfig,
	}

	logging.Logger.Infof("Starting HTTPS server on port %s...", cfg.Port)
	if err := server.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
		logging.Logger.Fatalf("Failed to start HTTPS server: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tijori/internal/config"
	"tijori/internal/database"
	"tijori/internal/handlers"
	"tijori/internal/logger"
	"tijori/internal/middleware"
	"tijori/internal/provider"
	"tijori/internal/resolver"
	"tijori/internal/services"
	"tijori/internal/store"
	"tijori/internal/validator"

	_ "tijori/internal/docs" // Import swagger docs
)

// @title           Tijori API
// @version         1.0
// @description     Tijori tracks Indian equity and mutual fund holdings and values them against live NSE, BSE and AMFI prices.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.Get()

	decimal.MarshalJSONWithoutQuotes = true
	validator.Register()

	// Upstream providers
	httpClient := &http.Client{Timeout: appConfig.UpstreamTimeout}
	timeSeries := provider.NewYahooTimeSeries(httpClient)
	chartClient := provider.NewChartClient(provider.Options{
		HTTPClient: httpClient,
		BaseURL:    appConfig.ChartAPIURL,
		Retries:    appConfig.UpstreamRetries,
	})
	fundClient := provider.NewFundClient(provider.Options{
		HTTPClient: httpClient,
		BaseURL:    appConfig.FundAPIURL,
		Retries:    appConfig.UpstreamRetries,
	})

	quoteResolver := resolver.NewQuoteResolver(timeSeries, chartClient, log)
	fundResolver := resolver.NewFundResolver(fundClient, log)

	// Holding store
	holdings, auditService, closeStore, err := openStore(appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize services
	portfolioService := services.NewPortfolioService(holdings, quoteResolver, fundResolver, appConfig.ReconcileConcurrency)
	marketService := services.NewMarketService(quoteResolver, fundResolver)

	// Initialize handlers
	stockHandler := handlers.NewStockHandler(portfolioService, auditService)
	fundHandler := handlers.NewFundHandler(portfolioService, auditService)
	marketHandler := handlers.NewMarketHandler(marketService)
	dashboardHandler := handlers.NewDashboardHandler(portfolioService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	v1.GET("/quotes/:ticker", marketHandler.GetQuote)
	v1.GET("/funds/:code", marketHandler.GetFund)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware([]byte(appConfig.JWTSecret)))

	protected.GET("/stocks", stockHandler.GetStocks)
	protected.POST("/stocks", stockHandler.AddStock)
	protected.GET("/mutual-funds", fundHandler.GetFunds)
	protected.POST("/mutual-funds", fundHandler.AddFund)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	log.Infof("Starting Tijori backend server on port %s (store: %s)", appConfig.Port, appConfig.StoreBackend)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// openStore builds the configured holding store and the audit service that
// goes with it. Audit rows are only persisted on the database backend.
func openStore(cfg *config.Config) (store.HoldingStore, services.AuditServicer, func(), error) {
	log := logger.Get()

	switch cfg.StoreBackend {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warnf("redis close error: %v", err)
			}
		}
		return store.NewRedisStore(client), services.NewAuditService(nil), closeFn, nil

	case config.StoreDatabase:
		dbManager, err := database.NewManager(database.NewConfig(cfg))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := dbManager.RunMigrations(); err != nil {
			_ = dbManager.Close()
			return nil, nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		closeFn := func() {
			if err := dbManager.Close(); err != nil {
				log.Warnf("database close error: %v", err)
			}
		}
		db := dbManager.DB()
		return store.NewGormStore(db), services.NewAuditService(db), closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kchol-assistant/internal/assistant/config"
	delivery "kchol-assistant/internal/assistant/delivery/http"
	_ "kchol-assistant/internal/assistant/docs"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/assistant/service"
	"kchol-assistant/internal/assistant/session"
	"kchol-assistant/pkg/logger"
	"kchol-assistant/pkg/postgres"
	"kchol-assistant/pkg/redis"
	"kchol-assistant/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the assistant service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Assistant Service", logger.StringField("name", cfg.App.Name))

	// Database is optional: without it the assistant runs with in-memory
	// sessions and without portfolio, document and calendar persistence.
	var db *postgres.DB
	if cfg.Database.Host != "" {
		postgresCfg := postgres.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			TimeZone:        cfg.Database.TimeZone,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
		}
		db, err = postgres.NewDB(postgresCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			defer sqlDB.Close()
		}
	}

	// Session store
	sessionStore := session.NewMemoryStore()
	if cfg.Assistant.SessionStore == "redis" {
		redisCfg := redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		}
		redisClient, err := redis.NewClient(redisCfg)
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		sessionStore = session.NewRedisStore(redisClient.Client)
	}

	// Repositories
	yahooRepo, err := repository.NewYahooFinanceRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Yahoo Finance repository", logger.ErrorField(err))
	}

	newsRepo, err := repository.NewNewsAPIRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize NewsAPI repository", logger.ErrorField(err))
	}
	rssRepo := repository.NewGoogleRSSRepository(appLogger)

	var aiRepo repository.AIRepository
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
	} else {
		appLogger.Warn("Gemini API key missing, generative answers disabled")
	}

	modelRepo := repository.NewPriceModelRepository(cfg.Assistant.ModelPath, appLogger)

	var (
		predictionLogRepo repository.PredictionLogRepository
		portfolioRepo     repository.PortfolioRepository
		documentRepo      repository.DocumentRepository
		calendarEventRepo repository.CalendarEventRepository
	)
	if db != nil {
		predictionLogRepo = repository.NewPredictionLogRepository(db.DB)
		portfolioRepo = repository.NewPortfolioRepository(db.DB)
		documentRepo = repository.NewDocumentRepository(db.DB)
		calendarEventRepo = repository.NewCalendarEventRepository(db.DB)
	}

	// Services
	predictorSvc := service.NewPredictorService(yahooRepo, modelRepo, predictionLogRepo, cfg.Assistant.LookbackDays, appLogger)
	newsSvc := service.NewNewsService(newsRepo, rssRepo, cfg.Assistant.SearchTerms, cfg.Assistant.NewsDays, cfg.Assistant.NewsPageSize, appLogger)
	technicalSvc := service.NewTechnicalAnalysisService(yahooRepo, aiRepo, cfg.Assistant.Ticker, cfg.Assistant.LookbackDays, appLogger)
	advisorSvc := service.NewAdvisorService(aiRepo, appLogger)
	simulationSvc := service.NewSimulationService(yahooRepo, appLogger)
	qaSvc := service.NewQAService(documentRepo, aiRepo, appLogger)
	if documentRepo != nil && cfg.Assistant.DocumentsDir != "" {
		if err := qaSvc.SeedFromDir(ctx, cfg.Assistant.DocumentsDir); err != nil {
			appLogger.Warn("Failed to seed knowledge base documents", logger.ErrorField(err))
		}
	}
	chatSvc := service.NewChatService(predictorSvc, technicalSvc, newsSvc, advisorSvc, simulationSvc, qaSvc, aiRepo, sessionStore, appLogger)

	var calendarSvc service.CalendarService
	if calendarEventRepo != nil {
		kapRepo := repository.NewKAPRepository(appLogger)
		calendarSvc = service.NewCalendarService(kapRepo, calendarEventRepo, cfg.Assistant.CalendarSymbols, appLogger)
	}

	// Scheduler for the Telegram daily briefing and the calendar refresh.
	// The calendar job runs even when Telegram delivery is disabled.
	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		notifier = client
	}
	if notifier != nil || calendarSvc != nil {
		briefingSvc := service.NewBriefingService(predictorSvc, newsSvc, calendarSvc, aiRepo, notifier,
			cfg.Assistant.Ticker, cfg.Assistant.BriefingSpec, cfg.Assistant.CalendarSpec, appLogger)
		if err := briefingSvc.Start(ctx); err != nil {
			appLogger.Fatal("Failed to start briefing scheduler", logger.ErrorField(err))
		}
		defer briefingSvc.Stop()
	}

	// HTTP server
	e := echo.New()
	e.HideBanner = true

	api := e.Group("/api")

	chatHandler := delivery.NewChatHandler(chatSvc, appLogger)
	chatHandler.RegisterRoutes(api)

	analysisHandler := delivery.NewAnalysisHandler(newsSvc, technicalSvc, appLogger)
	analysisHandler.RegisterRoutes(api)

	documentHandler := delivery.NewDocumentHandler(qaSvc, appLogger)
	documentHandler.RegisterRoutes(api)

	if portfolioRepo != nil {
		portfolioSvc := service.NewPortfolioService(portfolioRepo, yahooRepo, appLogger)
		portfolioHandler := delivery.NewPortfolioHandler(portfolioSvc, appLogger)
		portfolioHandler.RegisterRoutes(api)
	}

	if calendarSvc != nil {
		calendarHandler := delivery.NewCalendarHandler(calendarSvc, appLogger)
		calendarHandler.RegisterRoutes(api)
	}

	e.GET("/swagger/*", swagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title KCHOL Assistant API
// @version 1.0
// @description Turkish conversational assistant for the KCHOL stock.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{Use: "assistant-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing assistant-service CLI: %s\n", err)
		os.Exit(1)
	}
}

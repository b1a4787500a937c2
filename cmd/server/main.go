package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/family-budget-backend/internal/config"
	"github.com/ignatzorin/family-budget-backend/internal/db"
	"github.com/ignatzorin/family-budget-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/family-budget-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/family-budget-backend/internal/http/router"
	"github.com/ignatzorin/family-budget-backend/internal/logger"
	"github.com/ignatzorin/family-budget-backend/internal/repository"
	"github.com/ignatzorin/family-budget-backend/internal/service"
	"github.com/ignatzorin/family-budget-backend/internal/storage"
	"github.com/ignatzorin/family-budget-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	familyRepo := repository.NewFamilyRepository(dbConn)
	categoryRepo := repository.NewCategoryRepository(dbConn)
	transactionRepo := repository.NewTransactionRepository(dbConn)
	proposalRepo := repository.NewProposalRepository(dbConn)
	approvalRepo := repository.NewApprovalRepository(dbConn)
	subscriptionRepo := repository.NewSubscriptionRepository(dbConn)
	bankAccountRepo := repository.NewBankAccountRepository(dbConn)
	consensusStore := repository.NewConsensusStore(dbConn)

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGo(hub.Run)

	// Сервисы.
	cacheService := service.NewCacheService()
	authService := service.NewAuthService(userRepo, tokenManager)
	profileService := service.NewProfileService(userRepo)
	familyService := service.NewFamilyService(familyRepo, userRepo, categoryRepo.SeedDefaults)
	categoryService := service.NewCategoryService(categoryRepo, userRepo)
	transactionService := service.NewTransactionService(transactionRepo, userRepo, cacheService)
	consensusService := service.NewConsensusService(consensusStore)
	proposalService := service.NewProposalService(proposalRepo, approvalRepo, consensusService, userRepo, userRepo, hub, cacheService)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, bankAccountRepo, userRepo)
	bankAccountService := service.NewBankAccountService(bankAccountRepo, userRepo)
	dashboardService := service.NewDashboardService(transactionRepo, subscriptionRepo, proposalRepo, userRepo, cacheService)
	seedService := service.NewSeedService(userRepo, familyRepo, categoryRepo, transactionRepo, proposalRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	profileHandler := httpHandlers.NewProfileHandler(profileService, hub)
	familyHandler := httpHandlers.NewFamilyHandler(familyService)
	categoryHandler := httpHandlers.NewCategoryHandler(categoryService)
	transactionHandler := httpHandlers.NewTransactionHandler(transactionService)
	proposalHandler := httpHandlers.NewProposalHandler(proposalService)
	subscriptionHandler := httpHandlers.NewSubscriptionHandler(subscriptionService)
	bankAccountHandler := httpHandlers.NewBankAccountHandler(bankAccountService)
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardService)
	mediaHandler := httpHandlers.NewMediaHandler(profileService, photoStorage)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		profileHandler,
		familyHandler,
		categoryHandler,
		transactionHandler,
		proposalHandler,
		subscriptionHandler,
		bankAccountHandler,
		dashboardHandler,
		mediaHandler,
		wsHandler,
		healthHandler,
		seedHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/prokvartiru/review-backend/internal/config"
	"github.com/prokvartiru/review-backend/internal/db"
	httpHandlers "github.com/prokvartiru/review-backend/internal/http/handlers"
	httpRouter "github.com/prokvartiru/review-backend/internal/http/router"
	"github.com/prokvartiru/review-backend/internal/logger"
	"github.com/prokvartiru/review-backend/internal/mailer"
	"github.com/prokvartiru/review-backend/internal/profanity"
	"github.com/prokvartiru/review-backend/internal/repository"
	"github.com/prokvartiru/review-backend/internal/service"
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
	logger.Init(cfg.LogLevel, cfg.Env)

	// Подключение к базе и индексы.
	client, database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeDisconnect(client)

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	mail := mailer.New(cfg)
	censor := profanity.New()

	// Репозитории.
	userRepo := repository.NewUserRepository(database)
	propertyRepo := repository.NewPropertyReviewRepository(database)
	tenantRepo := repository.NewTenantReviewRepository(database)
	addressRepo := repository.NewAddressRepository(database)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager, mail)
	reviewService := service.NewReviewService(propertyRepo, tenantRepo, addressRepo, userRepo, mail, censor)
	mixedSearchService := service.NewMixedSearchService(propertyRepo, tenantRepo, userRepo)
	moderationService := service.NewModerationService(propertyRepo, tenantRepo, userRepo)
	addressService := service.NewAddressService(addressRepo)
	recommendationService := service.NewRecommendationService(propertyRepo, addressRepo)

	// HTTP хэндлеры.
	healthHandler := httpHandlers.NewHealthHandler(client)
	authHandler := httpHandlers.NewAuthHandler(authService)
	propertyHandler := httpHandlers.NewPropertyReviewHandler(reviewService, mixedSearchService)
	tenantHandler := httpHandlers.NewTenantReviewHandler(reviewService)
	addressHandler := httpHandlers.NewAddressHandler(addressService)
	userHandler := httpHandlers.NewUserHandler(reviewService)
	recommendationHandler := httpHandlers.NewRecommendationHandler(recommendationService)
	adminHandler := httpHandlers.NewAdminHandler(moderationService)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, healthHandler, authHandler, propertyHandler, tenantHandler, addressHandler, userHandler, recommendationHandler, adminHandler, tokenManager)

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

// safeDisconnect закрывает соединение с базой.
func safeDisconnect(client *mongo.Client) {
	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(disconnectCtx); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}

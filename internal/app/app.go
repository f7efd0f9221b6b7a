package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"disccount_backend/database"
	"disccount_backend/internal/auth"
	"disccount_backend/internal/config"
	"disccount_backend/internal/email"
	"disccount_backend/internal/handlers"
	"disccount_backend/internal/logger"
	"disccount_backend/internal/middleware"
	"disccount_backend/internal/routes"
	"disccount_backend/internal/services"
	"disccount_backend/internal/validator"
	"disccount_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, gormDB); err != nil {
			logger.Fatal("Failed to apply migrations", "error", err)
		}
	}

	mailer, err := newMailer(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize mailer", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, mailer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// SetupRouter builds the full HTTP stack over db.
func SetupRouter(cfg *config.Config, db *gorm.DB, mailer email.Sender) *gin.Engine {
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTTL(), cfg.RefreshTTL())

	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Tokens: tokens,
		Hasher: auth.NewBcryptHasher(),
		Policy: auth.NewPasswordPolicy(cfg.Auth.PasswordMinLength),
		Mailer: mailer,
	})

	appHandlers := initializeHandlers(cfg, serviceContainer, tokens)
	health := handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	ginRouter := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(ginRouter, appHandlers, health)
	return ginRouter
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, tokens *auth.TokenIssuer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New(), middleware.AuthMiddleware(tokens))
	cookie := handlers.RefreshCookie{Name: cfg.Auth.CookieName, TTL: cfg.RefreshTTL()}

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService, cookie),
		UserHandler:         handlers.NewUserHandler(baseHandler, svc.UserService),
		ShoppingListHandler: handlers.NewShoppingListHandler(baseHandler, svc.ShoppingListService, svc.ShoppingListItemService),
		DigitalCardHandler:  handlers.NewDigitalCardHandler(baseHandler, svc.DigitalCardService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, svc.NotificationService),
		PinnedHandler:       handlers.NewPinnedHandler(baseHandler, svc.PinnedStoreService, svc.PinnedPlaceService),
		WatchlistHandler:    handlers.NewWatchlistHandler(baseHandler, svc.WatchlistService),
		StoreChainHandler:   handlers.NewStoreChainHandler(),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// newMailer returns the SMTP sender when e-mail is enabled and a no-op
// sender otherwise.
func newMailer(cfg *config.Config) (email.Sender, error) {
	if !cfg.Email.Enabled {
		logger.Warn("E-mail delivery disabled, notifications will not be mailed")
		return email.NoopSender{}, nil
	}
	sender, err := email.NewSMTPSender(email.ConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	return sender, nil
}

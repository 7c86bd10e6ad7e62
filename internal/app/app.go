package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"gallery_backend/internal/auth"
	"gallery_backend/internal/config"
	"gallery_backend/internal/database"
	"gallery_backend/internal/email"
	"gallery_backend/internal/handlers"
	"gallery_backend/internal/logger"
	"gallery_backend/internal/middleware"
	"gallery_backend/internal/monitoring"
	"gallery_backend/internal/repositories"
	"gallery_backend/internal/routes"
	"gallery_backend/internal/services"
	"gallery_backend/internal/validator"
	"gallery_backend/internal/workers"
	"gallery_backend/pkg/apperrors"
	"gallery_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	sessionPurgeInterval = time.Hour
	shutdownTimeout      = 10 * time.Second
)

// App is the wired application: router, services and background workers.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Router   *gin.Engine
	Services *services.ServiceContainer
	Notifier monitoring.Notifier
	Email    email.Provider

	WSManager *ws.Manager

	scanWorker    *workers.ScanWorker
	sessionWorker *workers.SessionWorker
	stop          context.CancelFunc
	streamsClosed sync.Once
}

// Run loads configuration, prepares the database and serves HTTP until
// SIGINT or SIGTERM.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	config.AppConfig = cfg

	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env == "development")
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if cfg.Seed.Enabled {
		if err := database.Seed(db, cfg.Seed.DefaultPassword); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	application, err := New(cfg, db)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application.Start(ctx)
	defer application.Shutdown()

	srv := application.HTTPServer(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// New wires services, handlers and routes over db. Workers do not run
// until Start.
func New(cfg *config.Config, db *gorm.DB) (*App, error) {
	notifier, err := monitoring.NewNotifier(cfg.Monitoring)
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}

	mailer, err := initializeEmail(cfg)
	if err != nil {
		notifier.Close()
		return nil, err
	}

	monitoringRepo := repositories.NewMonitoringRepository()
	scanWorker := workers.NewScanWorker(
		db,
		monitoringRepo,
		monitoring.NewSimulatedScanner(time.Now().UnixNano()),
		notifier,
		workers.ScanWorkerOptions{
			BaseDelay: cfg.Monitoring.BaseDelay,
			Jitter:    cfg.Monitoring.Jitter,
			QueueSize: cfg.Monitoring.QueueSize,
		},
	)

	serviceContainer := initializeServices(cfg, mailer, notifier, scanWorker, monitoringRepo)
	baseHandler := handlers.NewBaseHandler(validator.New(), middleware.AuthMiddleware(serviceContainer.AuthService))
	appHandlers := initializeHandlers(baseHandler, serviceContainer)

	wsManager := ws.NewManager()
	wsHandler := ws.NewWebSocketHandler(baseHandler, wsManager, serviceContainer.MonitoringService)

	ginRouter := initializeGinRouter(db)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return &App{
		Config:        cfg,
		DB:            db,
		Router:        ginRouter,
		Services:      serviceContainer,
		Notifier:      notifier,
		Email:         mailer,
		WSManager:     wsManager,
		scanWorker:    scanWorker,
		sessionWorker: workers.NewSessionWorker(db, repositories.NewSessionRepository(), sessionPurgeInterval),
	}, nil
}

// Start launches the background workers. They stop when ctx is done or
// Shutdown runs.
func (a *App) Start(ctx context.Context) {
	ctx, a.stop = context.WithCancel(ctx)
	a.scanWorker.Start(ctx)
	a.sessionWorker.Start(ctx)
	go a.WSManager.Run(ctx)
}

// HTTPServer serves the router on addr. Its Shutdown also closes the
// event streams; SSE clients never end a request on their own.
func (a *App) HTTPServer(addr string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(a.CloseStreams)
	return srv
}

// CloseStreams closes the notifier, which ends every event subscription.
// Later calls do nothing.
func (a *App) CloseStreams() {
	a.streamsClosed.Do(func() {
		if err := a.Notifier.Close(); err != nil {
			logger.Warn("Failed to close notifier", "error", err)
		}
	})
}

// Shutdown stops the workers and waits for in-flight scans and mail.
func (a *App) Shutdown() {
	if a.stop != nil {
		a.stop()
	}
	a.scanWorker.Wait()
	a.Services.NotificationService.Wait()

	a.CloseStreams()
	if err := a.Email.Close(); err != nil {
		logger.Warn("Failed to close email provider", "error", err)
	}
}

func initializeEmail(cfg *config.Config) (email.Provider, error) {
	templates := email.NewDefaultTemplateManager()
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, messages are logged only")
		return email.NewLogProvider(templates), nil
	}

	provider := email.NewSMTPProvider(email.ConfigFrom(cfg.Email), templates)
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("email: %w", err)
	}
	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	return provider, nil
}

func initializeServices(
	cfg *config.Config,
	mailer email.Provider,
	notifier monitoring.Notifier,
	scanQueue services.ScanQueue,
	monitoringRepo repositories.MonitoringRepository,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	profileRepo := repositories.NewProfileRepository()
	gigRepo := repositories.NewGigRepository()
	applicationRepo := repositories.NewApplicationRepository()
	agreementRepo := repositories.NewAgreementRepository()
	reviewRepo := repositories.NewReviewRepository()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())

	notificationService := services.NewNotificationService(mailer, profileRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, tokens)
	profileService := services.NewProfileService(userRepo, profileRepo, reviewRepo)
	gigService := services.NewGigService(gigRepo, profileRepo)
	applicationService := services.NewApplicationService(applicationRepo, gigRepo, profileRepo, agreementRepo, notificationService)
	agreementService := services.NewAgreementService(agreementRepo, profileRepo, notificationService)
	reviewService := services.NewReviewService(reviewRepo, gigRepo, profileRepo)
	monitoringService := services.NewMonitoringService(monitoringRepo, profileRepo, scanQueue, notifier)

	return &services.ServiceContainer{
		AuthService:         authService,
		ProfileService:      profileService,
		GigService:          gigService,
		ApplicationService:  applicationService,
		AgreementService:    agreementService,
		ReviewService:       reviewService,
		MonitoringService:   monitoringService,
		NotificationService: notificationService,
	}
}

func initializeHandlers(baseHandler *handlers.BaseHandler, services *services.ServiceContainer) *handlers.AppHandlers {
	return &handlers.AppHandlers{
		HealthHandler:      handlers.NewHealthHandler(baseHandler),
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.AuthService),
		ProfileHandler:     handlers.NewProfileHandler(baseHandler, services.ProfileService),
		GigHandler:         handlers.NewGigHandler(baseHandler, services.GigService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, services.ApplicationService),
		AgreementHandler:   handlers.NewAgreementHandler(baseHandler, services.AgreementService),
		ReviewHandler:      handlers.NewReviewHandler(baseHandler, services.ReviewService),
		MonitoringHandler:  handlers.NewMonitoringHandler(baseHandler, services.MonitoringService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

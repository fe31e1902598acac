package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mightymoves/config"
	"mightymoves/cron"
	"mightymoves/handlers"
	"mightymoves/middleware"
	"mightymoves/routes"
	"mightymoves/services/admin"
	"mightymoves/services/backend"
	"mightymoves/services/booking"
	"mightymoves/services/form"
	"mightymoves/services/notification"
	"mightymoves/services/session"
	"mightymoves/services/tracking"
	"mightymoves/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.AppConfig.SessionSecret == "" {
		logger.Sugar().Fatal("main: SESSION_SECRET must be set")
	}
	if config.AppConfig.AdminToken == "" {
		logger.Warn("main: ADMIN_TOKEN is empty, admin console is locked")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// stores.
	var (
		sessions     session.Store
		forms        form.StateStore
		feed         notification.Feed
		redisClients []*redis.Client
	)
	if config.UseMemoryStores() {
		logger.Info("main: using in-process stores")
		sessions = session.NewMemoryStore()
		forms = form.NewMemoryStateStore()
		feed = notification.NewMemoryFeed()
	} else {
		sessionClient := utils.GetSessionClient()
		formClient := utils.GetFormClient()
		redisClients = []*redis.Client{sessionClient, formClient}
		sessions = session.NewRedisStore(sessionClient)
		forms = form.NewRedisStateStore(formClient, config.FormStateTTL())
		feed = notification.NewRedisFeed(sessionClient)
	}

	client := backend.NewHTTPClient(config.AppConfig.BackendURL, config.BackendTimeout(), logger.Named("backend"))

	// admin notification delivery.
	var notifiers []notification.Notifier
	var queueClient *asynq.Client
	var worker *asynq.Server
	if config.AppConfig.QueueEnabled && !config.UseMemoryStores() {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		worker = cron.InitNotificationWorker(ctx, feed)
		notifiers = append(notifiers, notification.NewQueueNotifier(queueClient))
	} else {
		notifiers = append(notifiers, notification.NewFeedNotifier(feed))
	}
	if brokers := config.KafkaBrokerList(); len(brokers) > 0 {
		writer := notification.NewKafkaWriter(brokers, config.AppConfig.KafkaTopic)
		defer writer.Close()
		notifiers = append(notifiers, notification.NewKafkaNotifier(writer))
		logger.Info("main: publishing booking events", zap.Strings("brokers", brokers), zap.String("topic", config.AppConfig.KafkaTopic))
	}
	notifier := notification.NewMultiNotifier(logger, notifiers...)

	// services.
	authService := session.NewAuthService(client, sessions, logger.Named("auth"))
	themeService := session.NewThemeService(sessions)
	workflow := booking.NewWorkflow(client, sessions, notifier, logger.Named("booking"))
	triage := admin.NewTriage(client, sessions, feed, logger.Named("admin"))
	tracker := tracking.NewTracker(client, client, logger.Named("tracking"))

	utils.StartHealthMonitor(ctx, redisClients, client.Ping)

	authHandler := handlers.NewAuthHandler(authService)
	authHandler.OnLogout = triage.Forget

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Theme:         handlers.NewThemeHandler(themeService),
		Auth:          authHandler,
		Booking:       handlers.NewBookingHandler(forms, workflow, client, sessions, config.SuccessIndicatorTTL()),
		Catalog:       handlers.NewCatalogHandler(),
		Tracking:      handlers.NewTrackingHandler(tracker, sessions),
		Admin:         handlers.NewAdminHandler(triage),
		Sessions:      sessions,
		AdminToken:    config.AppConfig.AdminToken,
		SessionSecret: config.AppConfig.SessionSecret,
		SecureCookies: config.IsProduction(),
		AllowOrigins:  config.AllowedOriginList(),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: failed to close queue client", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

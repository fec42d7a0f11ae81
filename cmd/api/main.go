package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vetdesk/booking-api/internal/cache"
	"github.com/vetdesk/booking-api/internal/config"
	"github.com/vetdesk/booking-api/internal/email"
	"github.com/vetdesk/booking-api/internal/handler"
	authHandler "github.com/vetdesk/booking-api/internal/handler/auth"
	availabilityHandler "github.com/vetdesk/booking-api/internal/handler/availability"
	bookingHandler "github.com/vetdesk/booking-api/internal/handler/booking"
	clinicHandler "github.com/vetdesk/booking-api/internal/handler/clinic"
	offeringHandler "github.com/vetdesk/booking-api/internal/handler/offering"
	scheduleHandler "github.com/vetdesk/booking-api/internal/handler/schedule"
	vetHandler "github.com/vetdesk/booking-api/internal/handler/veterinarian"
	"github.com/vetdesk/booking-api/internal/middleware"
	"github.com/vetdesk/booking-api/internal/repository/postgres"
	"github.com/vetdesk/booking-api/internal/router"
	authService "github.com/vetdesk/booking-api/internal/service/auth"
	availabilityService "github.com/vetdesk/booking-api/internal/service/availability"
	bookingService "github.com/vetdesk/booking-api/internal/service/booking"
	clinicService "github.com/vetdesk/booking-api/internal/service/clinic"
	eventService "github.com/vetdesk/booking-api/internal/service/event"
	offeringService "github.com/vetdesk/booking-api/internal/service/offering"
	scheduleService "github.com/vetdesk/booking-api/internal/service/schedule"
	vetService "github.com/vetdesk/booking-api/internal/service/veterinarian"
	"github.com/vetdesk/booking-api/pkg/auth"
	"github.com/vetdesk/booking-api/pkg/logger"
	redisbroker "github.com/vetdesk/booking-api/pkg/messaging/redis"
	"github.com/vetdesk/booking-api/pkg/metrics"
	"github.com/vetdesk/booking-api/pkg/security"
	"github.com/vetdesk/booking-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("vetdesk")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	bookingRepo := postgres.NewBookingRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	vetRepo := postgres.NewVeterinarianRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	clinicRepo := postgres.NewClinicRepository(db)
	adminUserRepo := postgres.NewAdminUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Lookup cache over the slow-changing entities
	store := cache.NewStore(vetRepo, serviceRepo)

	// Services
	eventSvc := eventService.NewService(outboxRepo)

	var notifier bookingService.Notifier
	if cfg.SMTP.Host != "" {
		notifier = email.NewService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	bookingSvc := bookingService.NewService(bookingRepo, store, eventSvc, notifier)
	scheduleSvc := scheduleService.NewService(scheduleRepo)
	availabilitySvc := availabilityService.NewService(bookingRepo, store)
	vetSvc := vetService.NewService(vetRepo, eventSvc)
	offeringSvc := offeringService.NewService(serviceRepo, eventSvc)
	clinicSvc := clinicService.NewService(clinicRepo)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(adminUserRepo, jwtSvc, security.NewBcryptHasher(12))

	// Handlers
	if err := handler.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register request validations")
	}

	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	bookingH := bookingHandler.NewHandler(bookingSvc, appMetrics)
	scheduleH := scheduleHandler.NewHandler(scheduleSvc)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	vetH := vetHandler.NewHandler(vetSvc)
	offeringH := offeringHandler.NewHandler(offeringSvc)
	clinicH := clinicHandler.NewHandler(clinicSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		bookingH,
		scheduleH,
		availabilityH,
		vetH,
		offeringH,
		clinicH,
		h,
		router.Config{
			RateLimitRPS:  cfg.RateLimit.RequestsPerSecond,
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "vetdesk_http",
		},
	)
	r.Setup()

	// Change feed: outbox rows drain to Redis, the cache listens for
	// invalidations.
	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, appLogger, appMetrics)
	go outboxProcessor.Start(ctx)

	feedSubscriber := worker.NewFeedSubscriber(broker, store, appLogger)
	go func() {
		if err := feedSubscriber.Start(ctx); err != nil {
			log.Error().Err(err).Msg("change-feed subscriber stopped")
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

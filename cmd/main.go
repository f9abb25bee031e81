package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	applyScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/apply_schedule"
	cancelReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_reservation"
	createProviderHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_provider"
	createReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_reservation"
	getProviderHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_provider"
	getReservableIntervalsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_reservable_intervals"
	getReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_schedule"
	listProvidersHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/list_providers"
	updateProviderHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_provider"
	updateReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	providerRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/provider"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	durationsService "github.com/m04kA/SMC-ScheduleService/internal/service/durations"
	providersService "github.com/m04kA/SMC-ScheduleService/internal/service/providers"
	reservationsService "github.com/m04kA/SMC-ScheduleService/internal/service/reservations"
	applyScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_schedule"
	createReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
	findReservableUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/find_reservable_intervals"
	getScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_schedule"
	updateReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/locker"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// ProviderLocker блокировка записи расписания поставщика
type ProviderLocker interface {
	Lock(ctx context.Context, key string) (locker.UnlockFunc, error)
}

// EventPublisher публикатор событий с закрытием соединения
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load schedule timezone: %v", err)
	}
	envelope := cfg.Schedule.Envelope()
	log.Info("Schedule timezone=%s, business day %s-%s", location, envelope.Start, envelope.End)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка собирает метрики запросов, при выключенных метриках только прокидывает вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка поставщика: Redis или in-process
	var providerLocker ProviderLocker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		providerLocker = locker.NewRedis(redisClient, locker.RedisOptions{
			TTL:  time.Duration(cfg.Redis.LockTTLMs) * time.Millisecond,
			Wait: time.Duration(cfg.Redis.LockWaitMs) * time.Millisecond,
		})
		log.Info("Distributed provider lock enabled (redis=%s)", cfg.Redis.Addr)
	} else {
		providerLocker = locker.NewLocal()
		log.Info("Using in-process provider lock")
	}

	// Публикация событий: Kafka или заглушка
	var publisher EventPublisher
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
			log,
		)
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		publisher = events.NopPublisher{}
		log.Info("Kafka events disabled")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	providerRepository := providerRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	durationSvc := durationsService.NewService()
	providerSvc := providersService.NewService(providerRepository, log)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		providerRepository,
		slotRepository,
		txMgr,
		providerLocker,
		publisher,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем use cases
	getScheduleUseCase := getScheduleUC.NewUseCase(
		providerRepository,
		slotRepository,
		reservationRepository,
		txMgr,
		location,
		envelope,
		log,
	)

	findReservableUseCase := findReservableUC.NewUseCase(
		providerRepository,
		slotRepository,
		durationSvc,
		txMgr,
		location,
		log,
	)

	applyScheduleUseCase := applyScheduleUC.NewUseCase(
		providerRepository,
		slotRepository,
		txMgr,
		providerLocker,
		publisher,
		metricsCollector,
		location,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		providerRepository,
		slotRepository,
		reservationRepository,
		durationSvc,
		txMgr,
		providerLocker,
		publisher,
		metricsCollector,
		location,
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		providerRepository,
		slotRepository,
		reservationRepository,
		durationSvc,
		txMgr,
		providerLocker,
		publisher,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	listProviders := listProvidersHandler.NewHandler(providerSvc, log)
	createProvider := createProviderHandler.NewHandler(providerSvc, log)
	getProvider := getProviderHandler.NewHandler(providerSvc, log)
	updateProvider := updateProviderHandler.NewHandler(providerSvc, log)
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, location, log)
	applySchedule := applyScheduleHandler.NewHandler(applyScheduleUseCase, location, log)
	getReservableIntervals := getReservableIntervalsHandler.NewHandler(findReservableUseCase, location, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.RunCleanup(time.Minute, stopCh)
		api.Use(limiter.Middleware(log))
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Поставщики ---
	api.HandleFunc("/providers", listProviders.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers", createProvider.Handle).Methods(http.MethodPost)
	api.HandleFunc("/providers/{providerId}", getProvider.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}", updateProvider.Handle).Methods(http.MethodPut)

	// --- Расписание ---
	api.HandleFunc("/providers/{providerId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/schedule", applySchedule.Handle).Methods(http.MethodPost, http.MethodPut)
	api.HandleFunc("/reservable-intervals", getReservableIntervals.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи (статистика пула, очистка rate limiter)
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

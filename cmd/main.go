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

	cancelBookingHandler "github.com/appointly/booking-engine/internal/api/handlers/cancel_booking"
	createBlackoutHandler "github.com/appointly/booking-engine/internal/api/handlers/create_blackout"
	createBookingHandler "github.com/appointly/booking-engine/internal/api/handlers/create_booking"
	deleteBlackoutHandler "github.com/appointly/booking-engine/internal/api/handlers/delete_blackout"
	deleteBusinessConfigHandler "github.com/appointly/booking-engine/internal/api/handlers/delete_business_config"
	getBookingHandler "github.com/appointly/booking-engine/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/appointly/booking-engine/internal/api/handlers/get_business_bookings"
	getBusinessConfigHandler "github.com/appointly/booking-engine/internal/api/handlers/get_business_config"
	getDayScheduleHandler "github.com/appointly/booking-engine/internal/api/handlers/get_day_schedule"
	getScheduleHandler "github.com/appointly/booking-engine/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/appointly/booking-engine/internal/api/handlers/get_user_bookings"
	listBlackoutsHandler "github.com/appointly/booking-engine/internal/api/handlers/list_blackouts"
	listBusinessConfigsHandler "github.com/appointly/booking-engine/internal/api/handlers/list_business_configs"
	markReminderSentHandler "github.com/appointly/booking-engine/internal/api/handlers/mark_reminder_sent"
	updateBusinessConfigHandler "github.com/appointly/booking-engine/internal/api/handlers/update_business_config"
	updateScheduleHandler "github.com/appointly/booking-engine/internal/api/handlers/update_schedule"
	"github.com/appointly/booking-engine/internal/api/middleware"
	"github.com/appointly/booking-engine/internal/config"
	"github.com/appointly/booking-engine/internal/infra/slotlock"
	blackoutRepo "github.com/appointly/booking-engine/internal/infra/storage/blackout"
	bookingRepo "github.com/appointly/booking-engine/internal/infra/storage/booking"
	configRepo "github.com/appointly/booking-engine/internal/infra/storage/config"
	scheduleRepo "github.com/appointly/booking-engine/internal/infra/storage/schedule"
	businessServiceClient "github.com/appointly/booking-engine/internal/integrations/businessservice"
	bookingsService "github.com/appointly/booking-engine/internal/service/bookings"
	configService "github.com/appointly/booking-engine/internal/service/config"
	timetableService "github.com/appointly/booking-engine/internal/service/timetable"
	createBookingUC "github.com/appointly/booking-engine/internal/usecase/create_booking"
	getDayScheduleUC "github.com/appointly/booking-engine/internal/usecase/get_day_schedule"
	"github.com/appointly/booking-engine/pkg/dbmetrics"
	"github.com/appointly/booking-engine/pkg/logger"
	"github.com/appointly/booking-engine/pkg/metrics"
	"github.com/appointly/booking-engine/pkg/simpletxmanager"
	"github.com/appointly/booking-engine/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting booking-engine...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем клиент BusinessService
	businessClient := businessServiceClient.NewClient(
		cfg.BusinessService.URL,
		time.Duration(cfg.BusinessService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (BusinessService=%s timeout=%ds)",
		cfg.BusinessService.URL, cfg.BusinessService.Timeout)

	// Инициализируем Redis-блокировку слотов (если включена)
	var slotLocker createBookingUC.SlotLocker
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()

		slotLocker = slotlock.New(redisClient, time.Duration(cfg.Redis.LockTTLSecs)*time.Second)
		log.Info("Redis slot lock enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTLSecs)
	} else {
		log.Info("Redis slot lock disabled, relying on serializable transactions only")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		blackoutRepository *blackoutRepo.Repository
		configRepository   *configRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		blackoutRepository = blackoutRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		blackoutRepository = blackoutRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		businessClient,
		bookingsService.RealTimeProvider{},
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		businessClient,
		log,
	)
	timetableSvc := timetableService.NewService(
		scheduleRepository,
		blackoutRepository,
		businessClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		blackoutRepository,
		configRepository,
		businessClient,
		slotLocker,
		txMgr,
		nil,
		log,
	)

	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		blackoutRepository,
		configRepository,
		businessClient,
		nil,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	markReminderSent := markReminderSentHandler.NewHandler(bookingSvc, log)
	getBusinessConfig := getBusinessConfigHandler.NewHandler(configSvc, log)
	listBusinessConfigs := listBusinessConfigsHandler.NewHandler(configSvc, log)
	updateBusinessConfig := updateBusinessConfigHandler.NewHandler(configSvc, log)
	deleteBusinessConfig := deleteBusinessConfigHandler.NewHandler(configSvc, log)
	getSchedule := getScheduleHandler.NewHandler(timetableSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(timetableSvc, log)
	createBlackout := createBlackoutHandler.NewHandler(timetableSvc, log)
	deleteBlackout := deleteBlackoutHandler.NewHandler(timetableSvc, log)
	listBlackouts := listBlackoutsHandler.NewHandler(timetableSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание дня с классификацией слотов
	api.HandleFunc("/businesses/{businessId}/day-schedule",
		getDaySchedule.Handle).Methods(http.MethodGet)

	// Недельное рабочее расписание
	api.HandleFunc("/businesses/{businessId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Действующий шаг сетки слотов
	api.HandleFunc("/businesses/{businessId}/config",
		getBusinessConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Отметка отправленного напоминания
	protected.HandleFunc("/bookings/{bookingId}/reminder-sent", markReminderSent.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для менеджеров) ---
	// Список бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// Конфигурации сетки слотов
	protected.HandleFunc("/businesses/{businessId}/configs", listBusinessConfigs.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/config", updateBusinessConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/config", deleteBusinessConfig.Handle).Methods(http.MethodDelete)

	// Рабочее расписание
	protected.HandleFunc("/businesses/{businessId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Периоды блокировок
	protected.HandleFunc("/businesses/{businessId}/blackouts", createBlackout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/blackouts", listBlackouts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/blackouts/{blackoutId}", deleteBlackout.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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

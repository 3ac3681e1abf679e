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

	bookLessonHandler "github.com/m04kA/DSM-SchedulingService/internal/api/handlers/book_lesson"
	getAvailableSlotsHandler "github.com/m04kA/DSM-SchedulingService/internal/api/handlers/get_available_slots"
	getInstructorAvailabilityHandler "github.com/m04kA/DSM-SchedulingService/internal/api/handlers/get_instructor_availability"
	scheduleClassHandler "github.com/m04kA/DSM-SchedulingService/internal/api/handlers/schedule_class"
	validateClassHandler "github.com/m04kA/DSM-SchedulingService/internal/api/handlers/validate_class"
	validateLessonHandler "github.com/m04kA/DSM-SchedulingService/internal/api/handlers/validate_lesson"
	"github.com/m04kA/DSM-SchedulingService/internal/api/middleware"
	"github.com/m04kA/DSM-SchedulingService/internal/config"
	availabilityRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/DSM-SchedulingService/internal/infra/storage/catalog"
	availabilityService "github.com/m04kA/DSM-SchedulingService/internal/service/availability"
	bookLessonUC "github.com/m04kA/DSM-SchedulingService/internal/usecase/book_lesson"
	getAvailableSlotsUC "github.com/m04kA/DSM-SchedulingService/internal/usecase/get_available_slots"
	scheduleClassUC "github.com/m04kA/DSM-SchedulingService/internal/usecase/schedule_class"
	validateClassUC "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_class"
	validateLessonUC "github.com/m04kA/DSM-SchedulingService/internal/usecase/validate_lesson"
	"github.com/m04kA/DSM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DSM-SchedulingService/pkg/logger"
	"github.com/m04kA/DSM-SchedulingService/pkg/metrics"
	"github.com/m04kA/DSM-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/DSM-SchedulingService/pkg/txmanager"
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

	log.Info("Starting DSM-SchedulingService...")
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

	// Таймзона автошколы: дни недели и окна доступности считаются в ней
	location, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Warn("Failed to load timezone %q, falling back to local: %v", cfg.Business.Timezone, err)
		location = time.Local
	}
	log.Info("Business timezone: %s", location)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		catalogRepository      *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		catalogRepository,
		log,
	)

	// Инициализируем use cases
	validateLessonUseCase := validateLessonUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogRepository,
		location,
		cfg.Validation.StrictEmptyAvailability,
		log,
	)

	validateClassUseCase := validateClassUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogRepository,
		location,
		cfg.Validation.StrictEmptyAvailability,
		log,
	)

	bookLessonUseCase := bookLessonUC.NewUseCase(
		validateLessonUseCase,
		bookingRepository,
		catalogRepository,
		txMgr,
		location,
		log,
	)

	scheduleClassUseCase := scheduleClassUC.NewUseCase(
		validateClassUseCase,
		bookingRepository,
		txMgr,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		catalogRepository,
		location,
		log,
	)

	// Инициализируем handlers
	validateLesson := validateLessonHandler.NewHandler(validateLessonUseCase, log)
	validateClass := validateClassHandler.NewHandler(validateClassUseCase, log)
	bookLesson := bookLessonHandler.NewHandler(bookLessonUseCase, log)
	scheduleClass := scheduleClassHandler.NewHandler(scheduleClassUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getInstructorAvailability := getInstructorAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Доступные слоты инструктора для практического занятия
	api.HandleFunc("/instructors/{instructorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание доступности инструктора
	api.HandleFunc("/instructors/{instructorId}/availability",
		getInstructorAvailability.Handle).Methods(http.MethodGet)

	// Предварительная валидация занятий (drafts из админки)
	api.HandleFunc("/validate/lessons", validateLesson.Handle).Methods(http.MethodPost)
	api.HandleFunc("/validate/classes", validateClass.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание практического занятия
	protected.HandleFunc("/lessons", bookLesson.Handle).Methods(http.MethodPost)

	// Создание теоретического занятия
	protected.HandleFunc("/classes", scheduleClass.Handle).Methods(http.MethodPost)

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

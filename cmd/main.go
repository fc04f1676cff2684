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

	cancelAppointmentHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/create_appointment"
	deleteOverrideHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/delete_override"
	getAppointmentHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/get_available_slots"
	getUserAppointmentsHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/get_user_appointments"
	getVetAppointmentsHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/get_vet_appointments"
	rescheduleAppointmentHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/reschedule_appointment"
	saveAvailabilityHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/save_availability"
	saveOverrideHandler "github.com/m04kA/PCM-ScheduleService/internal/api/handlers/save_override"
	"github.com/m04kA/PCM-ScheduleService/internal/api/middleware"
	"github.com/m04kA/PCM-ScheduleService/internal/config"
	appointmentRepo "github.com/m04kA/PCM-ScheduleService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/PCM-ScheduleService/internal/infra/storage/availability"
	userServiceClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/userservice"
	vetServiceClient "github.com/m04kA/PCM-ScheduleService/internal/integrations/vetservice"
	appointmentsService "github.com/m04kA/PCM-ScheduleService/internal/service/appointments"
	availabilityService "github.com/m04kA/PCM-ScheduleService/internal/service/availability"
	createAppointmentUC "github.com/m04kA/PCM-ScheduleService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/PCM-ScheduleService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/PCM-ScheduleService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/PCM-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/PCM-ScheduleService/pkg/logger"
	"github.com/m04kA/PCM-ScheduleService/pkg/metrics"
	"github.com/m04kA/PCM-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/PCM-ScheduleService/pkg/txmanager"
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

	log.Info("Starting PCM-ScheduleService...")
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

	// Инициализируем интеграционных клиентов
	vetClient := vetServiceClient.NewClient(
		cfg.VetService.URL,
		time.Duration(cfg.VetService.Timeout)*time.Second,
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VetService=%s timeout=%ds, UserService=%s timeout=%ds)",
		cfg.VetService.URL, cfg.VetService.Timeout, cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
	)

	// Интерфейс transaction manager-а, общий для сервисов и usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		vetClient,
		txMgr,
		log,
		availabilityService.RealTimeProvider{},
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		vetClient,
		log,
		appointmentsService.RealTimeProvider{},
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		vetClient,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		vetClient,
		userClient,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		vetClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	saveAvailability := saveAvailabilityHandler.NewHandler(availabilitySvc, log)
	saveOverride := saveOverrideHandler.NewHandler(availabilitySvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(availabilitySvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getVetAppointments := getVetAppointmentsHandler.NewHandler(appointmentsSvc, log)

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

	// Доступные слоты ветеринара
	api.HandleFunc("/vets/{vetId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание ветеринара с переопределениями
	api.HandleFunc("/vets/{vetId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание (для менеджеров клиники) ---
	// Полная замена недельного расписания
	protected.HandleFunc("/vets/{vetId}/availability", saveAvailability.Handle).Methods(http.MethodPut)

	// Переопределение расписания на дату
	protected.HandleFunc("/vets/{vetId}/availability/overrides/{date}", saveOverride.Handle).Methods(http.MethodPut)

	// Удаление переопределения (дата возвращается под недельное правило)
	protected.HandleFunc("/vets/{vetId}/availability/overrides/{date}", deleteOverride.Handle).Methods(http.MethodDelete)

	// --- Приёмы ---
	// Создание приёма
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение приёма по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена приёма
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Перенос приёма на новый слот
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// История приёмов пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление клиникой (для менеджеров) ---
	// Список приёмов ветеринара
	protected.HandleFunc("/vets/{vetId}/appointments", getVetAppointments.Handle).Methods(http.MethodGet)

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

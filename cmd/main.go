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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bulkBookingsHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/bulk_bookings"
	checkInHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/check_out"
	createBookingHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/create_booking"
	extendBookingHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/extend_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/list_bookings"
	listRoomsHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/list_rooms"
	updateBookingStatusHandler "github.com/m04kA/SMC-MeetingRoomService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-MeetingRoomService/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingRoomService/internal/config"
	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/events"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/sheets"
	bookingRepo "github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage/room"
	"github.com/m04kA/SMC-MeetingRoomService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-MeetingRoomService/internal/service/bookings"
	"github.com/m04kA/SMC-MeetingRoomService/internal/service/conflicts"
	roomsService "github.com/m04kA/SMC-MeetingRoomService/internal/service/rooms"
	bulkBookingsUC "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/bulk_bookings"
	createBookingUC "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/get_available_slots"
	occupancyUC "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/occupancy"
	"github.com/m04kA/SMC-MeetingRoomService/migrations"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/logger"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/metrics"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/txmanager"
)

// bookingStore общий набор операций хранилища бронирований для обоих backend'ов
type bookingStore interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	Patch(ctx context.Context, id string, patch domain.BookingPatch) error
}

type roomStore interface {
	List(ctx context.Context) ([]*domain.Room, error)
	GetByID(ctx context.Context, id string) (*domain.Room, error)
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent, booking *domain.Booking)
	Close() error
}

// storage выбранный backend хранилища
type storage struct {
	bookings bookingStore
	rooms    roomStore
	tx       txManager
	close    func()
}

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

	log.Info("Starting SMC-MeetingRoomService...")
	log.Info("Configuration loaded from config.toml (backend=%s)", cfg.Storage.Backend)

	policy, err := cfg.BookingPolicy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Публикация событий
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, policy.Location, log)
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем сервисы
	checker := conflicts.NewChecker(store.bookings, policy, log)
	bookingSvc := bookingsService.NewService(store.bookings, publisher, metricsCollector, policy, log)
	roomSvc := roomsService.NewService(store.rooms, store.bookings, policy, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.rooms,
		checker,
		store.tx,
		publisher,
		metricsCollector,
		policy,
		log,
	)

	occupancyUseCase := occupancyUC.NewUseCase(
		store.bookings,
		checker,
		store.tx,
		publisher,
		metricsCollector,
		policy,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.bookings,
		store.rooms,
		checker,
		policy,
		log,
	)

	bulkBookingsUseCase := bulkBookingsUC.NewUseCase(
		createBookingUseCase,
		bookingSvc,
		getAvailableSlotsUseCase,
		store.bookings,
		store.rooms,
		checker,
		store.tx,
		publisher,
		metricsCollector,
		policy,
		log,
	)

	// Фоновый обход: автоматический check-out и неявки
	var sweeper *scheduler.Sweeper
	if cfg.Scheduler.Enabled {
		sweeper = scheduler.NewSweeper(
			store.bookings,
			occupancyUseCase,
			bookingSvc,
			policy,
			time.Duration(cfg.Scheduler.IntervalSeconds)*time.Second,
			log,
		)
		sweeper.Start(ctx)
	}

	// Инициализируем handlers
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	checkIn := checkInHandler.NewHandler(occupancyUseCase, log)
	checkOut := checkOutHandler.NewHandler(occupancyUseCase, log)
	extendBooking := extendBookingHandler.NewHandler(occupancyUseCase, log)
	bulkBookings := bulkBookingsHandler.NewHandler(bulkBookingsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ограничение частоты изменяющих запросов
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, 10*time.Minute)
		go limiter.RunCleanup(time.Minute, ctx.Done())
		api.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Переговорные ---
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Массовые операции (до /bookings/{bookingId}, иначе "bulk" совпадёт с ID) ---
	api.HandleFunc("/bookings/bulk", bulkBookings.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/bookings/bulk", bulkBookings.HandleCancel).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/bulk", bulkBookings.HandleUpdate).Methods(http.MethodPatch)

	// --- Бронирования ---
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Заселение ---
	api.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/check-out", checkOut.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/extend", extendBooking.Handle).Methods(http.MethodPost)

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

	if sweeper != nil {
		sweeper.Stop()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	cancel()

	log.Info("Server stopped gracefully")
}

// openStorage подключает выбранный в конфигурации backend
func openStorage(
	ctx context.Context,
	cfg *config.Config,
	metricsCollector *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (*storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if err := migrations.Up(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Database schema is up to date")

		// Запросы замеряются всегда; при выключенных метриках обёртка ничего не пишет
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

		return &storage{
			bookings: bookingRepo.NewRepository(wrappedDB),
			rooms:    roomRepo.NewRepository(wrappedDB),
			tx:       txmanager.NewTransactionManager(wrappedDB),
			close:    func() { db.Close() },
		}, nil

	case config.BackendSheets:
		client, err := sheets.NewClient(ctx, sheets.Credentials{
			SpreadsheetID:       cfg.Sheets.SpreadsheetID,
			ServiceAccountEmail: cfg.Sheets.ServiceAccountEmail,
			PrivateKey:          cfg.Sheets.PrivateKey,
		}, time.Duration(cfg.Sheets.Timeout)*time.Second, metricsCollector)
		if err != nil {
			return nil, err
		}
		log.Info("Google Sheets client initialized (bookings=%s, rooms=%s)",
			cfg.Sheets.BookingsSheet, cfg.Sheets.RoomsSheet)

		// Sheets не поддерживает транзакции: проверка и запись сериализуются внутри процесса
		return &storage{
			bookings: sheets.NewBookingRepository(client, cfg.Sheets.BookingsSheet),
			rooms:    sheets.NewRoomRepository(client, cfg.Sheets.RoomsSheet),
			tx:       txmanager.NewLocal(),
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.Storage.Backend)
	}
}

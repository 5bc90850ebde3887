package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// Хранилища записей
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Sheets    SheetsConfig    `toml:"sheets"`
	Booking   BookingConfig   `toml:"booking"`
	Events    EventsConfig    `toml:"events"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения к postgres
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type SheetsConfig struct {
	SpreadsheetID       string `toml:"spreadsheet_id"`
	ServiceAccountEmail string `toml:"service_account_email"`
	PrivateKey          string `toml:"private_key"`
	BookingsSheet       string `toml:"bookings_sheet"`
	RoomsSheet          string `toml:"rooms_sheet"`
	Timeout             int    `toml:"timeout"`
}

type BookingConfig struct {
	AdminOverrideCode          string `toml:"admin_override_code"`
	CheckInWindowMinutes       int    `toml:"check_in_window_minutes"`
	StaleOccupancyGraceMinutes int    `toml:"stale_occupancy_grace_minutes"`
	NoShowAfterMinutes         int    `toml:"no_show_after_minutes"`
	Timezone                   string `toml:"timezone"`
}

type EventsConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type SchedulerConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalSeconds int  `toml:"interval_seconds"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load читает .env (если есть), затем toml-файл, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ADMIN_OVERRIDE_CODE"); v != "" {
		c.Booking.AdminOverrideCode = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"); v != "" {
		c.Sheets.ServiceAccountEmail = v
	}
	if v := os.Getenv("GOOGLE_PRIVATE_KEY"); v != "" {
		c.Sheets.PrivateKey = v
	}
	if v := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	// ключ из .env обычно хранится в одну строку
	c.Sheets.PrivateKey = strings.ReplaceAll(c.Sheets.PrivateKey, `\n`, "\n")
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "meeting_room_service")

	setString(&c.Storage.Backend, BackendSheets)

	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.Port, 5432)
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Sheets.BookingsSheet, "bookings")
	setString(&c.Sheets.RoomsSheet, "rooms")
	setInt(&c.Sheets.Timeout, 10)

	setString(&c.Booking.AdminOverrideCode, domain.DefaultAdminOverrideCode)
	setInt(&c.Booking.CheckInWindowMinutes, domain.DefaultCheckInWindowMinutes)
	setInt(&c.Booking.StaleOccupancyGraceMinutes, domain.DefaultStaleOccupancyGraceMinutes)
	setInt(&c.Booking.NoShowAfterMinutes, domain.DefaultNoShowAfterMinutes)
	setString(&c.Booking.Timezone, domain.DefaultTimezone)

	setString(&c.Events.Topic, "meeting-room-bookings")
	setInt(&c.Scheduler.IntervalSeconds, 60)

	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	setInt(&c.RateLimit.Burst, 10)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSheets:
		if c.Sheets.SpreadsheetID == "" || c.Sheets.ServiceAccountEmail == "" || c.Sheets.PrivateKey == "" {
			return fmt.Errorf("%w: sheets backend requires spreadsheet_id, service_account_email and private_key", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: postgres backend requires database.host and database.dbname", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	if !domain.IsValidEmployeeID(c.Booking.AdminOverrideCode) {
		return fmt.Errorf("%w: admin_override_code must be 7 digits", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("%w: events enabled without brokers", ErrInvalidConfig)
	}
	return nil
}

// BookingPolicy собирает политику жизненного цикла бронирований
func (c *Config) BookingPolicy() (domain.BookingPolicy, error) {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	return domain.BookingPolicy{
		AdminOverrideCode:          c.Booking.AdminOverrideCode,
		CheckInWindowMinutes:       c.Booking.CheckInWindowMinutes,
		StaleOccupancyGraceMinutes: c.Booking.StaleOccupancyGraceMinutes,
		NoShowAfterMinutes:         c.Booking.NoShowAfterMinutes,
		Location:                   loc,
	}, nil
}

func setInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

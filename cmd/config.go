package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"freight/internal/adapters/out/memory"
	"freight/internal/jobs"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	LockScopeReservation = "reservation"
	LockScopeDriver      = "driver"
)

type Config struct {
	HTTPPort   string
	Storage    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	// ScheduleLockScope is "reservation" (row lock only) or "driver" (row lock plus a
	// Redis lock per driver).
	ScheduleLockScope      string
	ApprovalLockTimeout    time.Duration
	ApprovalScheduleBuffer time.Duration
	PendingExpirySchedule  string
	// BusinessLocation is the zone in which reservation dates and start times are
	// written. Pending expiry compares them against the wall clock of this zone.
	BusinessLocation *time.Location
	LogLevel         string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv after the
// .env file has been loaded. Every invalid value is reported.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	config := Config{
		HTTPPort:              get("HTTP_PORT", "8080"),
		Storage:               strings.ToLower(get("STORAGE", StoragePostgres)),
		DBHost:                get("DB_HOST", "localhost"),
		DBPort:                get("DB_PORT", "5432"),
		DBUser:                get("DB_USER", ""),
		DBPassword:            get("DB_PASSWORD", ""),
		DBName:                get("DB_NAME", ""),
		DBSslMode:             get("DB_SSLMODE", "disable"),
		RedisAddr:             get("REDIS_ADDR", ""),
		RedisPassword:         get("REDIS_PASSWORD", ""),
		ScheduleLockScope:     strings.ToLower(get("SCHEDULE_LOCK_SCOPE", LockScopeReservation)),
		PendingExpirySchedule: get("PENDING_EXPIRY_SCHEDULE", jobs.DefaultPendingExpirySchedule),
		LogLevel:              get("LOG_LEVEL", "info"),
	}

	var lockErr, bufferErr, zoneErr error
	config.ApprovalLockTimeout, lockErr = parseDuration("APPROVAL_LOCK_TIMEOUT", get("APPROVAL_LOCK_TIMEOUT", ""), memory.DefaultLockWait)
	config.ApprovalScheduleBuffer, bufferErr = parseDuration("APPROVAL_SCHEDULE_BUFFER", get("APPROVAL_SCHEDULE_BUFFER", ""), 0)
	config.BusinessLocation, zoneErr = time.LoadLocation(get("BUSINESS_TIMEZONE", "UTC"))
	if zoneErr != nil {
		config.BusinessLocation = time.UTC
		zoneErr = fmt.Errorf("BUSINESS_TIMEZONE: %w", zoneErr)
	}

	return config, errors.Join(lockErr, bufferErr, zoneErr, config.validate())
}

func (c Config) validate() error {
	var problems []error

	switch c.Storage {
	case StoragePostgres:
		if c.DBUser == "" || c.DBName == "" {
			problems = append(problems, errors.New("DB_USER and DB_NAME are required for postgres storage"))
		}
	case StorageMemory:
	default:
		problems = append(problems, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}

	switch c.ScheduleLockScope {
	case LockScopeReservation:
	case LockScopeDriver:
		if c.RedisAddr == "" {
			problems = append(problems, errors.New("REDIS_ADDR is required for driver lock scope"))
		}
	default:
		problems = append(problems, fmt.Errorf("SCHEDULE_LOCK_SCOPE must be %q or %q, got %q",
			LockScopeReservation, LockScopeDriver, c.ScheduleLockScope))
	}

	if c.ApprovalLockTimeout < time.Millisecond {
		problems = append(problems, errors.New("APPROVAL_LOCK_TIMEOUT must be at least 1ms"))
	}
	if c.ApprovalScheduleBuffer < 0 {
		problems = append(problems, errors.New("APPROVAL_SCHEDULE_BUFFER must not be negative"))
	}

	return errors.Join(problems...)
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func parseDuration(key, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

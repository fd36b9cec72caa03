package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	CORS     CORSConfig
	Portal   PortalConfig
	Session  SessionConfig
	Snapshot SnapshotConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	SessionExpiration time.Duration
	StreamExpiration  time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// PortalConfig locates the attendance portal endpoints
type PortalConfig struct {
	BaseURL      string
	LoginPath    string
	CalendarPath string
	Timeout      time.Duration
}

// SessionConfig selects where sessions live and how often expired ones are swept
type SessionConfig struct {
	Store           string
	CleanupInterval time.Duration
}

// SnapshotConfig controls the debug copies of fetched calendar pages
type SnapshotConfig struct {
	Enabled bool
	Path    string
}

type ExportConfig struct {
	Locale      string
	PDFFontPath string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dbMaxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "10"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hilan_calculator"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Jerusalem"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	// Portal configuration
	config.Portal, err = portalFromEnv()
	if err != nil {
		return nil, err
	}

	// JWT configuration
	sessionTTL, err := getEnvDuration("SESSION_TTL", "2h")
	if err != nil {
		return nil, err
	}
	streamTTL, err := getEnvDuration("STREAM_TOKEN_TTL", "5m")
	if err != nil {
		return nil, err
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		SessionExpiration: sessionTTL,
		StreamExpiration:  streamTTL,
	}

	// Session configuration
	cleanupInterval, err := getEnvDuration("SESSION_CLEANUP_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}

	config.Session = SessionConfig{
		Store:           strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		CleanupInterval: cleanupInterval,
	}

	snapshotEnabled, err := strconv.ParseBool(getEnv("SNAPSHOT_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_ENABLED: %w", err)
	}

	config.Snapshot = SnapshotConfig{
		Enabled: snapshotEnabled,
		Path:    getEnv("SNAPSHOT_PATH", "./snapshots"),
	}

	config.Export = ExportConfig{
		Locale:      getEnv("EXPORT_LOCALE", "he"),
		PDFFontPath: getEnv("PDF_FONT_PATH", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadPortal reads only the portal settings, for tools that talk to the
// portal without running the server.
func LoadPortal() (PortalConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return PortalConfig{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return portalFromEnv()
}

func portalFromEnv() (PortalConfig, error) {
	timeout, err := getEnvDuration("PORTAL_TIMEOUT", "30s")
	if err != nil {
		return PortalConfig{}, err
	}

	return PortalConfig{
		BaseURL:      getEnv("PORTAL_BASE_URL", "https://motorola.net.hilan.co.il"),
		LoginPath:    getEnv("PORTAL_LOGIN_PATH", "/HilanCenter/Public/api/LoginApi/LoginRequest"),
		CalendarPath: getEnv("PORTAL_CALENDAR_PATH", "/Hilannetv2/Attendance/calendarpage.aspx?isPersonalFileMode=true&ReportPageMode=2"),
		Timeout:      timeout,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.SessionExpiration <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.JWT.StreamExpiration <= 0 {
		return fmt.Errorf("STREAM_TOKEN_TTL must be positive")
	}

	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when SESSION_STORE=postgres")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be one of: %s, %s", SessionStoreMemory, SessionStorePostgres)
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive")
	}

	u, err := url.Parse(c.Portal.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PORTAL_BASE_URL must be an absolute URL")
	}
	if c.Portal.Timeout <= 0 {
		return fmt.Errorf("PORTAL_TIMEOUT must be positive")
	}

	if c.Snapshot.Enabled && c.Snapshot.Path == "" {
		return fmt.Errorf("SNAPSHOT_PATH is required when SNAPSHOT_ENABLED=true")
	}
	return nil
}

// Location resolves App.Timezone, falling back to the local zone when the
// tz database does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func getEnvDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Line     LineConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Site     SiteConfig
	Storage  StorageConfig
	Report   ReportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
	Version     string
}

// LineConfig covers both LINE Login (LIFF) and the Messaging API channel.
type LineConfig struct {
	ChannelID           string
	ChannelSecret       string
	RedirectURL         string
	Scopes              []string
	MessagingToken      string
	AdminGroupID        string
	MessagingAPIBase    string
	NotifyEmployees     bool
	NotificationTimeout time.Duration
}

// AdminConfig is the bootstrap administrator that exists before any employee is registered.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// SiteConfig is the workplace used for distance checks at check-in.
// A zero RadiusMeters disables the radius check.
type SiteConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

type ReportConfig struct {
	DailyHour int
	Fanout    int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "line_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		Prefix:   getEnv("REDIS_PREFIX", "attendance"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Bangkok"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Version:     getEnv("APP_VERSION", "v1.0.0"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// LINE configuration
	notifyTimeout, err := time.ParseDuration(getEnv("LINE_NOTIFICATION_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LINE_NOTIFICATION_TIMEOUT: %w", err)
	}
	notifyEmployees, err := strconv.ParseBool(getEnv("LINE_NOTIFY_EMPLOYEES", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid LINE_NOTIFY_EMPLOYEES: %w", err)
	}

	config.Line = LineConfig{
		ChannelID:           getEnv("LINE_CHANNEL_ID", ""),
		ChannelSecret:       getEnv("LINE_CHANNEL_SECRET", ""),
		RedirectURL:         getEnv("LINE_REDIRECT_URL", ""),
		Scopes:              getEnvSlice("LINE_SCOPES", "openid,profile"),
		MessagingToken:      getEnv("LINE_MESSAGING_TOKEN", ""),
		AdminGroupID:        getEnv("LINE_ADMIN_GROUP_ID", ""),
		MessagingAPIBase:    getEnv("LINE_MESSAGING_API_BASE", "https://api.line.me"),
		NotifyEmployees:     notifyEmployees,
		NotificationTimeout: notifyTimeout,
	}

	config.Admin = AdminConfig{
		Username:     getEnv("ADMIN_USERNAME", ""),
		PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Site configuration
	lat, err := getEnvFloat("SITE_LATITUDE", "0")
	if err != nil {
		return nil, err
	}
	lng, err := getEnvFloat("SITE_LONGITUDE", "0")
	if err != nil {
		return nil, err
	}
	radius, err := getEnvFloat("SITE_RADIUS_METERS", "0")
	if err != nil {
		return nil, err
	}
	config.Site = SiteConfig{Latitude: lat, Longitude: lng, RadiusMeters: radius}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "/uploads"),
	}

	// Report configuration
	dailyHour, err := strconv.Atoi(getEnv("REPORT_DAILY_HOUR", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_DAILY_HOUR: %w", err)
	}
	fanout, err := strconv.Atoi(getEnv("REPORT_FANOUT", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_FANOUT: %w", err)
	}
	config.Report = ReportConfig{DailyHour: dailyHour, Fanout: fanout}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Password == "" {
		errs = append(errs, fmt.Errorf("DB_PASSWORD is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, fmt.Errorf("JWT_SECRET_KEY is required"))
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		errs = append(errs, fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME is invalid: %w", err))
	}
	if c.Line.ChannelID == "" {
		errs = append(errs, fmt.Errorf("LINE_CHANNEL_ID is required"))
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE is invalid: %w", err))
	}
	if c.Report.DailyHour < 0 || c.Report.DailyHour > 23 {
		errs = append(errs, fmt.Errorf("REPORT_DAILY_HOUR must be between 0 and 23"))
	}
	if c.Report.Fanout < 1 {
		errs = append(errs, fmt.Errorf("REPORT_FANOUT must be at least 1"))
	}
	// Each report worker holds a connection; the API needs at least one more.
	if c.Database.MaxConns <= c.Report.Fanout {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be greater than REPORT_FANOUT"))
	}
	if c.Site.RadiusMeters < 0 {
		errs = append(errs, fmt.Errorf("SITE_RADIUS_METERS must not be negative"))
	}
	if (c.Admin.Username == "") != (c.Admin.PasswordHash == "") {
		errs = append(errs, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD_HASH must be set together"))
	}

	return errors.Join(errs...)
}

// Location returns the organisation time zone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key, fallback string) (float64, error) {
	v, err := strconv.ParseFloat(getEnv(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}

package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port      string
	AppEnv    string // development | production | test
	LogLevel  string
	LogFormat string // json | text

	DBDriver    string // postgres | sqlite
	DatabaseURL string
	SQLitePath  string
	RedisURL    string // optional; in-memory fallbacks are used when empty

	JWTSecret string
	JWTTTL    time.Duration

	FrontendURL      string // used to build password reset links
	ResendAPIKey     string
	EmailSender      string
	EmailFromName    string
	MailQueueSize    int
	MailWorkers      int
	PasswordResetTTL time.Duration

	CORSAllowedOrigins []string

	RateLimitRPS   float64 // general API bucket, requests per second per IP
	RateLimitBurst int

	LoginRateLimitWindow      time.Duration
	LoginRateLimitMaxIP       int
	LoginRateLimitMaxEmail    int
	LoginRateLimitEmailWindow time.Duration
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:      getEnv("PORT", "4000"),
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "focototal.db"),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getEnvDuration("JWT_TTL", 240*time.Hour), // 10 days

		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		EmailSender:      getEnv("EMAIL_SENDER", "no-reply@focototal.app"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "FocoTotal"),
		MailQueueSize:    getEnvInt("MAIL_QUEUE_SIZE", 100),
		MailWorkers:      getEnvInt("MAIL_WORKERS", 2),
		PasswordResetTTL: getEnvDuration("PASSWORD_RESET_TTL", time.Hour),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		LoginRateLimitWindow:      getEnvDuration("LOGIN_RATE_LIMIT_WINDOW", 15*time.Minute),
		LoginRateLimitMaxIP:       getEnvInt("LOGIN_RATE_LIMIT_MAX_IP", 5),
		LoginRateLimitMaxEmail:    getEnvInt("LOGIN_RATE_LIMIT_MAX_EMAIL", 3),
		LoginRateLimitEmailWindow: getEnvDuration("LOGIN_RATE_LIMIT_EMAIL_WINDOW", time.Hour),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DB_DRIVER=postgres"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when DB_DRIVER=sqlite"))
		}
	default:
		errs = append(errs, errors.New("DB_DRIVER must be postgres or sqlite"))
	}

	if c.JWTSecret == "" && c.IsProduction() {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.PasswordResetTTL <= 0 {
		errs = append(errs, errors.New("PASSWORD_RESET_TTL must be positive"))
	}
	if c.MailWorkers < 1 {
		errs = append(errs, errors.New("MAIL_WORKERS must be at least 1"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

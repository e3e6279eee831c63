package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetFloatEnv returns a float environment variable or a default value.
func GetFloatEnv(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// DBConfig holds database connection and pool settings.
type DBConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	Migrate         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode
}

// URL builds the postgres URL form used by the migration runner.
func (c DBConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port +
		"/" + c.Name + "?sslmode=" + c.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
	// FlushOnStart empties the cache when the server boots.
	FlushOnStart bool
}

// Enabled reports whether a Redis host is configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type HTTPConfig struct {
	Port            string
	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Config is a snapshot of every setting the server needs.
type Config struct {
	HTTP       HTTPConfig
	DB         DBConfig
	Redis      RedisConfig
	AMQP       AMQPConfig
	BcryptCost int
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:            GetEnv("PORT", "3000"),
			CORSOrigins:     GetEnv("CORS_ORIGINS", "http://localhost:5173"),
			RateLimitMax:    GetIntEnv("RATE_LIMIT_MAX", 5),
			RateLimitWindow: GetDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		DB: DBConfig{
			Driver:          strings.ToLower(GetEnv("DB_DRIVER", "postgres")),
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "finances"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			SQLitePath:      GetEnv("SQLITE_PATH", "finances.db"),
			Migrate:         strings.ToLower(GetEnv("DB_MIGRATE", "auto")),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:         GetEnv("REDIS_HOST", ""),
			Port:         GetEnv("REDIS_PORT", "6379"),
			Password:     GetEnv("REDIS_PASSWORD", ""),
			DB:           GetIntEnv("REDIS_DB", 0),
			TTL:          GetDurationEnv("CACHE_TTL", 10*time.Minute),
			FlushOnStart: GetBoolEnv("CACHE_FLUSH_ON_START", false),
		},
		AMQP: AMQPConfig{
			URL:      GetEnv("AMQP_URL", ""),
			Exchange: GetEnv("AMQP_EXCHANGE", "finances"),
			Queue:    GetEnv("AMQP_QUEUE", "transfers"),
		},
		BcryptCost: GetIntEnv("BCRYPT_COST", 10),
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Events   EventsConfig
	Search   SearchConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig - кеш сводной статистики
type CacheConfig struct {
	StatsTTL time.Duration
}

// EventsConfig - публикация событий жизненного цикла локаций
type EventsConfig struct {
	Enabled bool
	Stream  string
}

// SearchConfig - ограничения поисковых запросов
type SearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxRadiusKm     float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	BatchSize         int
	MaxRetries        int
	// MetricsAddr - адрес /metrics воркера; пусто - не поднимать
	MetricsAddr     string
	ShutdownTimeout time.Duration
	// PendingIdle / PendingInterval - повторное чтение сообщений без ACK
	PendingIdle     time.Duration
	PendingInterval time.Duration
}

func Load() (*Config, error) {
	// .env опционален: в контейнере переменные приходят из окружения
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("API_HOST"),
			Port:         v.GetInt("API_PORT"),
			Env:          v.GetString("API_ENV"),
			ReadTimeout:  time.Duration(v.GetInt("API_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("API_WRITE_TIMEOUT")) * time.Second,
			IdleTimeout:  time.Duration(v.GetInt("API_IDLE_TIMEOUT")) * time.Second,
			CORSOrigins:  v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			StatsTTL: time.Duration(v.GetInt("CACHE_STATS_TTL")) * time.Second,
		},
		Events: EventsConfig{
			Enabled: v.GetBool("EVENTS_ENABLED"),
			Stream:  v.GetString("EVENTS_STREAM"),
		},
		Search: SearchConfig{
			DefaultPageSize: v.GetInt("SEARCH_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     v.GetInt("SEARCH_MAX_PAGE_SIZE"),
			MaxRadiusKm:     v.GetFloat64("SEARCH_MAX_RADIUS_KM"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			MetricsAddr:       v.GetString("WORKER_METRICS_ADDR"),
			ShutdownTimeout:   time.Duration(v.GetInt("WORKER_SHUTDOWN_TIMEOUT")) * time.Second,
			PendingIdle:       time.Duration(v.GetInt("WORKER_PENDING_IDLE")) * time.Second,
			PendingInterval:   time.Duration(v.GetInt("WORKER_PENDING_INTERVAL")) * time.Second,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_READ_TIMEOUT", 10)
	v.SetDefault("API_WRITE_TIMEOUT", 10)
	v.SetDefault("API_IDLE_TIMEOUT", 60)
	v.SetDefault("API_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("CACHE_STATS_TTL", 300)

	v.SetDefault("EVENTS_ENABLED", true)
	v.SetDefault("EVENTS_STREAM", "stream:location:changes")

	v.SetDefault("SEARCH_DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("SEARCH_MAX_PAGE_SIZE", 100)
	v.SetDefault("SEARCH_MAX_RADIUS_KM", 100)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_CONSUMER_GROUP", "location-audit-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 1000)
	v.SetDefault("WORKER_BATCH_SIZE", 20)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_METRICS_ADDR", ":9091")
	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("WORKER_PENDING_IDLE", 60)
	v.SetDefault("WORKER_PENDING_INTERVAL", 30)
}

func (c *Config) validate() error {
	if c.Database.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Search.DefaultPageSize <= 0 || c.Search.MaxPageSize < c.Search.DefaultPageSize {
		return fmt.Errorf("search page sizes are inconsistent: default=%d max=%d",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if c.Search.MaxRadiusKm <= 0 {
		return fmt.Errorf("SEARCH_MAX_RADIUS_KM must be positive")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

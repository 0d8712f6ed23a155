package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Geocoder GeocoderConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	AllowedOrigins string
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
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	UserCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

// GeocoderConfig - настройки внешнего геокодера (OpenCage API)
type GeocoderConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout int // seconds
	Language       string
}

// Enabled - геокодер включён только при наличии ключа
func (g GeocoderConfig) Enabled() bool {
	return g.APIKey != ""
}

func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного env-файла и переменных окружения.
// Отсутствие файла не является ошибкой: значения берутся из окружения.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("API_HOST"),
			Port:           v.GetInt("API_PORT"),
			Env:            v.GetString("API_ENV"),
			AllowedOrigins: v.GetString("API_ALLOWED_ORIGINS"),
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
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			UserCacheTTL: time.Duration(v.GetInt("USER_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
		},
		Geocoder: GeocoderConfig{
			BaseURL:        v.GetString("GEOCODER_BASE_URL"),
			APIKey:         v.GetString("GEOCODER_API_KEY"),
			RequestTimeout: v.GetInt("GEOCODER_REQUEST_TIMEOUT"),
			Language:       v.GetString("GEOCODER_LANGUAGE"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.AllowedOrigins == "" {
		cfg.Server.AllowedOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Cache.UserCacheTTL == 0 {
		cfg.Cache.UserCacheTTL = 5 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "region-cleanup-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://api.opencagedata.com"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

// Addr - адрес Redis в формате host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

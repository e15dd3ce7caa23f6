package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Overpass  OverpassConfig
	Nominatim NominatimConfig
	Validate  ValidateConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
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

type CacheConfig struct {
	BoundaryCacheTTL time.Duration
	StatsCacheTTL    time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

type OverpassConfig struct {
	URL          string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

type NominatimConfig struct {
	URL           string
	UserAgent     string
	MaxDistanceKm float64
	RequestPacing time.Duration
}

type ValidateConfig struct {
	StitchTolerance float64
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			BoundaryCacheTTL: time.Duration(viper.GetInt("BOUNDARY_CACHE_TTL")) * time.Second,
			StatsCacheTTL:    time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Overpass: OverpassConfig{
			URL:          viper.GetString("OVERPASS_URL"),
			Timeout:      time.Duration(viper.GetInt("OVERPASS_TIMEOUT")) * time.Second,
			MaxRetries:   viper.GetInt("OVERPASS_MAX_RETRIES"),
			RetryBackoff: time.Duration(viper.GetInt("OVERPASS_RETRY_BACKOFF")) * time.Second,
		},
		Nominatim: NominatimConfig{
			URL:           viper.GetString("NOMINATIM_URL"),
			UserAgent:     viper.GetString("NOMINATIM_USER_AGENT"),
			MaxDistanceKm: viper.GetFloat64("NOMINATIM_MAX_DISTANCE_KM"),
			RequestPacing: time.Duration(viper.GetInt("NOMINATIM_REQUEST_PACING")) * time.Millisecond,
		},
		Validate: ValidateConfig{
			StitchTolerance: viper.GetFloat64("STITCH_TOLERANCE"),
		},
	}

	// Set default values if not provided
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "boundary-download-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Overpass.URL == "" {
		cfg.Overpass.URL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.Timeout == 0 {
		cfg.Overpass.Timeout = 180 * time.Second
	}
	if cfg.Overpass.MaxRetries == 0 {
		cfg.Overpass.MaxRetries = 3
	}
	if cfg.Overpass.RetryBackoff == 0 {
		cfg.Overpass.RetryBackoff = 5 * time.Second
	}
	if cfg.Nominatim.URL == "" {
		cfg.Nominatim.URL = "https://nominatim.openstreetmap.org/search"
	}
	if cfg.Nominatim.UserAgent == "" {
		cfg.Nominatim.UserAgent = "city-boundary-service/1.0"
	}
	if cfg.Nominatim.MaxDistanceKm == 0 {
		cfg.Nominatim.MaxDistanceKm = 100
	}
	if cfg.Nominatim.RequestPacing == 0 {
		cfg.Nominatim.RequestPacing = 1000 * time.Millisecond
	}
	if cfg.Validate.StitchTolerance == 0 {
		cfg.Validate.StitchTolerance = 0.0001
	}
	if cfg.Cache.BoundaryCacheTTL == 0 {
		cfg.Cache.BoundaryCacheTTL = 24 * time.Hour
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = 5 * time.Minute
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

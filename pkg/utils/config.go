package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	OMDB      OMDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	CORSOrigin      string
	SeedDefaultUser bool
	// TrustProxy takes the client address from forwarding headers set by
	// a reverse proxy in front of the service.
	TrustProxy bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type OMDBConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func LoadConfig() (*Config, error) {
	return loadConfig(".env")
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-review")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	v.SetDefault("SEED_DEFAULT_USER", false)
	v.SetDefault("TRUST_PROXY", false)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_EXPIRY_HOURS", 1)
	v.SetDefault("OMDB_BASE_URL", "http://www.omdbapi.com")
	v.SetDefault("OMDB_TIMEOUT", "5s")
	v.SetDefault("MOVIE_CACHE_TTL", "10m")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AUTH_RATE_LIMIT_RPS", 5)
	v.SetDefault("AUTH_RATE_LIMIT_BURST", 10)

	// .env is optional, the process environment is enough in containers
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			CORSOrigin:      v.GetString("CORS_ORIGIN"),
			SeedDefaultUser: v.GetBool("SEED_DEFAULT_USER"),
			TrustProxy:      v.GetBool("TRUST_PROXY"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		OMDB: OMDBConfig{
			APIKey:   v.GetString("OMDB_API_KEY"),
			BaseURL:  v.GetString("OMDB_BASE_URL"),
			Timeout:  v.GetDuration("OMDB_TIMEOUT"),
			CacheTTL: v.GetDuration("MOVIE_CACHE_TTL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("AUTH_RATE_LIMIT_RPS"),
			Burst: v.GetInt("AUTH_RATE_LIMIT_BURST"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if config.JWT.ExpiryHours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRY_HOURS must be positive, got %d", config.JWT.ExpiryHours)
	}

	return config, nil
}

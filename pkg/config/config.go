package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Scoring  ScoringConfig
	Rankings RankingsConfig
	Metrics  MetricsConfig
	Recalc   RecalcConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN renders the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
}

// ScoringConfig selects the formula variant applied by the normalizer.
type ScoringConfig struct {
	ApplyAssignmentShare bool
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RankingsConfig governs the cached read side of computed places.
type RankingsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// MetricsConfig points batch runs at a Prometheus Pushgateway.
type MetricsConfig struct {
	PushgatewayURL string
	JobName        string
}

// RecalcConfig tunes the queue refreshing cumulative head results after submissions.
type RecalcConfig struct {
	Retries    int
	RetryDelay time.Duration
	BufferSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scoring = ScoringConfig{
		ApplyAssignmentShare: v.GetBool("SCORING_APPLY_ASSIGNMENT_SHARE"),
	}

	cfg.Rankings = RankingsConfig{
		CacheEnabled: v.GetBool("RATING_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("RATING_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Metrics = MetricsConfig{
		PushgatewayURL: strings.TrimSpace(v.GetString("METRICS_PUSHGATEWAY_URL")),
		JobName:        v.GetString("METRICS_JOB_NAME"),
	}

	cfg.Recalc = RecalcConfig{
		Retries:    v.GetInt("RECALC_QUEUE_RETRIES"),
		RetryDelay: parseDuration(v.GetString("RECALC_QUEUE_RETRY_DELAY"), time.Second),
		BufferSize: v.GetInt("RECALC_QUEUE_BUFFER"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "academic_rating")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SCORING_APPLY_ASSIGNMENT_SHARE", true)

	v.SetDefault("RATING_CACHE_ENABLED", false)
	v.SetDefault("RATING_CACHE_TTL", "10m")

	v.SetDefault("METRICS_PUSHGATEWAY_URL", "")
	v.SetDefault("METRICS_JOB_NAME", "academic_rating")

	v.SetDefault("RECALC_QUEUE_RETRIES", 3)
	v.SetDefault("RECALC_QUEUE_RETRY_DELAY", "1s")
	v.SetDefault("RECALC_QUEUE_BUFFER", 64)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

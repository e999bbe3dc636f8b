package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	MFA      MFAConfig
	Query    QueryConfig
	Chart    ChartConfig
	S3       S3Config
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	AutoMigrate bool
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

// SessionConfig holds the cookie signing key and lifetime.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// RedisConfig enables server-side session revocation when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MFAConfig struct {
	ExposeCode bool
}

type QueryConfig struct {
	SimilarityThreshold float64
}

// ChartConfig selects where rendered charts go: "file", "s3" or "none".
type ChartConfig struct {
	Backend   string
	Dir       string
	URLPrefix string
}

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Prefix       string
}

// LoadConfigFrom reads an optional env-style file, then lets environment
// variables override it.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "bizportal")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_COOKIE", "bizportal_session")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MFA_EXPOSE_CODE", false)
	v.SetDefault("QUERY_SIMILARITY_THRESHOLD", 0.8)
	v.SetDefault("CHART_BACKEND", "file")
	v.SetDefault("CHART_DIR", "static/charts")
	v.SetDefault("CHART_URL_PREFIX", "/static/charts")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_PREFIX", "charts/")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			AutoMigrate: v.GetBool("AUTO_MIGRATE"),
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
		Session: SessionConfig{
			Secret:     v.GetString("SESSION_SECRET"),
			CookieName: v.GetString("SESSION_COOKIE"),
			TTL:        v.GetDuration("SESSION_TTL"),
			Secure:     v.GetBool("SESSION_SECURE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASS"),
			DB:       v.GetInt("REDIS_DB"),
		},
		MFA: MFAConfig{
			ExposeCode: v.GetBool("MFA_EXPOSE_CODE"),
		},
		Query: QueryConfig{
			SimilarityThreshold: v.GetFloat64("QUERY_SIMILARITY_THRESHOLD"),
		},
		Chart: ChartConfig{
			Backend:   v.GetString("CHART_BACKEND"),
			Dir:       v.GetString("CHART_DIR"),
			URLPrefix: v.GetString("CHART_URL_PREFIX"),
		},
		S3: S3Config{
			Bucket:       v.GetString("S3_BUCKET"),
			Region:       v.GetString("S3_REGION"),
			BaseEndpoint: v.GetString("S3_BASE_ENDPOINT"),
			AccessKey:    v.GetString("S3_ACCESS_KEY"),
			SecretKey:    v.GetString("S3_SECRET_KEY"),
			Prefix:       v.GetString("S3_PREFIX"),
		},
	}

	if err := checkSessionSecret(config); err != nil {
		return nil, err
	}

	return config, nil
}

// MinSessionSecretLen is the shortest SESSION_SECRET accepted outside debug.
const MinSessionSecretLen = 32

// checkSessionSecret refuses weak signing keys. Debug runs without a secret
// get a random per-process key, so cookies do not survive a restart.
func checkSessionSecret(config *Config) error {
	secret := config.Session.Secret
	if len(secret) >= MinSessionSecretLen {
		return nil
	}
	if !config.App.Debug {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSessionSecretLen)
	}
	if secret == "" {
		buf := make([]byte, MinSessionSecretLen)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		config.Session.Secret = hex.EncodeToString(buf)
	}
	return nil
}

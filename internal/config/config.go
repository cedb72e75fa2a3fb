package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port           string
	Env            string
	JWTSecret      string
	StoreDriver    string
	PublicBaseURL  string
	RequestTimeout time.Duration

	DB     DatabaseConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	S3     S3Config
	Limits LimitsConfig
	Draft  DraftConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// MongoConfig contains MongoDB connection parameters.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// S3Config contains the media bucket configuration.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	PublicBaseURL   string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	MaxUploadBytes  int64
}

// LimitsConfig contains the tier limits.
type LimitsConfig struct {
	FreeMaxURLs      int
	BasicMaxProducts int
}

// DraftConfig controls server-side draft storage.
type DraftConfig struct {
	TTL time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.StoreDriver = getEnv("STORE_DRIVER", DriverPostgres)
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:3000")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Mongo
	cfg.Mongo = MongoConfig{
		URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database:   getEnv("MONGO_DATABASE", "showcase"),
		Collection: getEnv("MONGO_COLLECTION", "products"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// S3 media bucket
	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "us-east-1"),
		Bucket:          getEnv("S3_BUCKET", "showcase-media"),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		UsePathStyle:    getEnv("S3_USE_PATH_STYLE", "false") == "true",
		MaxUploadBytes:  int64(getEnvInt("MEDIA_MAX_BYTES", 25<<20)),
	}

	// Tier limits
	cfg.Limits = LimitsConfig{
		FreeMaxURLs:      getEnvInt("FREE_MAX_URLS", 3),
		BasicMaxProducts: getEnvInt("BASIC_MAX_PRODUCTS", 15),
	}

	var err error
	if cfg.Draft.TTL, err = parseDurationEnv("DRAFT_TTL", "168h"); err != nil {
		return nil, fmt.Errorf("invalid DRAFT_TTL: %w", err)
	}
	if cfg.RequestTimeout, err = parseDurationEnv("REQUEST_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		// Basic validation for DB parameters
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	case DriverMongo:
		if cfg.Mongo.URI == "" || cfg.Mongo.Database == "" {
			return nil, errors.New("mongo configuration incomplete: ensure MONGO_URI and MONGO_DATABASE are set")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q: use postgres, mongo or memory", cfg.StoreDriver)
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

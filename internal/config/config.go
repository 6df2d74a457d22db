// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	NATS      NATSConfig
	Directory DirectoryConfig
	Reports   ReportsConfig
}

type ServerConfig struct {
	GRPCPort        string
	HTTPPort        string
	Environment     string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type StorageConfig struct {
	Driver string
	Key    string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type NATSConfig struct {
	URL                 string
	SalesSubject        string
	NotifySubjectPrefix string
	ClientName          string
}

type DirectoryConfig struct {
	File string
}

type ReportsConfig struct {
	Enabled bool
	Daily   string
	Weekly  string
	Monthly string
}

// Load reads an optional .env file and then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			GRPCPort:        getEnv("GRPC_PORT", "50051"),
			HTTPPort:        getEnv("HTTP_PORT", "8080"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverMemory)),
			Key:    getEnv("STORAGE_KEY", "ledgerly"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ledgerly"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DATABASE", "ledgerly"),
			Collection: getEnv("MONGO_COLLECTION", "snapshots"),
		},
		NATS: NATSConfig{
			URL:                 getEnv("NATS_URL", ""),
			SalesSubject:        getEnv("NATS_SALES_SUBJECT", "sales.recorded"),
			NotifySubjectPrefix: getEnv("NATS_NOTIFY_SUBJECT_PREFIX", "workflow.notifications"),
			ClientName:          getEnv("NATS_CLIENT_NAME", "ledgerly-workflow"),
		},
		Directory: DirectoryConfig{
			File: getEnv("DIRECTORY_FILE", ""),
		},
		Reports: ReportsConfig{
			Enabled: getEnvAsBool("REPORTS_ENABLED", true),
			Daily:   getEnv("REPORTS_DAILY_SCHEDULE", "@daily"),
			Weekly:  getEnv("REPORTS_WEEKLY_SCHEDULE", "@weekly"),
			Monthly: getEnv("REPORTS_MONTHLY_SCHEDULE", "@monthly"),
		},
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("DB_HOST and DB_NAME are required for the postgres driver"))
		}
	case StorageDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			errs = append(errs, errors.New("MONGO_URI, MONGO_DATABASE and MONGO_COLLECTION are required for the mongo driver"))
		}
	case StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("STORAGE_KEY must not be empty"))
	}
	if c.Server.GRPCPort == "" {
		errs = append(errs, errors.New("GRPC_PORT must not be empty"))
	}
	if c.NATS.URL != "" && c.NATS.SalesSubject == "" {
		errs = append(errs, errors.New("NATS_SALES_SUBJECT is required when NATS_URL is set"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	// Try parsing as duration string (e.g., "15m", "24h")
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}

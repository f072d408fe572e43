package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Config holds everything a seeding run needs.
// Values come from flags, falling back to environment variables, then defaults.
type Config struct {
	CategoriesFile string
	FoodItemsFile  string
	Backend        string
	Verify         bool
	LogLevel       string
	AWSRegion      string
	Firestore      FirestoreConfig
	Mongo          MongoConfig
	Postgres       PostgresConfig
}

type FirestoreConfig struct {
	CredentialsFile string
	ProjectID       string
}

type MongoConfig struct {
	URI      string
	Database string
}

type PostgresConfig struct {
	DSN string
}

// Load reads .env from the working directory when present, then parses args
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return Parse(args, os.Stderr)
}

// Parse builds a Config from args and the current environment, without touching .env
func Parse(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("seeder", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.CategoriesFile, "categories", getEnv("CATEGORIES_FILE", "categories.json"), "categories file, local path or s3://bucket/key")
	fs.StringVar(&cfg.FoodItemsFile, "food-items", getEnv("FOOD_ITEMS_FILE", "food_items.json"), "food items file, local path or s3://bucket/key")
	fs.StringVar(&cfg.Backend, "backend", getEnv("SEED_BACKEND", BackendFirestore), "document store: firestore, mongo, postgres or memory")
	fs.BoolVar(&cfg.Verify, "verify", getEnvAsBool("SEED_VERIFY", false), "check every document exists after upload")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.StringVar(&cfg.AWSRegion, "aws-region", getEnv("AWS_REGION", ""), "region for s3:// inputs")
	fs.StringVar(&cfg.Firestore.CredentialsFile, "credentials", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "service-account-key.json"), "service account key file")
	fs.StringVar(&cfg.Firestore.ProjectID, "project", getEnv("FIRESTORE_PROJECT_ID", ""), "firestore project id, detected from credentials when empty")
	fs.StringVar(&cfg.Mongo.URI, "mongo-uri", getEnv("MONGO_URI", "mongodb://localhost:27017"), "mongodb connection uri")
	fs.StringVar(&cfg.Mongo.Database, "mongo-db", getEnv("MONGO_DATABASE", "menu"), "mongodb database")
	fs.StringVar(&cfg.Postgres.DSN, "postgres-dsn", getEnv("POSTGRES_DSN", ""), "postgres dsn")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CategoriesFile == "" || c.FoodItemsFile == "" {
		return fmt.Errorf("categories and food items files are required")
	}

	switch c.Backend {
	case BackendFirestore:
		if c.Firestore.CredentialsFile == "" {
			return fmt.Errorf("credentials file is required for %s", c.Backend)
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("mongo uri and database are required for %s", c.Backend)
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for %s", c.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid backend: %s (must be firestore, mongo, postgres or memory)", c.Backend)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

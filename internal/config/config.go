// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cart store backends
const (
	CartStoreMemory   = "memory"
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
)

// Config holds all configuration for our application
type Config struct {
	App         AppConfig
	Server      ServerConfig
	Bookkeeping BookkeepingConfig
	Catalog     CatalogConfig
	Cart        CartConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Security    SecurityConfig
	Receipt     ReceiptConfig
	Logging     LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// BookkeepingConfig describes the remote bookkeeping API
type BookkeepingConfig struct {
	BaseURL      string
	Timeout      time.Duration
	PerPage      int
	MaxPages     int
	ServiceToken string // used for background catalog refresh
}

// CatalogConfig controls catalog snapshot refresh
type CatalogConfig struct {
	RefreshInterval time.Duration
	LowStockLimit   int
}

// CartConfig selects where cart snapshots are persisted
type CartConfig struct {
	Store string
	TTL   time.Duration
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig controls bearer token inspection. With an empty secret tokens
// are parsed without signature verification and the bookkeeping API is
// trusted to reject forged ones.
type JWTConfig struct {
	Secret string
	Leeway time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
	RateLimitPerMinute int // 0 disables
	MaxBodyBytes       int64
	SecureCookies      bool
}

// ReceiptConfig contains the store details printed on receipts
type ReceiptConfig struct {
	StoreName    string
	StoreAddress string
	StorePhone   string
	Currency     string
	PDFEnabled   bool
	DPI          int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "POS Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8080"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		},
		Bookkeeping: BookkeepingConfig{
			BaseURL:      getEnv("BOOKKEEPING_API_URL", "http://localhost:8000/api"),
			Timeout:      getEnvAsDuration("BOOKKEEPING_TIMEOUT", 15*time.Second),
			PerPage:      getEnvAsInt("BOOKKEEPING_PER_PAGE", 100),
			MaxPages:     getEnvAsInt("BOOKKEEPING_MAX_PAGES", 20),
			ServiceToken: getEnv("BOOKKEEPING_SERVICE_TOKEN", ""),
		},
		Catalog: CatalogConfig{
			RefreshInterval: getEnvAsDuration("CATALOG_REFRESH_INTERVAL", 5*time.Minute),
			LowStockLimit:   getEnvAsInt("CATALOG_LOW_STOCK_LIMIT", 10),
		},
		Cart: CartConfig{
			Store: strings.ToLower(getEnv("CART_STORE", CartStoreRedis)),
			TTL:   getEnvAsDuration("CART_TTL", 24*time.Hour),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "pos_db"),
			User:         getEnv("DB_USER", "pos_user"),
			Password:     getEnv("DB_PASSWORD", "pos_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Leeway: getEnvAsDuration("JWT_LEEWAY", 30*time.Second),
		},
		Security: SecurityConfig{
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Session-ID"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 300),
			MaxBodyBytes:       int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
			SecureCookies:      getEnvAsBool("SECURE_COOKIES", false),
		},
		Receipt: ReceiptConfig{
			StoreName:    getEnv("RECEIPT_STORE_NAME", "My Store"),
			StoreAddress: getEnv("RECEIPT_STORE_ADDRESS", ""),
			StorePhone:   getEnv("RECEIPT_STORE_PHONE", ""),
			Currency:     getEnv("RECEIPT_CURRENCY", "₦"),
			PDFEnabled:   getEnvAsBool("RECEIPT_PDF_ENABLED", false),
			DPI:          getEnvAsInt("RECEIPT_PDF_DPI", 203),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	u, err := url.Parse(c.Bookkeeping.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BOOKKEEPING_API_URL must be an absolute URL")
	}
	if c.Bookkeeping.PerPage <= 0 {
		return fmt.Errorf("BOOKKEEPING_PER_PAGE must be positive")
	}
	if c.Bookkeeping.MaxPages <= 0 {
		return fmt.Errorf("BOOKKEEPING_MAX_PAGES must be positive")
	}

	switch c.Cart.Store {
	case CartStoreMemory:
	case CartStoreRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required when CART_STORE=redis")
		}
	case CartStorePostgres:
		if c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "" {
			return fmt.Errorf("DB_HOST, DB_NAME and DB_USER are required when CART_STORE=postgres")
		}
	default:
		return fmt.Errorf("CART_STORE must be one of memory, redis, postgres (got %q)", c.Cart.Store)
	}

	if c.Security.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}

	if c.JWT.Secret != "" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}
	// Role checks read token claims; without a secret nothing proves them
	if c.IsProduction() && !c.VerifiesTokens() {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	return nil
}

// VerifiesTokens reports whether bearer token signatures are checked locally.
func (c *Config) VerifiesTokens() bool {
	return c.JWT.Secret != ""
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

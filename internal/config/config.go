package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server    ServerConfig
	App       AppConfig
	Storage   StorageConfig
	UserDB    UserDBConfig
	Sessions  SessionConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"shopcart-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`

	// Seed credentials for the default admin account, created at
	// startup when no such user exists.
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin_password"`
}

// StorageConfig holds settings for the JSON document stores and the
// optional SQLite catalog backend.
type StorageConfig struct {
	DataDir      string `envconfig:"DATA_DIR" default:"./data"`
	UsersFile    string `envconfig:"USERS_FILE" default:"users.json"`
	ProductsFile string `envconfig:"PRODUCTS_FILE" default:"products.json"`
	CartsFile    string `envconfig:"CARTS_FILE" default:"carts.json"`

	CatalogDBType string `envconfig:"CATALOG_DB_TYPE" default:"json"` // json or sqlite
	CatalogDBPath string `envconfig:"CATALOG_DB_PATH" default:"./data/catalog.db"`
}

// UserDBConfig holds the optional MySQL backend for the user store.
// When Type is "json" (the default) users live in the JSON store.
type UserDBConfig struct {
	Type     string `envconfig:"USER_DB_TYPE" default:"json"` // json or mysql
	Host     string `envconfig:"USER_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"USER_DB_PORT" default:"3306"`
	Name     string `envconfig:"USER_DB_NAME" default:"shopcart"`
	User     string `envconfig:"USER_DB_USER" default:"root"`
	Password string `envconfig:"USER_DB_PASS" default:""`
}

// SessionConfig holds bearer-session settings and the optional Redis
// backend for the session store.
type SessionConfig struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"1h"`

	StoreType     string `envconfig:"SESSION_STORE_TYPE" default:"memory"` // memory or redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// RateLimitConfig caps authentication-adjacent requests per client IP.
type RateLimitConfig struct {
	LoginLimit  int           `envconfig:"LOGIN_LIMIT" default:"5"`
	LoginWindow time.Duration `envconfig:"LOGIN_WINDOW" default:"60s"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN returns the MySQL data source name for the user store.
func (d *UserDBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisAddress returns the Redis address in host:port format.
func (c *SessionConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application settings
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
	Static   StaticConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int

	// BaseURL is the public address of the app, used for OAuth redirects.
	BaseURL string
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings. Redis is optional; it backs
// the OAuth state store when more than one replica runs.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds session token settings
type AuthConfig struct {
	JWTSecret           string `mapstructure:"jwt_secret"`
	JWTAlgorithm        string `mapstructure:"jwt_algorithm"`
	SessionLifetimeDays int    `mapstructure:"session_lifetime_days"`

	// InsecureCookies disables the Secure cookie flag for local development
	// over plain HTTP.
	InsecureCookies bool `mapstructure:"insecure_cookies"`
}

// OAuthConfig holds external provider settings
type OAuthConfig struct {
	Google GoogleConfig

	// StateStore selects where OAuth states live: "memory" or "redis".
	StateStore string `mapstructure:"state_store"`

	// StateTTLMinutes bounds how long a login attempt may take.
	StateTTLMinutes int `mapstructure:"state_ttl_minutes"`
}

// GoogleConfig holds Google OAuth client credentials
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// StaticConfig holds frontend serving settings
type StaticConfig struct {
	// Dir is the directory with the SPA build. Empty disables static serving.
	Dir string
}

// SessionLifetime returns the session duration as a time.Duration.
func (a *AuthConfig) SessionLifetime() time.Duration {
	return time.Duration(a.SessionLifetimeDays) * 24 * time.Hour
}

// StateTTL returns the OAuth state lifetime as a time.Duration.
func (o *OAuthConfig) StateTTL() time.Duration {
	return time.Duration(o.StateTTLMinutes) * time.Minute
}

// GoogleEnabled reports whether Google login is configured.
func (o *OAuthConfig) GoogleEnabled() bool {
	return o.Google.ClientID != "" && o.Google.ClientSecret != ""
}

// PostgresConnectionString builds the PostgreSQL connection string
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from an optional file plus environment variables.
// Environment variables win over the file.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("server.baseurl", "http://localhost:8080/")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("auth.jwt_algorithm", "HS256")
	vip.SetDefault("auth.session_lifetime_days", 360)
	vip.SetDefault("oauth.state_store", "memory")
	vip.SetDefault("oauth.state_ttl_minutes", 10)

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.readtimeout", "SERVER_READTIMEOUT")
	vip.BindEnv("server.writetimeout", "SERVER_WRITETIMEOUT")
	vip.BindEnv("server.baseurl", "SERVER_BASEURL")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	vip.BindEnv("auth.jwt_algorithm", "AUTH_JWT_ALGORITHM")
	vip.BindEnv("auth.session_lifetime_days", "AUTH_SESSION_LIFETIME_DAYS")
	vip.BindEnv("auth.insecure_cookies", "AUTH_INSECURE_COOKIES")

	vip.BindEnv("oauth.google.client_id", "GOOGLE_CLIENT_ID")
	vip.BindEnv("oauth.google.client_secret", "GOOGLE_CLIENT_SECRET")
	vip.BindEnv("oauth.state_store", "OAUTH_STATE_STORE")
	vip.BindEnv("oauth.state_ttl_minutes", "OAUTH_STATE_TTL_MINUTES")

	vip.BindEnv("static.dir", "STATIC_DIR")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("[Config] File '%s' not found, relying on environment variables and defaults", configPath)
			} else {
				log.Printf("[Config] Warning: could not read '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("[Config] Database: %s@%s:%s/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
		log.Printf("[Config] Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("[Config] Server Port: %s", cfg.Server.Port)
		log.Printf("[Config] Base URL: %s", cfg.Server.BaseURL)
		log.Printf("[Config] Google OAuth Configured: %t", cfg.OAuth.GoogleEnabled())
		log.Printf("[Config] OAuth State Store: %s", cfg.OAuth.StateStore)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required (check AUTH_JWT_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.OAuth.StateStore != "memory" && cfg.OAuth.StateStore != "redis" {
		return nil, fmt.Errorf("oauth state store must be 'memory' or 'redis', got %q", cfg.OAuth.StateStore)
	}
	if cfg.OAuth.StateStore == "redis" && cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis state store selected but REDIS_ADDR is not set")
	}

	return &cfg, nil
}

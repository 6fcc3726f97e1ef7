package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// CredentialSource selects where the request gate looks for the access
// credential. Exactly one source is active per deployment.
const (
	CredentialSourceHeader = "header"
	CredentialSourceCookie = "cookie"
)

// Config is built once at process start and passed into each component.
// Nothing in the codebase reads the environment after this point.
type Config struct {
	ServerPort int `env:"SERVER_PORT" envDefault:"8080"`
	Mongo      MongoConfig
	Auth       AuthConfig
}

// MongoConfig configures the document-store connection.
type MongoConfig struct {
	URI             string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database        string        `env:"MONGO_DATABASE" envDefault:"quiz_me"`
	ConnectTimeout  time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGO_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGO_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGO_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGO_RETRY_INTERVAL" envDefault:"5s"`
}

// AuthConfig holds secret material and token policy. Access and refresh
// tokens sign with independent secrets.
type AuthConfig struct {
	AccessSecret      string        `env:"AUTH_ACCESS_SECRET,required"`
	RefreshSecret     string        `env:"AUTH_REFRESH_SECRET,required"`
	AccessTokenTTL    time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"168h"`
	RefreshTokenTTL   time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" envDefault:"168h"`
	CredentialSource  string        `env:"AUTH_CREDENTIAL_SOURCE" envDefault:"header"`
	CookieSecret      string        `env:"AUTH_COOKIE_SECRET,required"`
	CookieSecure      bool          `env:"AUTH_COOKIE_SECURE" envDefault:"false"`
	AccessCookieName  string        `env:"AUTH_ACCESS_COOKIE_NAME" envDefault:"accessToken"`
	RefreshCookieName string        `env:"AUTH_REFRESH_COOKIE_NAME" envDefault:"refreshToken"`
	RefreshCookiePath string        `env:"AUTH_REFRESH_COOKIE_PATH" envDefault:"/api/auth/refresh"`
}

// Load reads the process environment into a Config. In dev a local .env file
// is loaded first.
func Load() (Config, error) {
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.Auth.CredentialSource {
	case CredentialSourceHeader, CredentialSourceCookie:
	default:
		return Config{}, fmt.Errorf("unknown AUTH_CREDENTIAL_SOURCE %q", cfg.Auth.CredentialSource)
	}

	return cfg, nil
}

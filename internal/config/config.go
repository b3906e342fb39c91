package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the application configuration, read from a YAML file with
// environment variable overrides.
type Config struct {
	// Environment is "development" or "production"
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level when set
	LogLevel string `env:"LOG_LEVEL" env-default:"" yaml:"logLevel"`

	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds the handling of a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes limits request bodies
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"1048576" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// CORSOrigins lists allowed origins; "*" allows any
		CORSOrigins []string `env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173" env-separator:"," yaml:"corsOrigins"` //nolint: lll
	} `yaml:"http"`

	Auth struct {
		// PublicKey is the PEM encoded RSA key used to verify bearer tokens.
		// Authentication is disabled when it is empty.
		PublicKey string `env:"AUTH_PUBLIC_KEY" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA key used by the jwt command to sign tokens
		PrivateKey string `env:"AUTH_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"auth"`

	Calculator struct {
		// DefaultSystem is used when a request does not name a mapping system
		DefaultSystem string `env:"CALCULATOR_DEFAULT_SYSTEM" env-default:"pythagorean" yaml:"defaultSystem"`
		// MinYear and MaxYear bound accepted birth years
		MinYear int `env:"CALCULATOR_MIN_YEAR" env-default:"1900" yaml:"minYear"`
		MaxYear int `env:"CALCULATOR_MAX_YEAR" env-default:"2100" yaml:"maxYear"`
		// MaxNameLength is the longest accepted name, in characters
		MaxNameLength int `env:"CALCULATOR_MAX_NAME_LENGTH" env-default:"200" yaml:"maxNameLength"`
		// MaxBatchSize is the largest accepted batch
		MaxBatchSize int `env:"CALCULATOR_MAX_BATCH_SIZE" env-default:"50" yaml:"maxBatchSize"`
		// BatchConcurrency is the number of batch entries computed at once
		BatchConcurrency int `env:"CALCULATOR_BATCH_CONCURRENCY" env-default:"8" yaml:"batchConcurrency"`
	} `yaml:"calculator"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load reads the YAML file at configPath and applies environment overrides.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// LoadEnv builds the configuration from defaults and environment variables
// only, for runs without a config file.
func LoadEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read env: %w", err)
	}

	return &cfg, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"os"
	"strconv"
	"time"
)

// Default values applied before any other configuration source.
const (
	DefaultAppName           = "go-ingress"
	DefaultLogLevel          = "info"
	DefaultPort              = 5679
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultBodyReadTimeout   = 30 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultMaxBodyBytes      = 1 << 20
	DefaultMaxFileBytes      = 50 << 20
	DefaultSweepInterval     = 10 * time.Minute
	DefaultStaleUploadAge    = 24 * time.Hour
	DefaultStaticURLPrefix   = "/images/products"
	DefaultStaticDir         = "uploads/image/products"
	DefaultEnvFilePath       = ".env"
)

// DefaultAllowedOrigins is the cross-origin allow-list used when no other
// source provides one.
var DefaultAllowedOrigins = []string{"https://srijanfabs.com"}

// StructuredConfig is the top-level configuration container of the ingress
// service. It is populated by merging defaults, environment variables (with
// an optional .env file), command-line flags and an optional YAML/JSON file.
//
// Struct tags:
//   - envPrefix / env: caarlos0/env lookups;
//   - koanf: keys of the configuration file;
//   - validate: go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds service identity and logging settings.
	App App `envPrefix:"APP_" koanf:"app"`

	// Server holds listener addresses and timeouts.
	Server Server `koanf:"server"`

	// CORS holds the cross-origin allow-list.
	CORS CORS `envPrefix:"CORS_" koanf:"cors"`

	// Uploads holds temporary storage and body size limits.
	Uploads Uploads `koanf:"uploads"`

	// Static holds the static-file pass-through mapping.
	Static Static `envPrefix:"STATIC_" koanf:"static"`

	// Telemetry toggles OpenTelemetry tracing.
	Telemetry Telemetry `envPrefix:"TELEMETRY_" koanf:"telemetry"`

	// ConfigFilePath is the optional path to a YAML or JSON configuration
	// file merged on top of environment and flag values.
	// Env: CONFIG, flags: -c / -config
	ConfigFilePath string `env:"CONFIG" koanf:"-"`

	// EnvFilePath is the .env file loaded into the process environment
	// before environment variables are parsed.
	// Env: ENV_FILE
	EnvFilePath string `env:"ENV_FILE" koanf:"-"`
}

// App holds service identity and logging settings.
type App struct {
	// Name is reported by the liveness endpoint and used as the trace
	// service name.
	// Env: APP_NAME
	Name string `env:"NAME" koanf:"name" validate:"required"`

	// Version is the semantic version of the running service. When empty
	// the linker-injected build version is used.
	// Env: APP_VERSION
	Version string `env:"VERSION" koanf:"version"`

	// LogLevel is the zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" koanf:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

// Server holds listener and timeout settings.
type Server struct {
	// Host is the interface the HTTP server binds to; empty means all.
	// Env: HOST
	Host string `env:"HOST" koanf:"host"`

	// Port is the TCP port of the HTTP server.
	// Env: PORT
	Port int `env:"PORT" koanf:"port" validate:"gte=1,lte=65535"`

	// MetricsAddress is the host:port of the Prometheus metrics listener.
	// Empty disables it.
	// Env: METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS" koanf:"metrics_address"`

	// ReadHeaderTimeout bounds how long the server waits for request headers.
	// Env: READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" koanf:"read_header_timeout" validate:"gte=0"`

	// BodyReadTimeout bounds reading of decoded bodies and staged uploads.
	// Zero disables the deadline.
	// Env: BODY_READ_TIMEOUT
	BodyReadTimeout time.Duration `env:"BODY_READ_TIMEOUT" koanf:"body_read_timeout" validate:"gte=0"`

	// ShutdownTimeout bounds graceful shutdown of all listeners.
	// Env: SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" koanf:"shutdown_timeout" validate:"gte=0"`
}

// HTTPAddress returns the host:port the HTTP server listens on.
func (s Server) HTTPAddress() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// CORS holds the exact-match origin allow-list.
type CORS struct {
	// AllowedOrigins are compared verbatim with the request Origin header.
	// Env: CORS_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," koanf:"allowed_origins" validate:"dive,url"`
}

// Uploads holds temporary storage and body size limits.
type Uploads struct {
	// TempDir is where multipart file parts are staged.
	// Env: UPLOAD_TEMP_DIR
	TempDir string `env:"UPLOAD_TEMP_DIR" koanf:"temp_dir" validate:"required"`

	// MaxFileBytes caps a single staged file. Zero means unlimited.
	// Env: UPLOAD_MAX_FILE_BYTES
	MaxFileBytes int64 `env:"UPLOAD_MAX_FILE_BYTES" koanf:"max_file_bytes" validate:"gte=0"`

	// MaxBodyBytes caps JSON and urlencoded bodies. Zero means unlimited.
	// Env: BODY_MAX_BYTES
	MaxBodyBytes int64 `env:"BODY_MAX_BYTES" koanf:"max_body_bytes" validate:"gte=0"`

	// SweepInterval is how often stale staged files are removed. Zero
	// disables the sweeper.
	// Env: UPLOAD_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"UPLOAD_SWEEP_INTERVAL" koanf:"sweep_interval" validate:"gte=0"`

	// StaleAfter is the age after which a staged file is considered
	// abandoned.
	// Env: UPLOAD_STALE_AFTER
	StaleAfter time.Duration `env:"UPLOAD_STALE_AFTER" koanf:"stale_after" validate:"gte=0"`
}

// Static maps a URL prefix onto a directory served as-is.
type Static struct {
	// URLPrefix is the path prefix, e.g. "/images/products".
	// Env: STATIC_URL_PREFIX
	URLPrefix string `env:"URL_PREFIX" koanf:"url_prefix" validate:"omitempty,startswith=/"`

	// Dir is the filesystem directory behind URLPrefix. Empty disables
	// static serving.
	// Env: STATIC_DIR
	Dir string `env:"DIR" koanf:"dir"`
}

// Telemetry toggles OpenTelemetry tracing.
type Telemetry struct {
	// Enabled turns on server spans exported to stdout.
	// Env: TELEMETRY_ENABLED
	Enabled bool `env:"ENABLED" koanf:"enabled"`
}

// defaultConfig returns the lowest-priority configuration source.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name:     DefaultAppName,
			LogLevel: DefaultLogLevel,
		},
		Server: Server{
			Port:              DefaultPort,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			BodyReadTimeout:   DefaultBodyReadTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
		},
		CORS: CORS{
			AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		},
		Uploads: Uploads{
			TempDir:       os.TempDir(),
			MaxFileBytes:  DefaultMaxFileBytes,
			MaxBodyBytes:  DefaultMaxBodyBytes,
			SweepInterval: DefaultSweepInterval,
			StaleAfter:    DefaultStaleUploadAge,
		},
		Static: Static{
			URLPrefix: DefaultStaticURLPrefix,
			Dir:       DefaultStaticDir,
		},
		EnvFilePath: DefaultEnvFilePath,
	}
}

// GetStructuredConfig loads, merges, and validates the service
// configuration from all available sources in the following priority order
// (later sources override non-zero fields of earlier ones):
//  1. Built-in defaults
//  2. .env file and environment variables
//  3. Command-line flags
//  4. Configuration file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return load(os.Args[1:])
}

func load(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withFile().
		build()
}

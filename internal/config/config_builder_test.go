package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempConfig(t *testing.T, pattern, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), pattern)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a zero-value config does not pass
// validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestBuild_DefaultsOnly verifies that the built-in defaults are valid.
func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs override earlier ones while zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}, Server: Server{Port: 8000}},
		&StructuredConfig{Server: Server{Port: 9000}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, DefaultBodyReadTimeout, cfg.Server.BodyReadTimeout)
}

// TestBuild_OriginsReplaced verifies that a later origin list replaces the
// default one instead of being appended to it.
func TestBuild_OriginsReplaced(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{
		CORS: CORS{AllowedOrigins: []string{"https://shop.example"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://shop.example"}, cfg.CORS.AllowedOrigins)
}

// ── validate ──────────────────────────────────────────────────────────────────

// TestValidate checks the rules applied to the merged configuration.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults",
			mutate: func(*StructuredConfig) {},
		},
		{
			name:    "unknown log level",
			mutate:  func(cfg *StructuredConfig) { cfg.App.LogLevel = "loud" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "port out of range",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.Port = 70000 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "origin is not a URL",
			mutate:  func(cfg *StructuredConfig) { cfg.CORS.AllowedOrigins = []string{"not an origin"} },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "static prefix without slash",
			mutate:  func(cfg *StructuredConfig) { cfg.Static.URLPrefix = "images" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "static dir without prefix",
			mutate:  func(cfg *StructuredConfig) { cfg.Static.URLPrefix = "" },
			wantErr: ErrInvalidStaticConfigs,
		},
		{
			name: "static disabled",
			mutate: func(cfg *StructuredConfig) {
				cfg.Static = Static{}
			},
		},
		{
			name: "metrics on the HTTP address",
			mutate: func(cfg *StructuredConfig) {
				cfg.Server.Host = "127.0.0.1"
				cfg.Server.MetricsAddress = "127.0.0.1:5679"
			},
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "empty upload dir",
			mutate:  func(cfg *StructuredConfig) { cfg.Uploads.TempDir = "" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative sweep interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Uploads.SweepInterval = -time.Minute },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative body limit",
			mutate:  func(cfg *StructuredConfig) { cfg.Uploads.MaxBodyBytes = -1 },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	clearEnvVars(t)
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION": "env-version",
		"PORT":        "6000",
	})

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, 6000, b.configs[0].Server.Port)
}

// TestWithEnv_LoadsDotEnvFromDefaults verifies that the .env path registered
// by withDefaults is honoured.
func TestWithEnv_LoadsDotEnvFromDefaults(t *testing.T) {
	clearEnvVars(t)
	path := writeTempConfig(t, "*.env", "APP_NAME=dotenv-name\n")

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{EnvFilePath: path})
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "dotenv-name", b.configs[1].App.Name)
}

// TestWithEnv_MissingExplicitDotEnv verifies that a missing file named by
// ENV_FILE is an error.
func TestWithEnv_MissingExplicitDotEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ENV_FILE": filepath.Join(t.TempDir(), "absent.env"),
	})

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	clearEnvVars(t)
	b := newConfigBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.Len(t, b.configs, 1)
}

// TestWithFlags_SetsError verifies that a bad flag is recorded on the builder.
func TestWithFlags_SetsError(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-a", "nope"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFile ──────────────────────────────────────────────────────────────────

// TestWithFile_NoOp_WhenNoPathSet verifies that withFile does nothing when
// no config has a ConfigFilePath.
func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withFile())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithFile_YAML verifies that a YAML file is parsed and appended.
func TestWithFile_YAML(t *testing.T) {
	path := writeTempConfig(t, "config-*.yaml", `
app:
  name: yaml-ingress
  version: 3.0.0
server:
  port: 7001
  body_read_timeout: 45s
cors:
  allowed_origins:
    - https://a.example
    - https://b.example
uploads:
  max_file_bytes: 2048
static:
  url_prefix: /files
  dir: /srv/files
telemetry:
  enabled: true
`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	got := b.configs[1]
	assert.Equal(t, "yaml-ingress", got.App.Name)
	assert.Equal(t, "3.0.0", got.App.Version)
	assert.Equal(t, 7001, got.Server.Port)
	assert.Equal(t, 45*time.Second, got.Server.BodyReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, got.CORS.AllowedOrigins)
	assert.Equal(t, int64(2048), got.Uploads.MaxFileBytes)
	assert.Equal(t, Static{URLPrefix: "/files", Dir: "/srv/files"}, got.Static)
	assert.True(t, got.Telemetry.Enabled)
}

// TestWithFile_JSON verifies that JSON content is accepted as well.
func TestWithFile_JSON(t *testing.T) {
	path := writeTempConfig(t, "config-*.json", `{"app":{"version":"json-version"},"server":{"port":7002}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, 7002, b.configs[1].Server.Port)
}

// TestWithFile_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		ConfigFilePath: "/nonexistent/config.yaml",
	})
	b.withFile()

	assert.Error(t, b.err)
}

// TestWithFile_SetsError_WhenMalformed verifies that unparsable content sets
// b.err.
func TestWithFile_SetsError_WhenMalformed(t *testing.T) {
	path := writeTempConfig(t, "bad-*.yaml", "server: [port: 1")

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	assert.Error(t, b.err)
}

// TestWithFile_UsesLastPath verifies that when multiple configs have a
// ConfigFilePath, the last non-empty one wins.
func TestWithFile_UsesLastPath(t *testing.T) {
	first := writeTempConfig(t, "first-*.yaml", "app:\n  version: first\n")
	last := writeTempConfig(t, "last-*.yaml", "app:\n  version: last-wins\n")

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{ConfigFilePath: first},
		&StructuredConfig{ConfigFilePath: ""},
		&StructuredConfig{ConfigFilePath: last},
	)
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "last-wins", b.configs[3].App.Version)
}

// ── load ──────────────────────────────────────────────────────────────────────

// TestLoad_Priority verifies defaults < env < flags < file.
func TestLoad_Priority(t *testing.T) {
	path := writeTempConfig(t, "config-*.yaml", "app:\n  version: from-file\n")
	setEnvVars(t, map[string]string{
		"APP_VERSION":   "from-env",
		"APP_LOG_LEVEL": "warn",
		"PORT":          "6000",
	})

	cfg, err := load([]string{"-p", "6001", "-c", path})
	require.NoError(t, err)

	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, 6001, cfg.Server.Port)
	assert.Equal(t, "from-file", cfg.App.Version)
	assert.Equal(t, path, cfg.ConfigFilePath)
}

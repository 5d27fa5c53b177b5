// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.sdragent/config.yaml or ./config.yaml)
//  3. Default values
//
// Validation is fail-fast: Load returns an error before any request is
// served when required credentials or ranges are wrong.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel errors for configuration validation.
var (
	// ErrMissingAPIKey indicates a required provider API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidTopK indicates the retrieval result count is out of range.
	ErrInvalidTopK = errors.New("invalid retrieval top k")

	// ErrInvalidChunking indicates chunk size/overlap are inconsistent.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrInvalidCalendlyLink indicates the demo booking link is not a URL.
	ErrInvalidCalendlyLink = errors.New("invalid calendly link")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"
)

// Config stores application configuration.
// SECURITY: sensitive fields are masked in MarshalJSON.
type Config struct {
	// AI provider and model configuration
	Provider    string  `mapstructure:"provider" json:"provider"`
	ModelName   string  `mapstructure:"model_name" json:"model_name"`
	Temperature float32 `mapstructure:"temperature" json:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" json:"max_tokens"`

	// Retrieval configuration
	EmbedderModel string `mapstructure:"embedder_model" json:"embedder_model"`
	RAGTopK       int    `mapstructure:"rag_top_k" json:"rag_top_k"`

	// Offline ingestion configuration
	ChunkSize    int    `mapstructure:"chunk_size" json:"chunk_size"`
	ChunkOverlap int    `mapstructure:"chunk_overlap" json:"chunk_overlap"`
	ArticlesDir  string `mapstructure:"articles_dir" json:"articles_dir"`

	// Demo booking
	CalendlyDemoLink string `mapstructure:"calendly_demo_link" json:"calendly_demo_link"`

	// Storage configuration (see storage.go)
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`

	// HTTP server configuration
	Addr        string   `mapstructure:"addr" json:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".sdragent")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL (if set) overrides individual postgres_* settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
// Defaults mirror the production deployment: OpenAI gpt-4o-mini with
// text-embedding-3-small over a local pgvector database.
func setDefaults() {
	viper.SetDefault("provider", ProviderOpenAI)
	viper.SetDefault("model_name", "gpt-4o-mini")
	viper.SetDefault("temperature", 0.7)
	viper.SetDefault("max_tokens", 800)

	viper.SetDefault("embedder_model", "text-embedding-3-small")
	viper.SetDefault("rag_top_k", 3)

	viper.SetDefault("chunk_size", 1000)
	viper.SetDefault("chunk_overlap", 200)
	viper.SetDefault("articles_dir", "articles")

	viper.SetDefault("calendly_demo_link", "https://calendly.com/eliseai-demo/30min")

	viper.SetDefault("postgres_host", "localhost")
	viper.SetDefault("postgres_port", 5432)
	viper.SetDefault("postgres_user", "sdragent")
	viper.SetDefault("postgres_password", "sdragent_dev_password")
	viper.SetDefault("postgres_db_name", "sdragent")
	viper.SetDefault("postgres_ssl_mode", "disable")

	viper.SetDefault("addr", "127.0.0.1:8000")
	viper.SetDefault("cors_origins", []string{"http://localhost:5173"})
}

// bindEnvVariables binds environment variable overrides explicitly.
//
// Provider API keys (OPENAI_API_KEY, GEMINI_API_KEY) are read directly by the
// Genkit plugins, not via Viper; Validate only checks their presence for the
// selected provider.
func bindEnvVariables() {
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "SDRAGENT_PROVIDER")
	mustBind("model_name", "SDRAGENT_MODEL_NAME")
	mustBind("temperature", "SDRAGENT_TEMPERATURE")
	mustBind("max_tokens", "SDRAGENT_MAX_TOKENS")
	mustBind("embedder_model", "SDRAGENT_EMBEDDER_MODEL")
	mustBind("rag_top_k", "SDRAGENT_RAG_TOP_K")
	mustBind("chunk_size", "SDRAGENT_CHUNK_SIZE")
	mustBind("chunk_overlap", "SDRAGENT_CHUNK_OVERLAP")
	mustBind("calendly_demo_link", "CALENDLY_DEMO_LINK")
	mustBind("articles_dir", "SDRAGENT_ARTICLES_DIR")
	mustBind("addr", "SDRAGENT_ADDR")
	mustBind("cors_origins", "SDRAGENT_CORS_ORIGINS")
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Secrets of 8 characters or fewer are fully masked; longer secrets keep the
// first and last two characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with sensitive field masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// FullModelName returns the provider-qualified model name for Genkit.
// Examples: "openai/gpt-4o-mini", "googleai/gemini-2.5-flash".
// If ModelName already contains a "/", it is returned as-is.
func (c *Config) FullModelName() string {
	if strings.Contains(c.ModelName, "/") {
		return c.ModelName
	}
	switch c.Provider {
	case ProviderGoogleAI:
		return ProviderGoogleAI + "/" + c.ModelName
	default:
		return ProviderOpenAI + "/" + c.ModelName
	}
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

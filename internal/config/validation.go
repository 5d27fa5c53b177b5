package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// validSSLModes are the PostgreSQL SSL modes accepted by the pgx driver.
var validSSLModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// Validate checks the configuration for correctness.
// Called by Load; the process must not serve requests with an invalid config.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if os.Getenv("OPENAI_API_KEY") == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY is required for provider %q", ErrMissingAPIKey, c.Provider)
		}
	case ProviderGoogleAI:
		if os.Getenv("GEMINI_API_KEY") == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is required for provider %q", ErrMissingAPIKey, c.Provider)
		}
	default:
		return fmt.Errorf("%w: %q (supported: %s, %s)", ErrInvalidProvider, c.Provider, ProviderOpenAI, ProviderGoogleAI)
	}

	if strings.TrimSpace(c.ModelName) == "" {
		return fmt.Errorf("%w: model name must not be empty", ErrInvalidModelName)
	}
	if strings.TrimSpace(c.EmbedderModel) == "" {
		return fmt.Errorf("%w: embedder model must not be empty", ErrInvalidModelName)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %v (must be between 0 and 2)", ErrInvalidTemperature, c.Temperature)
	}
	if c.MaxTokens < 1 || c.MaxTokens > 32768 {
		return fmt.Errorf("%w: %d (must be between 1 and 32768)", ErrInvalidMaxTokens, c.MaxTokens)
	}

	if c.RAGTopK < 1 || c.RAGTopK > 50 {
		return fmt.Errorf("%w: %d (must be between 1 and 50)", ErrInvalidTopK, c.RAGTopK)
	}

	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk_size %d (must be positive)", ErrInvalidChunking, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap %d (must be non-negative and smaller than chunk_size %d)",
			ErrInvalidChunking, c.ChunkOverlap, c.ChunkSize)
	}

	if err := validateCalendlyLink(c.CalendlyDemoLink); err != nil {
		return err
	}

	if strings.TrimSpace(c.PostgresHost) == "" {
		return fmt.Errorf("%w: host must not be empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d (must be between 1 and 65535)", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if strings.TrimSpace(c.PostgresDBName) == "" {
		return fmt.Errorf("%w: database name must not be empty", ErrInvalidPostgresDBName)
	}
	if !validSSLModes[c.PostgresSSLMode] {
		return fmt.Errorf("%w: %q", ErrInvalidPostgresSSLMode, c.PostgresSSLMode)
	}

	return nil
}

func validateCalendlyLink(link string) error {
	if strings.TrimSpace(link) == "" {
		return fmt.Errorf("%w: link must not be empty", ErrInvalidCalendlyLink)
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCalendlyLink, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q (must be an http(s) URL)", ErrInvalidCalendlyLink, link)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q (missing host)", ErrInvalidCalendlyLink, link)
	}
	return nil
}

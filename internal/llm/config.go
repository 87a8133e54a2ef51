package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "openrouter", "mock".
	Provider string `mapstructure:"provider"`

	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`

	// Timeout bounds a single recommendation request end to end.
	Timeout time.Duration `mapstructure:"timeout"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "gemini-flash"
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url"` // Optional, for compatible APIs.
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "claude-haiku"
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "gemini-flash"
	BaseURL string `mapstructure:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with Gemini selected and no credentials.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "gemini-flash"},
		Timeout:    45 * time.Second,
	}
}

// HasCredentials reports whether any provider has an API key set.
func (c Config) HasCredentials() bool {
	return c.Gemini.APIKey != "" || c.OpenAI.APIKey != "" ||
		c.Anthropic.APIKey != "" || c.OpenRouter.APIKey != ""
}

// Discover fills in a credential from the standard provider env vars
// (Gemini, then OpenAI, Anthropic, OpenRouter) and selects that provider.
// It reports false when none is set. Models and timeout are kept.
func (c Config) Discover() (Config, bool) {
	probes := []struct {
		env      []string
		provider string
		set      func(string)
	}{
		{[]string{"GEMINI_API_KEY", "API_KEY"}, "gemini", func(k string) { c.Gemini.APIKey = k }},
		{[]string{"OPENAI_API_KEY"}, "openai", func(k string) { c.OpenAI.APIKey = k }},
		{[]string{"ANTHROPIC_API_KEY"}, "anthropic", func(k string) { c.Anthropic.APIKey = k }},
		{[]string{"OPENROUTER_API_KEY"}, "openrouter", func(k string) { c.OpenRouter.APIKey = k }},
	}
	for _, p := range probes {
		for _, env := range p.env {
			if k := os.Getenv(env); k != "" {
				p.set(k)
				c.Provider = p.provider
				return c, true
			}
		}
	}
	return c, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("PMOQUIZ_LLM_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PMOQUIZ_LLM_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("PMOQUIZ_LLM_GEMINI_API_KEY or GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("PMOQUIZ_LLM_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("LLM timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

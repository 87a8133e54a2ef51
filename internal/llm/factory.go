package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/pmoquiz/internal/store"
)

// NewProvider creates a Provider from configuration. When eventRepo is
// non-nil every call is recorded through WithLogging. There is no retry
// layer: a failed call is reported to the caller as is.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if logger != nil {
		logger.Info("llm provider ready",
			zap.String("provider", cfg.Provider),
			zap.String("model", base.ModelID()))
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo, logger), nil
}

package ai

import (
	"ideaforge/internal/adapters/config"
	"ideaforge/internal/adapters/ratelimit"
	"ideaforge/internal/domain/usage"
	"ideaforge/pkg/logger"
)

// NewFromConfig picks the backend named by cfg.Provider. Without a key for it the
// result is not Ready and every call fails fast.
func NewFromConfig(cfg config.AIConfig, usageRepo usage.Repository) Completer {
	log := logger.Get().With("component", "ai_factory")

	var backend Completer
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			log.Warn("OPENAI_API_KEY not set, completion disabled")
			return Unavailable{Reason: "OpenAI API key not configured"}
		}
		backend = NewOpenAICompleter(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.RequestTimeout)
	default:
		if cfg.DeepSeekKey == "" {
			log.Warn("DEEPSEEK_API_KEY not set, completion disabled")
			return Unavailable{Reason: "DeepSeek API key not configured"}
		}
		backend = NewDeepSeekCompleter(cfg.DeepSeekKey, cfg.DeepSeekURL, cfg.DeepSeekModel, cfg.RequestTimeout)
	}

	log.Infow("completion backend ready", "provider", backend.Name(), "model", backend.Model())
	return NewInstrumented(backend, ratelimit.NewLimiter(backend.Name(), cfg.RequestsPerMin), usageRepo)
}

package ai

import (
	"buddy-backend/pkg/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NewReviewer builds the reviewer named by AI_PROVIDER.
func NewReviewer(cfg *config.Config, log *zap.Logger) (Reviewer, error) {
	ollama := NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel)

	switch ProviderType(cfg.AIProvider) {
	case ProviderGateway:
		if cfg.AIGatewayKey == "" {
			return nil, errors.New("AI_GATEWAY_KEY is required for the gateway provider")
		}
		return NewGatewayService(cfg.AIGatewayURL, cfg.AIGatewayKey, cfg.AIModel), nil
	case ProviderOllama:
		return ollama, nil
	case ProviderAuto, "":
		if cfg.AIGatewayKey == "" {
			return ollama, nil
		}
		gateway := NewGatewayService(cfg.AIGatewayURL, cfg.AIGatewayKey, cfg.AIModel)
		return NewFallbackService(gateway, ollama, log), nil
	default:
		return nil, errors.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}

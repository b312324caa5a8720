package ai

import (
	"github.com/jhoicas/supermall-api/internal/application/ports"
	"github.com/jhoicas/supermall-api/pkg/config"
)

// NewFromConfig elige el proveedor configurado. Devuelve nil si no hay credenciales.
func NewFromConfig(cfg config.AIConfig) ports.LLMService {
	switch {
	case cfg.Provider == "gemini" && cfg.GeminiAPIKey != "":
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	case cfg.AnthropicAPIKey != "":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case cfg.GeminiAPIKey != "":
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	return nil
}

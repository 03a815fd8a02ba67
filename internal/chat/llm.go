package chat

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/MikeMC777/cafe-demo/internal/config"
)

// NewOpenAI returns the generative backend, or nil when no key is configured.
func NewOpenAI(cfg config.OpenAIConfig) (llms.Model, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	m, err := openai.New(openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("openai client: %w", err)
	}
	return m, nil
}

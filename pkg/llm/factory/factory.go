package factory

import (
	"breathcoach-be/pkg/llm"
	"breathcoach-be/pkg/llm/ollama"
	"breathcoach-be/pkg/llm/openai"
	"fmt"
)

// NewLLMProvider builds the configured provider. providerType "none"
// (or empty) disables AI phrase variants and returns nil.
func NewLLMProvider(providerType, modelName, baseURL, openAIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "", "none":
		return nil, nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

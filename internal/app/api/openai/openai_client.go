package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient returns a go-openai client for token. A non-empty baseURL
// overrides the API endpoint.
func NewClient(token, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

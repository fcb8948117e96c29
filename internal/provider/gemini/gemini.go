package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const ProviderName = "gemini"

type Config struct {
	ApiKey     string
	BaseUrl    string
	HttpClient *http.Client
}

func NewClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	if len(cfg.ApiKey) == 0 {
		return nil, errors.New("gemini api key is empty")
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.ApiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HttpClient,
	}

	if len(cfg.BaseUrl) != 0 {
		cc.HTTPOptions = genai.HTTPOptions{
			BaseURL: cfg.BaseUrl,
		}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}

	return client, nil
}

// NewGenerator returns the models service of a new client, which is what
// the relay calls generateContent on.
func NewGenerator(ctx context.Context, cfg Config) (*genai.Models, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return client.Models, nil
}

package llm

import (
	"context"
	"fmt"
)

// Default models per provider.
// https://ai.google.dev/gemini-api/docs/openai
// https://openai.com/api/pricing/
var Gemini_flash string = "gemini-1.5-flash"
var GPT4_o_mini string = "gpt-4o-mini"
var Command_r string = "command-r"

// GeminiOpenAIBase is Gemini's OpenAI-compatible endpoint.
const GeminiOpenAIBase = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Client is the one-method completion surface the pipeline needs. Keeping it
// this narrow lets prompt building and answer parsing run against a fake.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Settings selects and configures a provider.
type Settings struct {
	Provider string // gemini, openai or cohere
	APIKey   string
	Model    string
	BaseURL  string
}

// NewClient builds the provider named in settings. Empty model and base URL
// fields fall back to per-provider defaults. A bad key is not detected here;
// it surfaces on the first call.
func NewClient(s Settings) (Client, error) {
	switch s.Provider {
	case "", "gemini":
		model := s.Model
		if model == "" {
			model = Gemini_flash
		}
		base := s.BaseURL
		if base == "" {
			base = GeminiOpenAIBase
		}
		return NewOpenAIClient(s.APIKey, model, base), nil
	case "openai":
		model := s.Model
		if model == "" {
			model = GPT4_o_mini
		}
		return NewOpenAIClient(s.APIKey, model, s.BaseURL), nil
	case "cohere":
		model := s.Model
		if model == "" {
			model = Command_r
		}
		return NewCohereClient(s.APIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", s.Provider)
	}
}

package llm

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereClient drives Cohere's chat API.
type CohereClient struct {
	client *cohereclient.Client
	model  string
}

func NewCohereClient(token, model string) *CohereClient {
	// Custom HTTP client that forces HTTP/1.1, the Cohere SDK hits HTTP/2
	// protocol errors on some networks.
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(token),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereClient{client: client, model: model}
}

func (c *CohereClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &c.model,
	})
	if err != nil {
		log.Printf("Cohere chat error: %v\n", err)
		return "", err
	}
	if resp == nil || resp.Text == "" {
		return "", errors.New("cohere chat returned no text")
	}
	return resp.Text, nil
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// GatewayService talks to an OpenAI-compatible chat completions endpoint.
type GatewayService struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

func NewGatewayService(url, apiKey, model string) *GatewayService {
	return &GatewayService{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (g *GatewayService) ReviewHomework(ctx context.Context, sub Submission) (*Review, error) {
	payload := map[string]interface{}{
		"model": g.model,
		"messages": []chatMessage{
			{Role: "system", Content: reviewSystemPrompt},
			{Role: "user", Content: reviewUserPrompt(sub)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("gateway API error (%d): %s", resp.StatusCode, truncate(string(respBody), 300))
	}

	var result struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errors.Wrap(err, "decoding gateway response")
	}
	if len(result.Choices) == 0 {
		return nil, errors.New("gateway returned no choices")
	}

	return parseReview(result.Choices[0].Message.Content)
}

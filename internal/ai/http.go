package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/keshon/kindred/pkg/throttle"
)

// HTTPProvider talks to an OpenAI-style chat completions endpoint.
type HTTPProvider struct {
	url     string
	model   string
	token   string
	client  *http.Client
	limiter *throttle.Limiter
}

// NewHTTP returns a provider for the given endpoint. The token may be
// empty for endpoints that need no auth. Calls are paced to one per
// second so proactive chatter cannot hammer the endpoint.
func NewHTTP(url, model, token string) *HTTPProvider {
	return &HTTPProvider{
		url:     url,
		model:   model,
		token:   token,
		client:  &http.Client{Timeout: 25 * time.Second},
		limiter: throttle.New(time.Second, 2),
	}
}

func (p *HTTPProvider) Generate(req Request) (string, error) {
	if err := p.limiter.Wait(context.Background()); err != nil {
		return "", err
	}

	messages := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.Messages...)

	payload := map[string]interface{}{
		"model":    p.model,
		"messages": messages,
	}
	if req.MaxTokens > 0 {
		payload["max_tokens"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		payload["temperature"] = req.Temperature
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequest(http.MethodPost, p.url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider http %d: %s", resp.StatusCode, truncate(body))
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", fmt.Errorf("provider returned html")
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal: %w body=%s", err, truncate(body))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider empty choices")
	}

	reply := cleanReply(parsed.Choices[0].Message.Content)
	if isGarbageResponse(reply) {
		return "", fmt.Errorf("provider returned garbage")
	}

	return reply, nil
}

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

	"resume-builder/internal/model"
	"resume-builder/pkg/ai/formatters"

	"github.com/rs/zerolog"
)

// Client calls the ai-service chat endpoint to draft resume text.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	attempts int
	backoff  time.Duration
	log      zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		attempts: 3,
		backoff:  time.Second,
		log:      log,
	}
}

// Summary asks the service to polish a summary for d.
func (c *Client) Summary(ctx context.Context, d model.ResumeData) (string, error) {
	return formatters.NewSummaryFormatter(c).Format(ctx, d)
}

// ExperienceDescription asks the service to describe a role.
func (c *Client) ExperienceDescription(ctx context.Context, position, company string) (string, error) {
	return formatters.NewExperienceFormatter(c).Format(ctx, position, company)
}

// Chat sends input to /v1/chat and returns the agent's raw output.
func (c *Client) Chat(ctx context.Context, input string) (string, error) {
	b, err := json.Marshal(map[string]interface{}{"agent": "auto", "input": input})
	if err != nil {
		return "", err
	}

	c.log.Debug().Str("url", c.BaseURL+"/v1/chat").Int("bytes", len(b)).Msg("ai.client: POST")
	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	c.log.Debug().Int("status", resp.StatusCode).Int("bytes", len(respBytes)).Msg("ai.client: response")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var chatResp struct {
		Agent  string `json:"agent"`
		Output string `json:"output"`
	}
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", err
	}
	return chatResp.Output, nil
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
// Transport errors and 5xx answers are retried.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= http.StatusInternalServerError && i < c.attempts-1:
			resp.Body.Close()
			lastErr = fmt.Errorf("ai-service returned status %d", resp.StatusCode)
		default:
			return resp, nil
		}

		// exponential backoff before retrying
		if i < c.attempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * c.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"journal/internal/logging"
)

const systemPrompt = "You are an assistant that analyses a personal journal entry.\n" +
	"Return JSON with keys 'summary' (2-3 sentences) and 'mood' " +
	"(an integer 1-10 where 1 is very negative and 10 is very positive).\n" +
	"Respond with JSON ONLY."

// Retry policy for transient failures: three total attempts with
// exponential backoff starting at one second, capped at twenty.
const (
	maxAttempts  = 3
	baseDelay    = 1 * time.Second
	maxDelay     = 20 * time.Second
	defaultModel = "gpt-4o-mini"
)

// Config holds the connection settings for the external capability.
type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	TranscribeModel string

	// RequestTimeout bounds each attempt so a hung call cannot stall
	// a whole analysis batch. Defaults to 30s.
	RequestTimeout time.Duration
}

// Client is the HTTP implementation of Analyzer and Transcriber.
type Client struct {
	cfg  Config
	http *http.Client
	log  logging.Logger

	// sleep is injected so tests can observe backoff without delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a Client from config. A nil logger discards output.
func NewClient(cfg Config, log logging.Logger) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.RequestTimeout},
		log:   log,
		sleep: sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Analyze sends the entry text for analysis and returns the parsed
// (summary, mood) pair. Transient failures are retried with backoff;
// a malformed reply degrades to the raw text with a neutral mood of 5
// and never surfaces as an error.
func (c *Client) Analyze(ctx context.Context, text string) (Analysis, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := baseDelay << (attempt - 2)
			if delay > maxDelay {
				delay = maxDelay
			}
			c.log.Warn(ctx, "retrying analysis", "attempt", attempt, "delay", delay.String())
			if err := c.sleep(ctx, delay); err != nil {
				return Analysis{}, err
			}
		}

		raw, err := c.complete(ctx, text)
		if err != nil {
			if IsTransient(err) {
				lastErr = err
				continue
			}
			return Analysis{}, err
		}
		return c.parseAnalysis(ctx, raw), nil
	}
	return Analysis{}, fmt.Errorf("analysis failed after %d attempts: %w", maxAttempts, lastErr)
}

// chat completion wire shapes — only the fields we touch.

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete performs a single chat-completion round trip and returns
// the model's raw reply.
func (c *Client) complete(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrConnection, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: %s", ErrRateLimited, apiMessage(data))
	}
	if resp.StatusCode != http.StatusOK {
		// Auth, quota, bad request: permanent, no retry.
		return "", fmt.Errorf("analysis service: status %d: %s", resp.StatusCode, apiMessage(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("analysis service: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("analysis service: empty response")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func apiMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// parseAnalysis parses the model reply defensively. The model should
// return JSON with summary and mood keys; anything else falls back to
// the raw reply with a neutral mood. This never fails.
func (c *Client) parseAnalysis(ctx context.Context, raw string) Analysis {
	var payload map[string]any
	if err := json.Unmarshal([]byte(unfence(raw)), &payload); err != nil {
		c.log.Warn(ctx, "malformed analysis reply, using fallback", "err", err)
		return Analysis{Summary: raw, Mood: 5}
	}

	summary, ok := payload["summary"].(string)
	if !ok {
		c.log.Warn(ctx, "analysis reply missing summary, using fallback")
		return Analysis{Summary: raw, Mood: 5}
	}
	mood, ok := moodValue(payload["mood"])
	if !ok {
		c.log.Warn(ctx, "analysis reply missing mood, using fallback")
		return Analysis{Summary: raw, Mood: 5}
	}

	return Analysis{Summary: summary, Mood: ClampMood(mood)}
}

// moodValue coerces the mood key to an int. JSON numbers arrive as
// float64; string digits are tolerated.
func moodValue(v any) (int, bool) {
	switch m := v.(type) {
	case float64:
		return int(m), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ClampMood forces a mood score into the valid [1,10] range.
func ClampMood(m int) int {
	if m < 1 {
		return 1
	}
	if m > 10 {
		return 10
	}
	return m
}

// unfence strips a markdown code fence around the reply, which some
// models add despite the JSON-only instruction.
func unfence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

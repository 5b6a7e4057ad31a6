package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const defaultTranscribeModel = "whisper-1"

// Transcribe uploads a WAV file to the transcription endpoint and
// returns the trimmed transcript. An empty string means no speech was
// detected; callers must not persist it as an entry.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer func() { _ = f.Close() }()

	model := c.cfg.TranscribeModel
	if model == "" {
		model = defaultTranscribeModel
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	_ = mw.WriteField("model", model)
	_ = mw.WriteField("response_format", "text")
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
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
		return "", fmt.Errorf("transcription service: status %d: %s", resp.StatusCode, apiMessage(data))
	}

	return strings.TrimSpace(string(data)), nil
}

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a stub server and records backoff
// sleeps instead of waiting.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"}, nil)
	var slept []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func chatReply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": content}},
		},
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	enc, _ := json.Marshal(v)
	_, _ = w.Write(enc)
}

// writeTempWAV drops a tiny placeholder WAV on disk; the stub server
// never decodes it.
func writeTempWAV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF....WAVE"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyze_ParsesWellFormedReply(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		chatReply(w, `{"summary": "A positive day.", "mood": 9}`)
	})

	a, err := c.Analyze(context.Background(), "Had a great day!")
	require.NoError(t, err)
	assert.Equal(t, "A positive day.", a.Summary)
	assert.Equal(t, 9, a.Mood)
}

func TestAnalyze_FencedReply(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, "```json\n{\"summary\": \"Calm.\", \"mood\": 6}\n```")
	})

	a, err := c.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Calm.", a.Summary)
	assert.Equal(t, 6, a.Mood)
}

func TestAnalyze_MalformedReplyFallsBack(t *testing.T) {
	raw := "I cannot produce JSON today."
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, raw)
	})

	a, err := c.Analyze(context.Background(), "text")
	require.NoError(t, err, "parse failures must never surface as errors")
	assert.Equal(t, raw, a.Summary)
	assert.Equal(t, 5, a.Mood)
}

func TestAnalyze_MissingMoodFallsBack(t *testing.T) {
	raw := `{"summary": "No mood key here."}`
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, raw)
	})

	a, err := c.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, raw, a.Summary)
	assert.Equal(t, 5, a.Mood)
}

func TestAnalyze_NonIntegerMoodFallsBack(t *testing.T) {
	raw := `{"summary": "S", "mood": "happy"}`
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, raw)
	})

	a, err := c.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, raw, a.Summary)
	assert.Equal(t, 5, a.Mood)
}

func TestAnalyze_OutOfRangeMoodClamped(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(w, `{"summary": "Over the moon.", "mood": 14}`)
	})

	a, err := c.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 10, a.Mood)
}

func TestAnalyze_RateLimitedThenSuccess(t *testing.T) {
	calls := 0
	c, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			writeJSON(w, map[string]any{"error": map[string]any{"message": "slow down"}})
			return
		}
		chatReply(w, `{"summary": "Made it.", "mood": 7}`)
	})

	a, err := c.Analyze(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Made it.", a.Summary)
	assert.Equal(t, 3, calls)
	// Exponential backoff: 1s before the second attempt, 2s before the third.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *slept)
}

func TestAnalyze_RateLimitExhausted(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 3, calls, "stop after three total attempts")
}

func TestAnalyze_PermanentErrorNoRetry(t *testing.T) {
	calls := 0
	c, slept := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]any{"error": map[string]any{"message": "bad key"}})
	})

	_, err := c.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), "bad key")
	assert.Equal(t, 1, calls, "auth failures must not be retried")
	assert.Empty(t, *slept)
}

func TestAnalyze_ConnectionErrorRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	var slept []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	_, err := c.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.Len(t, slept, 2)
}

func TestClampMood(t *testing.T) {
	assert.Equal(t, 1, ClampMood(-3))
	assert.Equal(t, 1, ClampMood(1))
	assert.Equal(t, 10, ClampMood(10))
	assert.Equal(t, 10, ClampMood(99))
	assert.Equal(t, 5, ClampMood(5))
}

func TestTranscribe_ReturnsTrimmedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "text", r.FormValue("response_format"))
		_, _ = w.Write([]byte("  hello from the park \n"))
	}))
	t.Cleanup(srv.Close)

	wav := writeTempWAV(t)
	c := NewClient(Config{BaseURL: srv.URL}, nil)

	text, err := c.Transcribe(context.Background(), wav)
	require.NoError(t, err)
	assert.Equal(t, "hello from the park", text)
}

func TestTranscribe_EmptyTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("   \n"))
	}))
	t.Cleanup(srv.Close)

	wav := writeTempWAV(t)
	c := NewClient(Config{BaseURL: srv.URL}, nil)

	text, err := c.Transcribe(context.Background(), wav)
	require.NoError(t, err)
	assert.Empty(t, text, "silence must come back as an empty transcript")
}

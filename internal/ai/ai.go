// Package ai talks to an OpenAI-compatible API and turns journal text
// into (summary, mood) pairs, and recorded audio into transcripts.
// All external-service logic lives here so the rest of the app stays
// testable offline.
package ai

import (
	"context"
	"errors"
)

// Classified failures of the external capability. Both are transient
// and retried; anything else propagates immediately.
var (
	ErrRateLimited = errors.New("rate limited")
	ErrConnection  = errors.New("connection failed")
)

// IsTransient reports whether err is a retryable capability failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrConnection)
}

// Analysis is the (summary, mood) pair attached to an entry. Mood is
// always within [1,10].
type Analysis struct {
	Summary string
	Mood    int
}

// Analyzer produces an Analysis for a piece of journal text. Safe to
// call repeatedly for the same text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}

// Transcriber turns a recorded WAV file into a plain transcript. An
// empty transcript means no speech was detected.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

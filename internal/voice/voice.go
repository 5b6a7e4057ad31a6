// Package voice captures microphone audio through an external recorder
// binary and turns it into a journal entry text via a transcription
// capability.
package voice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"journal/internal/ai"
	"journal/internal/logging"
)

// SampleRate is the capture rate in Hz. Whisper-style transcription
// models work well with 16 kHz mono PCM.
const SampleRate = 16000

// ErrNoSpeech means the transcript was empty after trimming. Callers
// must not persist such a capture as an entry.
var ErrNoSpeech = errors.New("no speech detected")

// ErrNoRecorder means no supported recorder binary was found on PATH.
var ErrNoRecorder = errors.New("no audio recorder found (need arecord or sox)")

// Recorder captures audio for the given duration into a WAV file.
type Recorder interface {
	Record(ctx context.Context, dst string, duration time.Duration) error
}

// ExecRecorder shells out to a command-line audio capture tool. It
// prefers ALSA's arecord and falls back to sox's rec.
type ExecRecorder struct {
	// lookPath is swapped in tests.
	lookPath func(string) (string, error)
}

// NewExecRecorder returns a recorder backed by whatever capture binary
// is installed.
func NewExecRecorder() *ExecRecorder {
	return &ExecRecorder{lookPath: exec.LookPath}
}

// NewExecRecorderWithLookup is like NewExecRecorder with binary lookup
// injected, so tests can simulate a machine without capture tools.
func NewExecRecorderWithLookup(lookPath func(string) (string, error)) *ExecRecorder {
	return &ExecRecorder{lookPath: lookPath}
}

func (r *ExecRecorder) Record(ctx context.Context, dst string, duration time.Duration) error {
	secs := strconv.Itoa(int(duration.Round(time.Second) / time.Second))
	rate := strconv.Itoa(SampleRate)

	var cmd *exec.Cmd
	switch {
	case r.has("arecord"):
		cmd = exec.CommandContext(ctx, "arecord",
			"-q", "-f", "S16_LE", "-r", rate, "-c", "1", "-d", secs, dst)
	case r.has("rec"):
		cmd = exec.CommandContext(ctx, "rec",
			"-q", dst, "rate", rate, "channels", "1", "trim", "0", secs)
	default:
		return ErrNoRecorder
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("recording failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (r *ExecRecorder) has(name string) bool {
	_, err := r.lookPath(name)
	return err == nil
}

// Capture records duration seconds of audio, transcribes it, and
// returns the trimmed transcript. The temp WAV is removed afterwards.
// An empty transcript yields ErrNoSpeech.
func Capture(ctx context.Context, rec Recorder, tr ai.Transcriber, log logging.Logger, duration time.Duration) (string, error) {
	if log == nil {
		log = logging.Nop()
	}

	tmpDir, err := os.MkdirTemp("", "journal-voice-")
	if err != nil {
		return "", fmt.Errorf("voice capture: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	wav := filepath.Join(tmpDir, "capture.wav")

	log.Info(ctx, "recording", "duration", duration.String())
	if err := rec.Record(ctx, wav, duration); err != nil {
		return "", fmt.Errorf("voice capture: %w", err)
	}

	log.Info(ctx, "transcribing")
	text, err := tr.Transcribe(ctx, wav)
	if err != nil {
		return "", fmt.Errorf("voice capture: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

package voice_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal/internal/voice"
)

type fakeRecorder struct {
	err  error
	dst  string
	took time.Duration
}

func (f *fakeRecorder) Record(_ context.Context, dst string, d time.Duration) error {
	f.dst = dst
	f.took = d
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, []byte("RIFF"), 0o600)
}

type fakeTranscriber struct {
	text string
	err  error
	path string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath string) (string, error) {
	f.path = audioPath
	return f.text, f.err
}

func TestCapture_ReturnsTrimmedTranscript(t *testing.T) {
	rec := &fakeRecorder{}
	tr := &fakeTranscriber{text: "  Today was good.  \n"}

	got, err := voice.Capture(context.Background(), rec, tr, nil, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Today was good.", got)
	assert.Equal(t, 5*time.Second, rec.took)
	assert.Equal(t, rec.dst, tr.path, "transcriber reads the file the recorder wrote")
}

func TestCapture_EmptyTranscript(t *testing.T) {
	rec := &fakeRecorder{}
	tr := &fakeTranscriber{text: "   \n"}

	_, err := voice.Capture(context.Background(), rec, tr, nil, time.Second)
	assert.ErrorIs(t, err, voice.ErrNoSpeech)
}

func TestCapture_RecorderFailure(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("device busy")}
	tr := &fakeTranscriber{}

	_, err := voice.Capture(context.Background(), rec, tr, nil, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device busy")
	assert.Empty(t, tr.path, "transcriber must not run after a failed recording")
}

func TestCapture_RemovesTempFile(t *testing.T) {
	rec := &fakeRecorder{}
	tr := &fakeTranscriber{text: "ok"}

	_, err := voice.Capture(context.Background(), rec, tr, nil, time.Second)
	require.NoError(t, err)

	_, statErr := os.Stat(rec.dst)
	assert.True(t, os.IsNotExist(statErr), "temp WAV should be gone")
}

func TestExecRecorder_NoBinary(t *testing.T) {
	rec := voice.NewExecRecorderWithLookup(func(string) (string, error) {
		return "", errors.New("not found")
	})
	err := rec.Record(context.Background(), "/tmp/x.wav", time.Second)
	assert.ErrorIs(t, err, voice.ErrNoRecorder)
}

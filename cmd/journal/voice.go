package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"journal/internal/voice"
)

var voiceDuration int

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Record a spoken entry and save its transcript",
	Long: `Record microphone audio, transcribe it, and save the transcript as a
new entry. Recording needs arecord (ALSA) or rec (sox) on PATH. If no
speech is detected, nothing is saved.`,
	Args: cobra.NoArgs,
	RunE: runVoice,
}

func init() {
	voiceCmd.Flags().IntVar(&voiceDuration, "duration", 0,
		"Recording length in seconds (default from config: 30)")
	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newApp()
	if err != nil {
		return err
	}
	defer cleanup()

	secs := voiceDuration
	if secs <= 0 {
		secs = a.cfg.Voice.Duration
	}
	dur := time.Duration(secs) * time.Second

	fmt.Printf("Recording %ds... speak now.\n", secs)
	text, err := voice.Capture(cmd.Context(), voice.NewExecRecorder(), a.ai, a.log, dur)
	if err != nil {
		return err
	}

	e, err := a.manager.Create(text)
	if err != nil {
		return err
	}

	fmt.Printf("Saved entry #%d: %s\n", e.ID, text)
	return nil
}

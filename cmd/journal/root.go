package main

import (
	"os"

	"github.com/spf13/cobra"

	"journal/internal/ai"
	"journal/internal/config"
	"journal/internal/journal"
	"journal/internal/logging"
	"journal/internal/server"
	"journal/internal/store"
)

var (
	// configDir is the CLI --config-dir flag value; empty means
	// ~/.journal.
	configDir string
	// logLevel overrides the configured log level when set.
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Personal AI journal",
	Long: `journal stores free-text diary entries and optionally annotates them
with an AI-generated summary and a 1-10 mood score. Entries can be
browsed, filtered, edited, exported to Markdown, and re-imported with
duplicate detection.`,
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("journal version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Directory holding config.yaml and the journal data (default: ~/.journal)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, or error (overrides config)")
}

// app bundles the wired components a command needs.
type app struct {
	cfg     *config.Config
	log     logging.Logger
	store   store.Store
	ai      *ai.Client
	manager *journal.Manager
}

// newApp loads the config and wires store, AI client, and lifecycle
// manager. The returned cleanup closes the store and must be deferred.
func newApp() (*app, func(), error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, func() {}, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	st, err := server.NewStore(cfg)
	if err != nil {
		return nil, func() {}, err
	}

	analyzer := ai.NewClient(ai.Config{
		BaseURL:         cfg.AI.BaseURL,
		APIKey:          cfg.AI.APIKey,
		Model:           cfg.AI.Model,
		TranscribeModel: cfg.AI.TranscribeModel,
		RequestTimeout:  cfg.AI.RequestTimeout,
	}, log)

	return &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		ai:      analyzer,
		manager: journal.New(st, analyzer, log),
	}, func() { _ = st.Close() }, nil
}

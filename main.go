package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"domatui/audio"
	"domatui/config"
	"domatui/generation"
	"domatui/session"
	"domatui/storage"
	"domatui/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	config.InitDebugLog(cfg.DataDir())

	store, err := newBlobStore(cfg)
	if err != nil {
		fmt.Printf("Failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	history := storage.NewHistoryStore(store)
	if err := history.Load(); err != nil {
		// Corrupt history is logged, not fatal; the store starts empty.
		if config.Debug {
			config.DebugLog.Printf("[main] history load: %v", err)
		}
	}

	generator, err := generation.NewGenerator(generation.Config{
		Backend: generation.Backend(cfg.Generation.Backend),
		BaseURL: cfg.Generation.BaseURL,
		Model:   cfg.Generation.Model,
		APIKey:  cfg.GenerationAPIKey(),
	})
	if err != nil {
		fmt.Printf("Failed to configure generation backend: %v\n", err)
		os.Exit(1)
	}

	var opts []session.Option
	if cfg.Audio.TranscribeURL != "" {
		transcriber, err := generation.NewWhisperTranscriber(
			cfg.Audio.TranscribeURL, cfg.TranscribeAPIKey(), cfg.Audio.TranscribeModel)
		if err != nil {
			fmt.Printf("Failed to configure transcription: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, session.WithTranscriber(transcriber))
	}

	opener := audio.Opener(audio.DefaultCommandOpener())
	if len(cfg.Audio.CaptureCommand) > 0 {
		opener = &audio.CommandOpener{
			Name: cfg.Audio.CaptureCommand[0],
			Args: cfg.Audio.CaptureCommand[1:],
		}
	}
	recorder := audio.NewRecorder(audio.NewController(opener))

	coordinator := session.NewCoordinator(history, generator, opts...)
	defer coordinator.Close()

	p := tea.NewProgram(
		ui.NewAppView(cfg, coordinator, history, recorder, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running doma: %v\n", err)
		os.Exit(1)
	}
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.History.Store {
	case "sqlite":
		return storage.NewSQLiteStore(cfg.DataDir())
	default:
		return storage.NewFileStore(cfg.DataDir())
	}
}

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type GenerationConfig struct {
	Backend   string `toml:"backend"`
	BaseURL   string `toml:"base_url"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env,omitempty"`
}

type AudioConfig struct {
	CaptureCommand   []string `toml:"capture_command,omitempty"`
	TranscribeURL    string   `toml:"transcribe_url"`
	TranscribeModel  string   `toml:"transcribe_model"`
	TranscribeKeyEnv string   `toml:"transcribe_key_env,omitempty"`
}

type HistoryConfig struct {
	Store string `toml:"store"`
}

type UserConfig struct {
	Generation GenerationConfig `toml:"generation"`
	Audio      AudioConfig      `toml:"audio"`
	History    HistoryConfig    `toml:"history"`
}

type Config struct {
	DataDirectory string
	Generation    GenerationConfig
	Audio         AudioConfig
	History       HistoryConfig
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// GenerationAPIKey resolves the backend API key from the configured
// environment variable. Keys never live in the config file itself.
func (c *Config) GenerationAPIKey() string {
	if c.Generation.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Generation.APIKeyEnv)
}

// TranscribeAPIKey resolves the transcription API key.
func (c *Config) TranscribeAPIKey() string {
	if c.Audio.TranscribeKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Audio.TranscribeKeyEnv)
}

func (c *Config) applyEnvOverrides() {
	if backend := os.Getenv("DOMA_BACKEND"); backend != "" {
		c.Generation.Backend = backend
	}
	if url := os.Getenv("DOMA_BASE_URL"); url != "" {
		c.Generation.BaseURL = url
	}
	if model := os.Getenv("DOMA_MODEL"); model != "" {
		c.Generation.Model = model
	}
	if dataDir := os.Getenv("DOMA_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if store := os.Getenv("DOMA_HISTORY_STORE"); store != "" {
		c.History.Store = store
	}
}

func CheckDebug() bool {
	debug := os.Getenv("DOMA_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: debug output may include prompt text
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	// Debug flips on only once the log is writable; callers gate their
	// Printf calls on it.
	Debug = true
	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (DOMA_DEBUG=%s) ===", os.Getenv("DOMA_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	defaults := DefaultUserConfig()
	cfg := &Config{
		DataDirectory: "~/.local/share/doma",
		Generation:    defaults.Generation,
		Audio:         defaults.Audio,
		History:       defaults.History,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	// The data-dir override must land before the user config is read, or
	// the override would relocate the history blob but not config.toml.
	if dataDir := os.Getenv("DOMA_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.Generation = userCfg.Generation
	cfg.Audio = userCfg.Audio
	cfg.History = userCfg.History

	cfg.applyEnvOverrides()

	dataDir = cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}

package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/doma",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Generation: GenerationConfig{
			Backend:   "openai",
			BaseURL:   "https://api.deepseek.com",
			Model:     "deepseek-chat",
			APIKeyEnv: "DEEPSEEK_API_KEY",
		},
		Audio: AudioConfig{
			TranscribeURL:    "https://api.openai.com/v1",
			TranscribeModel:  "whisper-1",
			TranscribeKeyEnv: "OPENAI_API_KEY",
		},
		History: HistoryConfig{
			Store: "file",
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# DOMA System Configuration
# Location: ~/.config/doma/settings.toml
# This file uses TOML format: https://toml.io

# Directory where conversation history and user config are stored
data_directory = "~/.local/share/doma"
`
}

func GenerateUserConfigTemplate() string {
	return `# DOMA User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[generation]
# Text generation backend: "endpoint", "openai", "anthropic", or "ollama"
backend = "openai"

# Base URL for the backend ("endpoint" requires one; others have defaults)
base_url = "https://api.deepseek.com"

# Model used for replies
model = "deepseek-chat"

# Environment variable holding the API key (never put keys in this file)
api_key_env = "DEEPSEEK_API_KEY"

[audio]
# Command used to capture microphone audio (defaults to ffmpeg)
# capture_command = ["ffmpeg", "-f", "pulse", "-i", "default", "-c:a", "libopus", "-f", "webm", "-"]

# Whisper-compatible transcription endpoint (leave empty to disable voice)
transcribe_url = "https://api.openai.com/v1"

# Transcription model
transcribe_model = "whisper-1"

# Environment variable holding the transcription API key
transcribe_key_env = "OPENAI_API_KEY"

[history]
# Conversation history store: "file" or "sqlite"
store = "file"
`
}

// Package config provides configuration for the voice agent.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the voice agent configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Provider credentials
	AssemblyAIAPIKey string
	GeminiAPIKey     string
	MurfAPIKey       string

	// Provider endpoints (overridable for tests)
	AssemblyAIBaseURL string
	GeminiBaseURL     string
	MurfBaseURL       string

	// LLM settings
	LLMModel         string
	MaxHistoryLength int

	// TTS settings
	DefaultVoiceID    string
	DefaultVoiceStyle string
	MaxTTSTextLength  int

	// Timeouts
	STTTimeout time.Duration
	LLMTimeout time.Duration
	TTSTimeout time.Duration

	// Session storage: "memory" or "sqlite"
	SessionStore string
	DatabaseURL  string

	// Upload handling
	TempUploadDir string
	MaxUploadSize int64

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8000),
		AssemblyAIAPIKey:  getEnv("ASSEMBLYAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		MurfAPIKey:        getEnv("MURF_API_KEY", ""),
		AssemblyAIBaseURL: getEnv("ASSEMBLYAI_BASE_URL", "https://api.assemblyai.com"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		MurfBaseURL:       getEnv("MURF_BASE_URL", "https://api.murf.ai"),
		LLMModel:          getEnv("LLM_MODEL", "gemini-2.5-flash"),
		MaxHistoryLength:  getEnvInt("MAX_HISTORY_LENGTH", 50),
		DefaultVoiceID:    getEnv("DEFAULT_VOICE_ID", "en-US-natalie"),
		DefaultVoiceStyle: getEnv("DEFAULT_VOICE_STYLE", "Conversational"),
		MaxTTSTextLength:  getEnvInt("MAX_TTS_TEXT_LENGTH", 3000),
		STTTimeout:        time.Duration(getEnvInt("STT_TIMEOUT_MS", 120000)) * time.Millisecond,
		LLMTimeout:        time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		TTSTimeout:        time.Duration(getEnvInt("TTS_TIMEOUT_MS", 30000)) * time.Millisecond,
		SessionStore:      getEnv("SESSION_STORE", "memory"),
		DatabaseURL:       getEnv("DATABASE_URL", "file:voice_agent.db?cache=shared&mode=rwc"),
		TempUploadDir:     getEnv("TEMP_UPLOAD_DIR", "temp_uploads"),
		MaxUploadSize:     int64(getEnvInt("MAX_UPLOAD_SIZE", 50*1024*1024)),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// APIKeyStatus reports which provider credentials are present.
func (c *Config) APIKeyStatus() map[string]bool {
	return map[string]bool{
		"assemblyai": c.AssemblyAIAPIKey != "",
		"gemini":     c.GeminiAPIKey != "",
		"murf":       c.MurfAPIKey != "",
	}
}

// AllAPIsConfigured reports whether every provider credential is present.
func (c *Config) AllAPIsConfigured() bool {
	for _, ok := range c.APIKeyStatus() {
		if !ok {
			return false
		}
	}
	return true
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

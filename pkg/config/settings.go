package config

import (
	"os"
	"strconv"
)

const (
	defaultMaxTokens     = 192
	defaultContextLength = 2048
	defaultKeepAlive     = "5m"
)

// Settings are the process-wide generation limits applied to every inference
// call: an output-token cap, a context-length hint and the server-side
// keep-alive directive. They are read once at process start and are not
// adjustable per call.
type Settings struct {
	MaxTokens     int
	ContextLength int
	KeepAlive     string
}

// DefaultSettings returns the built-in generation limits.
func DefaultSettings() Settings {
	return Settings{
		MaxTokens:     defaultMaxTokens,
		ContextLength: defaultContextLength,
		KeepAlive:     defaultKeepAlive,
	}
}

// LoadSettings reads the generation limits from the environment, keeping the
// defaults for absent or malformed values.
func LoadSettings() Settings {
	s := DefaultSettings()
	if v, err := strconv.Atoi(os.Getenv("CLOUDWARDEN_AI_MAX_TOKENS")); err == nil && v > 0 {
		s.MaxTokens = v
	}
	if v, err := strconv.Atoi(os.Getenv("CLOUDWARDEN_AI_CTX")); err == nil && v > 0 {
		s.ContextLength = v
	}
	if v := os.Getenv("CLOUDWARDEN_KEEP_ALIVE"); v != "" {
		s.KeepAlive = v
	}
	return s
}

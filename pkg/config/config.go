package config

import (
	"strings"
)

// Environment variables read at startup.
const (
	EnvEnvFile       = "GAIA_ENV_FILE"
	EnvQuestionsFile = "GAIA_QUESTIONS_FILE"
	EnvLogLevel      = "GAIA_LOG_LEVEL"
	EnvVerbose       = "GAIA_VERBOSE"
)

const (
	DefaultEnvFile       = ".env"
	DefaultQuestionsFile = "questions.txt"
	DefaultLogLevel      = "warn"
)

// Config holds process-level runtime configuration.
type Config struct {
	EnvFile       string
	QuestionsFile string
	LogLevel      string
	Verbose       bool
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		EnvFile:       DefaultEnvFile,
		QuestionsFile: DefaultQuestionsFile,
		LogLevel:      DefaultLogLevel,
		Verbose:       false,
	}
}

// FromEnv overlays the process environment onto DefaultConfig.
func FromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()
	if getenv == nil {
		return cfg
	}
	if v := getenv(EnvEnvFile); v != "" {
		cfg.EnvFile = v
	}
	if v := getenv(EnvQuestionsFile); v != "" {
		cfg.QuestionsFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	switch strings.ToLower(strings.TrimSpace(getenv(EnvVerbose))) {
	case "1", "true", "yes", "on":
		cfg.Verbose = true
	}
	return Normalize(cfg)
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.EnvFile = strings.TrimSpace(cfg.EnvFile)
	cfg.QuestionsFile = strings.TrimSpace(cfg.QuestionsFile)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if cfg.EnvFile == "" {
		cfg.EnvFile = DefaultEnvFile
	}
	if cfg.QuestionsFile == "" {
		cfg.QuestionsFile = DefaultQuestionsFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}

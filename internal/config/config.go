package config

import (
	"fmt"
	"os"
)

type Config struct {
	Deepgram    DeepgramConfig    `yaml:"deepgram"`
	Formatter   FormatterConfig   `yaml:"formatter"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Agent       AgentConfig       `yaml:"agent"`
}

type DeepgramConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type FormatterConfig struct {
	GapThreshold   float64 `yaml:"gap_threshold"`
	BridgeDistance int     `yaml:"bridge_distance"`
	ContextWords   int     `yaml:"context_words"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Temp     string `yaml:"temp"`
	Database string `yaml:"database"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// AgentConfig carries settings consumed by the orchestration layer.
// The transcription core only passes them through.
type AgentConfig struct {
	DefaultRole string `yaml:"default_role"`
}

func (c *Config) Validate() error {
	if c.Deepgram.APIKey == "" {
		c.Deepgram.APIKey = os.Getenv("DEEPGRAM_API_KEY")
	}
	if c.Deepgram.Model == "" {
		c.Deepgram.Model = "nova-3"
	}
	if c.Deepgram.TimeoutSeconds == 0 {
		c.Deepgram.TimeoutSeconds = 300
	}
	if c.Deepgram.TimeoutSeconds < 0 {
		return fmt.Errorf("deepgram.timeout_seconds must be positive")
	}

	if c.Formatter.GapThreshold == 0 {
		c.Formatter.GapThreshold = 1.5
	}
	if c.Formatter.GapThreshold < 0 {
		return fmt.Errorf("formatter.gap_threshold must be positive")
	}
	if c.Formatter.BridgeDistance < 0 {
		return fmt.Errorf("formatter.bridge_distance must not be negative")
	}
	if c.Formatter.BridgeDistance == 0 {
		c.Formatter.BridgeDistance = 1
	}
	if c.Formatter.ContextWords == 0 {
		c.Formatter.ContextWords = 5
	}
	if c.Formatter.ContextWords < 0 {
		return fmt.Errorf("formatter.context_words must be positive")
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}
	if c.Paths.Database == "" {
		c.Paths.Database = "data/transcripts.db"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

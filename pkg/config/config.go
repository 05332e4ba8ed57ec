package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in ai_agent.backend.
const (
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

// AIAgentConfig configures the AI analysis agent.
type AIAgentConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Backend        string  `yaml:"backend"`
	Model          string  `yaml:"model"`
	FallbackModel  string  `yaml:"fallback_model"`
	BaseURL        string  `yaml:"base_url"`
	APIKey         string  `yaml:"api_key,omitempty"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// ScanningConfig bounds how analysis work is fanned out over findings.
type ScanningConfig struct {
	ParallelWorkers int `yaml:"parallel_workers"`
}

// ReportingConfig holds output branding.
type ReportingConfig struct {
	CompanyName string `yaml:"company_name"`
}

// Config is the full CloudWarden configuration.
type Config struct {
	AIAgent   AIAgentConfig   `yaml:"ai_agent"`
	Scanning  ScanningConfig  `yaml:"scanning"`
	Reporting ReportingConfig `yaml:"reporting"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		AIAgent: AIAgentConfig{
			Enabled:        true,
			Backend:        BackendOllama,
			Model:          "llama3.1:8b",
			FallbackModel:  "deepseek-r1:7b",
			BaseURL:        "http://localhost:11434",
			Temperature:    0.1,
			TimeoutSeconds: 120,
		},
		Scanning:  ScanningConfig{ParallelWorkers: 4},
		Reporting: ReportingConfig{CompanyName: "Nova Titan Systems"},
	}
}

// Load reads the YAML file at path when it exists, layers environment
// overrides on top and validates the result. An empty or missing path yields
// defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnvironment() {
	if v := os.Getenv("CLOUDWARDEN_AI_MODEL"); v != "" {
		c.AIAgent.Model = v
	}
	if v := os.Getenv("CLOUDWARDEN_AI_BASE_URL"); v != "" {
		c.AIAgent.BaseURL = v
	}
}

// Validate checks the configuration for values the agent cannot run with.
func (c *Config) Validate() error {
	if c.AIAgent.Enabled && c.AIAgent.Model == "" {
		return fmt.Errorf("ai_agent.model must be set when the agent is enabled")
	}
	if c.Scanning.ParallelWorkers <= 0 {
		return fmt.Errorf("scanning.parallel_workers must be positive")
	}
	return nil
}

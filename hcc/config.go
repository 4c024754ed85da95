package hcc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "hccassist.yaml"

// Config aggregates runtime settings for the analysis pipeline.
type Config struct {
	// AIEndpoint is the base URL of the language-model service. When empty
	// the AI strategy is skipped entirely and every run uses the rule
	// strategy.
	AIEndpoint string `yaml:"aiEndpoint"`
	// AIModel names the model requested from the service.
	AIModel string `yaml:"aiModel"`
	// AITimeoutMs bounds one AI extraction call; expiry triggers fallback.
	AITimeoutMs int `yaml:"aiTimeoutMs"`
	// ConversionFactor is the annualized reimbursement per unit of relative
	// weight used by the impact calculation.
	ConversionFactor float64 `yaml:"conversionFactor"`
	// MinConfidence suppresses recommendations scoring below it, in [0,100].
	MinConfidence int `yaml:"minConfidence"`
	// QualifierWindow is the token distance within which a qualifier phrase
	// attaches to the preceding condition match.
	QualifierWindow int `yaml:"qualifierWindow"`
	// CacheTTLSeconds controls the optional extraction cache. Zero disables
	// caching.
	CacheTTLSeconds int `yaml:"cacheTtlSeconds"`
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AIModel == "" {
		c.AIModel = "llama3.2:3b"
	}
	if c.AITimeoutMs <= 0 {
		c.AITimeoutMs = 2000
	}
	if c.ConversionFactor <= 0 {
		c.ConversionFactor = 17000
	}
	if c.MinConfidence < 0 {
		c.MinConfidence = 0
	}
	if c.MinConfidence == 0 {
		c.MinConfidence = 40
	}
	if c.MinConfidence > 100 {
		c.MinConfidence = 100
	}
	if c.QualifierWindow <= 0 {
		c.QualifierWindow = 12
	}
}

// LoadConfig loads configuration from the given path or the default
// hccassist.yaml. A missing file yields the defaults rather than an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	cfg.ApplyDefaults()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

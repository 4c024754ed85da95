package hcc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, "llama3.2:3b", cfg.AIModel)
	assert.Equal(t, 2000, cfg.AITimeoutMs)
	assert.InDelta(t, 17000, cfg.ConversionFactor, 1e-9)
	assert.Equal(t, 40, cfg.MinConfidence)
	assert.Equal(t, 12, cfg.QualifierWindow)
	assert.Empty(t, cfg.AIEndpoint, "AI strategy must stay disabled without an endpoint")
}

func TestConfig_MinConfidenceClamped(t *testing.T) {
	cfg := Config{MinConfidence: 250}
	cfg.ApplyDefaults()
	assert.Equal(t, 100, cfg.MinConfidence)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.AITimeoutMs)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hccassist.yaml")
	body := "aiEndpoint: http://localhost:11434\naiTimeoutMs: 500\nminConfidence: 55\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", cfg.AIEndpoint)
	assert.Equal(t, 500, cfg.AITimeoutMs)
	assert.Equal(t, 55, cfg.MinConfidence)
	assert.InDelta(t, 17000, cfg.ConversionFactor, 1e-9, "unset fields still get defaults")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "hccassist.yaml")
	in := Config{AIEndpoint: "http://localhost:11434", MinConfidence: 60}
	require.NoError(t, SaveConfig(path, in))

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", out.AIEndpoint)
	assert.Equal(t, 60, out.MinConfidence)
}

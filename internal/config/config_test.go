package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Site)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, "json", cfg.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"yaml format", func(c *Config) { c.Format = "yaml" }, false},
		{"toml format", func(c *Config) { c.Format = "toml" }, true},
		{"empty output", func(c *Config) { c.OutputDir = " " }, true},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

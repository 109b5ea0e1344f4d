package config

import (
	"fmt"
	"strings"
)

// Config is the cozydocs tool configuration, read from cozydocs.yaml, the
// environment (COZYDOCS_*) and command line flags.
type Config struct {
	Site       string `mapstructure:"site"`       // site config file; empty uses the embedded one
	OutputDir  string `mapstructure:"outputDir"`  // where build writes config.<format>
	Format     string `mapstructure:"format"`     // json or yaml
	ContentDir string `mapstructure:"contentDir"` // Markdown sources, for link checks
	Strict     bool   `mapstructure:"strict"`     // warnings fail lint and build
	Port       int    `mapstructure:"port"`
	LogLevel   string `mapstructure:"logLevel"`
	LogJSON    bool   `mapstructure:"logJSON"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		OutputDir:  "dist",
		Format:     "json",
		ContentDir: "docs",
		Port:       5173,
		LogLevel:   "info",
	}
}

// Validate checks the values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("format must be json or yaml, got %q", c.Format)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("outputDir cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

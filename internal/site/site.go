// Package site owns the documentation site's navigation configuration and
// the parsers for authored configuration files.
package site

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/molbal/cozyui-docs/internal/model"
	"gopkg.in/yaml.v2"
)

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for formats other than yaml and json.
var ErrUnsupportedFormat = errors.New("unsupported config format")

//go:embed site.yaml
var embedded []byte

var (
	once    sync.Once
	current model.SiteConfig
)

// Config returns the site configuration. The embedded file is parsed on first
// use; every call returns an independent copy.
func Config() model.SiteConfig {
	once.Do(func() {
		cfg, err := Parse(embedded, FormatYAML)
		if err != nil {
			panic(fmt.Sprintf("site: embedded configuration is invalid: %v", err))
		}
		current = cfg
	})
	return current.Clone()
}

// Source returns the embedded configuration file as authored.
func Source() []byte {
	return bytes.Clone(embedded)
}

// Load reads a configuration file, choosing the format from its extension.
func Load(path string) (model.SiteConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.SiteConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SiteConfig{}, fmt.Errorf("read site config %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return model.SiteConfig{}, fmt.Errorf("parse site config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Config() when path is empty.
func LoadOrDefault(path string) (model.SiteConfig, error) {
	if path == "" {
		return Config(), nil
	}
	return Load(path)
}

// Parse decodes data. Unknown keys are rejected so typos do not silently
// drop navigation entries.
func Parse(data []byte, format string) (model.SiteConfig, error) {
	var cfg model.SiteConfig
	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return model.SiteConfig{}, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return model.SiteConfig{}, err
		}
	default:
		return model.SiteConfig{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	cfg.Normalize()
	return cfg, nil
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

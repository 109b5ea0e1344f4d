// Package export writes the site configuration in the shape the site
// generator loads.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/molbal/cozyui-docs/internal/markup"
	"github.com/molbal/cozyui-docs/internal/model"
	"gopkg.in/yaml.v2"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Marshal encodes cfg. Sidebar sections without items are written as empty
// lists, never null.
func Marshal(cfg model.SiteConfig, format string) ([]byte, error) {
	cfg = cfg.Clone()
	cfg.Normalize()
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Render returns a copy of cfg with footer inline markup rendered to
// sanitized HTML, ready for the generator.
func Render(cfg model.SiteConfig) (model.SiteConfig, error) {
	out := cfg.Clone()
	f := out.ThemeConfig.Footer
	if f == nil {
		return out, nil
	}
	msg, err := markup.Inline(f.Message)
	if err != nil {
		return model.SiteConfig{}, fmt.Errorf("footer message: %w", err)
	}
	copyright, err := markup.Inline(f.Copyright)
	if err != nil {
		return model.SiteConfig{}, fmt.Errorf("footer copyright: %w", err)
	}
	f.Message, f.Copyright = msg, copyright
	return out, nil
}

// FileName is the output file name for format.
func FileName(format string) string {
	return "config." + format
}

// Write atomically replaces path with the encoded configuration.
func Write(path string, cfg model.SiteConfig, format string) error {
	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

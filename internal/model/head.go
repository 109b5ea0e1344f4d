package model

import (
	"encoding/json"
	"fmt"
)

// HeadTag is an element injected into the document head of every page.
//
// Authors write it as {tag, attrs, content}; the generator expects the tuple
// form ["tag", {attrs}] or ["tag", {attrs}, "content"], which is what the JSON
// encoding produces and accepts.
type HeadTag struct {
	Tag     string            `yaml:"tag"`
	Attrs   map[string]string `yaml:"attrs,omitempty"`
	Content string            `yaml:"content,omitempty"`
}

// MarshalJSON encodes the tag in tuple form.
func (h HeadTag) MarshalJSON() ([]byte, error) {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	tuple := []any{h.Tag, attrs}
	if h.Content != "" {
		tuple = append(tuple, h.Content)
	}
	return json.Marshal(tuple)
}

// UnmarshalJSON decodes the tuple form.
func (h *HeadTag) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("head tag must be an array: %w", err)
	}
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("head tag must have 2 or 3 elements, got %d", len(parts))
	}

	var out HeadTag
	if err := json.Unmarshal(parts[0], &out.Tag); err != nil {
		return fmt.Errorf("head tag name: %w", err)
	}
	if err := json.Unmarshal(parts[1], &out.Attrs); err != nil {
		return fmt.Errorf("head tag %q attributes: %w", out.Tag, err)
	}
	if len(out.Attrs) == 0 {
		out.Attrs = nil
	}
	if len(parts) == 3 {
		if err := json.Unmarshal(parts[2], &out.Content); err != nil {
			return fmt.Errorf("head tag %q content: %w", out.Tag, err)
		}
	}
	*h = out
	return nil
}

func (h HeadTag) clone() HeadTag {
	out := h
	if h.Attrs != nil {
		out.Attrs = make(map[string]string, len(h.Attrs))
		for k, v := range h.Attrs {
			out.Attrs[k] = v
		}
	}
	return out
}

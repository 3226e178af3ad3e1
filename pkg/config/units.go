package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FontSize is a size in pixels written as a number or with a "px" suffix.
type FontSize float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *FontSize) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: font size must be a number", node.Line)
	}
	raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(node.Value), "px"))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("line %d: invalid font size %q", node.Line, node.Value)
	}
	*s = FontSize(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s FontSize) MarshalYAML() (any, error) {
	return strconv.FormatFloat(float64(s), 'f', -1, 64) + "px", nil
}

// Duration is a time.Duration written in Go duration syntax, like "1.5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string", node.Line)
	}
	v, err := time.ParseDuration(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if v < 0 {
		return fmt.Errorf("line %d: duration %q is negative", node.Line, node.Value)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Package config loads scene descriptions from YAML.
//
// A scene file lists the widgets to place and, optionally, a script of
// pointer, key and native events to replay against them:
//
//	version: v1
//	scene:
//	  width: 300
//	  height: 600
//	  touch: true
//	textInputs:
//	  - name: username
//	    x: 150
//	    y: 100
//	    maxLength: 12
//	    fontSize: 18px
//	script:
//	  - action: press
//	    x: 150
//	    y: 100
//	  - action: type
//	    text: ada
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/caret/pkg/rendering"
	"github.com/go-drift/caret/pkg/widgets"
)

// SchemaMajor is the only scene file major version this package reads.
const SchemaMajor = "v1"

// File is a decoded scene file.
type File struct {
	Version    string            `yaml:"version"`
	Scene      SceneConfig       `yaml:"scene"`
	Fonts      []FontConfig      `yaml:"fonts,omitempty"`
	TextInputs []TextInputConfig `yaml:"textInputs,omitempty"`
	Buttons    []ButtonConfig    `yaml:"buttons,omitempty"`
	Labels     []LabelConfig     `yaml:"labels,omitempty"`
	Script     []Step            `yaml:"script,omitempty"`

	// dir is where relative font paths are resolved.
	dir string
}

// SceneConfig describes the scene itself.
type SceneConfig struct {
	Width      float64 `yaml:"width,omitempty"`
	Height     float64 `yaml:"height,omitempty"`
	Background string  `yaml:"background,omitempty"`
	// Touch makes the replayed device report a touch screen.
	Touch bool `yaml:"touch,omitempty"`
}

// FontConfig registers a font family from a TrueType or OpenType file.
type FontConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// TextInputConfig places a text input box.
type TextInputConfig struct {
	Name        string   `yaml:"name"`
	X           float64  `yaml:"x"`
	Y           float64  `yaml:"y"`
	Width       float64  `yaml:"width,omitempty"`
	Height      float64  `yaml:"height,omitempty"`
	MaxLength   int      `yaml:"maxLength,omitempty"`
	FontSize    FontSize `yaml:"fontSize,omitempty"`
	FontFamily  string   `yaml:"fontFamily,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	// Accept is "default", "all", or the exact set of allowed characters
	// prefixed with "only:".
	Accept string `yaml:"accept,omitempty"`
}

// ButtonConfig places a button.
type ButtonConfig struct {
	Name       string   `yaml:"name"`
	Text       string   `yaml:"text"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Width      float64  `yaml:"width,omitempty"`
	Height     float64  `yaml:"height,omitempty"`
	Scale      float64  `yaml:"scale,omitempty"`
	Color      string   `yaml:"color,omitempty"`
	TextColor  string   `yaml:"textColor,omitempty"`
	FontSize   FontSize `yaml:"fontSize,omitempty"`
	FontFamily string   `yaml:"fontFamily,omitempty"`
}

// LabelConfig places a label.
type LabelConfig struct {
	Name            string   `yaml:"name"`
	Text            string   `yaml:"text"`
	X               float64  `yaml:"x"`
	Y               float64  `yaml:"y"`
	Width           float64  `yaml:"width,omitempty"`
	FontSize        FontSize `yaml:"fontSize,omitempty"`
	FontFamily      string   `yaml:"fontFamily,omitempty"`
	TextColor       string   `yaml:"textColor,omitempty"`
	Background      string   `yaml:"background,omitempty"`
	BackgroundAlpha *float64 `yaml:"backgroundAlpha,omitempty"`
	Align           string   `yaml:"align,omitempty"`
	Interactive     bool     `yaml:"interactive,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Parse decodes and validates a scene file. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty scene file")
		}
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the version, names, colors and script of a decoded file.
func (f *File) Validate() error {
	if err := checkVersion(f.Version); err != nil {
		return err
	}
	if f.Scene.Width < 0 || f.Scene.Height < 0 {
		return fmt.Errorf("scene size must not be negative")
	}
	if _, err := optionalColor(f.Scene.Background); err != nil {
		return fmt.Errorf("scene.background: %w", err)
	}

	for i, font := range f.Fonts {
		if strings.TrimSpace(font.Name) == "" || strings.TrimSpace(font.Path) == "" {
			return fmt.Errorf("fonts[%d]: name and path are required", i)
		}
	}

	names := make(map[string]string)
	claim := func(kind, name string) error {
		if name == "" {
			return nil
		}
		if other, ok := names[name]; ok {
			return fmt.Errorf("%s %q: name already used by a %s", kind, name, other)
		}
		names[name] = kind
		return nil
	}

	for i, in := range f.TextInputs {
		if err := claim("text input", in.Name); err != nil {
			return err
		}
		if in.MaxLength < 0 {
			return fmt.Errorf("textInputs[%d]: maxLength must not be negative", i)
		}
		if _, err := parseAccept(in.Accept); err != nil {
			return fmt.Errorf("textInputs[%d]: %w", i, err)
		}
	}
	for i, b := range f.Buttons {
		if err := claim("button", b.Name); err != nil {
			return err
		}
		for field, value := range map[string]string{"color": b.Color, "textColor": b.TextColor} {
			if _, err := optionalColor(value); err != nil {
				return fmt.Errorf("buttons[%d].%s: %w", i, field, err)
			}
		}
	}
	for i, l := range f.Labels {
		if err := claim("label", l.Name); err != nil {
			return err
		}
		for field, value := range map[string]string{"background": l.Background, "textColor": l.TextColor} {
			if _, err := optionalColor(value); err != nil {
				return fmt.Errorf("labels[%d].%s: %w", i, field, err)
			}
		}
		if _, err := widgets.ParseLabelAlign(l.Align); err != nil {
			return fmt.Errorf("labels[%d]: %w", i, err)
		}
		if a := l.BackgroundAlpha; a != nil && (*a < 0 || *a > 1) {
			return fmt.Errorf("labels[%d]: backgroundAlpha must be between 0 and 1", i)
		}
	}

	for i, step := range f.Script {
		if err := step.validate(f); err != nil {
			return fmt.Errorf("script[%d]: %w", i, err)
		}
	}
	return nil
}

// TextInputIndex returns the position of the named text input, or -1.
func (f *File) TextInputIndex(name string) int {
	for i, in := range f.TextInputs {
		if in.Name == name {
			return i
		}
	}
	return -1
}

func checkVersion(version string) error {
	v := strings.TrimSpace(version)
	if v == "" {
		return fmt.Errorf("version is required (e.g. %q)", SchemaMajor)
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid version %q", version)
	}
	if major := semver.Major(v); major != SchemaMajor {
		return fmt.Errorf("unsupported version %q: this build reads %s scene files", version, SchemaMajor)
	}
	return nil
}

func optionalColor(s string) (rendering.Color, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return rendering.ParseColor(s)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/caret/pkg/errors"
	"github.com/go-drift/caret/pkg/rendering"
	"github.com/go-drift/caret/pkg/scene"
	"github.com/go-drift/caret/pkg/textedit"
	"github.com/go-drift/caret/pkg/widgets"
)

// Built holds the widgets created from a file, in file order.
type Built struct {
	TextInputs []*widgets.TextInputBox
	Buttons    []*widgets.Button
	Labels     []*widgets.Label
}

// SceneOptions returns the scene size and background from the file.
// Fields left at zero keep the scene defaults.
func (f *File) SceneOptions() scene.Options {
	background, _ := optionalColor(f.Scene.Background)
	return scene.Options{
		Width:      f.Scene.Width,
		Height:     f.Scene.Height,
		Background: background,
	}
}

// LoadFonts registers the file's fonts with fonts. Relative paths are
// resolved against the directory the file was loaded from.
func (f *File) LoadFonts(fonts *rendering.FontManager) error {
	for _, font := range f.Fonts {
		path := font.Path
		if !filepath.IsAbs(path) && f.dir != "" {
			path = filepath.Join(f.dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read font %q: %w", font.Name, err)
		}
		if err := fonts.RegisterFont(font.Name, data); err != nil {
			return err
		}
		errors.Logger().Debug("font registered", "name", font.Name, "path", path)
	}
	return nil
}

// Build loads the file's fonts and adds its widgets to sc.
func (f *File) Build(sc *scene.Scene) (*Built, error) {
	if err := f.LoadFonts(sc.Fonts()); err != nil {
		return nil, err
	}

	built := &Built{}
	for _, in := range f.TextInputs {
		in := in
		accept, err := parseAccept(in.Accept)
		if err != nil {
			return nil, fmt.Errorf("text input %q: %w", in.Name, err)
		}
		box := widgets.NewTextInputBox(sc, widgets.TextInputConfig{
			Name:        in.Name,
			X:           in.X,
			Y:           in.Y,
			Width:       in.Width,
			Height:      in.Height,
			MaxLength:   in.MaxLength,
			FontSize:    float64(in.FontSize),
			FontFamily:  in.FontFamily,
			Placeholder: in.Placeholder,
			Accept:      accept,
			OnSubmit: func(value string) {
				errors.Logger().Info("text submitted", "name", in.Name, "value", value)
			},
		})
		sc.Add(box)
		built.TextInputs = append(built.TextInputs, box)
	}

	for _, b := range f.Buttons {
		config := widgets.DefaultButtonConfig()
		config.Name = b.Name
		config.Text = b.Text
		config.X, config.Y = b.X, b.Y
		if b.Width > 0 {
			config.Width = b.Width
		}
		if b.Height > 0 {
			config.Height = b.Height
		}
		if b.Scale > 0 {
			config.Scale = b.Scale
		}
		if b.FontSize > 0 {
			config.FontSize = float64(b.FontSize)
		}
		if b.FontFamily != "" {
			config.FontFamily = b.FontFamily
		}
		if c, err := optionalColor(b.Color); err == nil && b.Color != "" {
			config.Color = c
		}
		if c, err := optionalColor(b.TextColor); err == nil && b.TextColor != "" {
			config.TextColor = c
		}
		name := b.Name
		config.OnClick = func() {
			errors.Logger().Info("button clicked", "name", name)
		}
		button := widgets.NewButton(sc, config)
		sc.Add(button)
		built.Buttons = append(built.Buttons, button)
	}

	for _, l := range f.Labels {
		config := widgets.DefaultLabelConfig()
		config.Name = l.Name
		config.X, config.Y = l.X, l.Y
		if l.Width > 0 {
			config.Width = l.Width
			config.FixedWidth = true
		}
		if l.FontSize > 0 {
			config.FontSize = float64(l.FontSize)
			config.MaxFontSize = float64(l.FontSize)
		}
		if l.FontFamily != "" {
			config.FontFamily = l.FontFamily
		}
		if c, err := optionalColor(l.TextColor); err == nil && l.TextColor != "" {
			config.TextColor = c
		}
		if c, err := optionalColor(l.Background); err == nil && l.Background != "" {
			config.BackgroundColor = c
		}
		if l.BackgroundAlpha != nil {
			config.BackgroundAlpha = *l.BackgroundAlpha
		}
		align, err := widgets.ParseLabelAlign(l.Align)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", l.Name, err)
		}
		config.Align = align

		label := widgets.NewLabel(sc, l.Text, config)
		if l.Interactive {
			name := l.Name
			label.SetInteractive(func() {
				errors.Logger().Info("label clicked", "name", name)
			})
		}
		sc.Add(label)
		built.Labels = append(built.Labels, label)
	}
	return built, nil
}

func parseAccept(s string) (textedit.AcceptFunc, error) {
	switch {
	case s == "" || s == "default":
		return textedit.DefaultAccept, nil
	case s == "all":
		return textedit.AcceptAll, nil
	case strings.HasPrefix(s, "only:"):
		set := strings.TrimPrefix(s, "only:")
		if set == "" {
			return nil, fmt.Errorf("accept %q lists no characters", s)
		}
		return textedit.AcceptRunes(set), nil
	default:
		return nil, fmt.Errorf("unknown accept rule %q", s)
	}
}

package rendering

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-drift/caret/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// DefaultFontFamily is the family used when a style names an
	// unregistered font.
	DefaultFontFamily = "Go"
)

// FontStyle represents normal or italic text styles.
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color      Color
	FontFamily string
	FontSize   float64
	FontStyle  FontStyle
}

// TextMeasurer reports the advance width of a run of text.
type TextMeasurer interface {
	MeasureWidth(text string, style TextStyle) float64
}

// TextLayouter measures and wraps text. FontManager implements it.
type TextLayouter interface {
	TextMeasurer
	LayoutText(text string, style TextStyle, maxWidth float64) *TextLayout
}

// TextLine represents a single laid-out line of text.
type TextLine struct {
	Text  string
	Width float64
}

// TextLayout contains measured text metrics.
type TextLayout struct {
	Text       string
	Style      TextStyle
	Size       Size
	Ascent     float64
	LineHeight float64
	Lines      []TextLine
}

type faceKey struct {
	family string
	size   float64
}

// FontManager resolves text styles to font faces and measures text.
// It is safe for concurrent use.
type FontManager struct {
	mu          sync.Mutex
	fonts       map[string]*opentype.Font
	faces       map[faceKey]font.Face
	defaultName string
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the Go font families
// registered: "Go", "Go Italic", "Go Bold" and "Go Mono".
func NewFontManager() (*FontManager, error) {
	m := &FontManager{
		fonts:       make(map[string]*opentype.Font),
		faces:       make(map[faceKey]font.Face),
		defaultName: DefaultFontFamily,
	}
	bundled := []struct {
		name string
		data []byte
	}{
		{"Go", goregular.TTF},
		{"Go Italic", goitalic.TTF},
		{"Go Bold", gobold.TTF},
		{"Go Mono", gomono.TTF},
	}
	for _, b := range bundled {
		if err := m.RegisterFont(b.name, b.data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DefaultFontManagerErr returns a shared font manager with the bundled fonts.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.Error{
				Op:   "rendering.DefaultFontManager",
				Kind: errors.KindRender,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns the shared font manager, or nil if the bundled
// fonts failed to load.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers a font family from TrueType or OpenType data.
// Family names are matched case-insensitively.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	key := strings.ToLower(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[key] = f
	for k := range m.faces {
		if k.family == key {
			delete(m.faces, k)
		}
	}
	return nil
}

// HasFont reports whether a family is registered.
func (m *FontManager) HasFont(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.fonts[strings.ToLower(name)]
	return ok
}

// Face resolves a font face for the given style. Unknown families fall back
// to the default family; italic styles prefer a registered "<family> Italic".
func (m *FontManager) Face(style TextStyle) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.faceLocked(style)
}

func (m *FontManager) faceLocked(style TextStyle) (font.Face, error) {
	family := m.resolveFamilyLocked(style)
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	key := faceKey{family: family, size: size}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	f, ok := m.fonts[family]
	if !ok {
		return nil, fmt.Errorf("font family %q not registered", family)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[key] = face
	return face, nil
}

func (m *FontManager) resolveFamilyLocked(style TextStyle) string {
	family := strings.ToLower(style.FontFamily)
	if _, ok := m.fonts[family]; !ok {
		family = strings.ToLower(m.defaultName)
	}
	if style.FontStyle == FontStyleItalic {
		if _, ok := m.fonts[family+" italic"]; ok {
			return family + " italic"
		}
	}
	return family
}

// MeasureWidth returns the advance width of text in pixels. If no face can
// be resolved the failure is reported and a width of half the font size per
// character is assumed.
func (m *FontManager) MeasureWidth(text string, style TextStyle) float64 {
	if text == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(style)
	if err != nil {
		errors.Report(&errors.Error{
			Op:   "rendering.FontManager.MeasureWidth",
			Kind: errors.KindRender,
			Err:  err,
		})
		size := style.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		return float64(utf8.RuneCountInString(text)) * size * 0.5
	}
	return fixedToFloat(font.MeasureString(face, text))
}

// Metrics returns the ascent and line height for a style.
func (m *FontManager) Metrics(style TextStyle) (ascent, lineHeight float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(style)
	if err != nil {
		size := style.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		return size * 0.8, size * 1.2
	}
	metrics := face.Metrics()
	return fixedToFloat(metrics.Ascent), fixedToFloat(metrics.Height)
}

// LayoutText measures text and, when maxWidth is positive, wraps it at
// word boundaries to fit.
func (m *FontManager) LayoutText(text string, style TextStyle, maxWidth float64) *TextLayout {
	ascent, lineHeight := m.Metrics(style)
	measure := func(s string) float64 { return m.MeasureWidth(s, style) }
	lines := layoutLines(text, maxWidth, measure)
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	widest := 0.0
	for _, line := range lines {
		widest = math.Max(widest, line.Width)
	}
	return &TextLayout{
		Text:       text,
		Style:      style,
		Size:       Size{Width: widest, Height: lineHeight * float64(len(lines))},
		Ascent:     ascent,
		LineHeight: lineHeight,
		Lines:      lines,
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func layoutLines(text string, maxWidth float64, measure func(string) float64) []TextLine {
	if maxWidth < 0 || math.IsInf(maxWidth, 0) {
		maxWidth = 0
	}
	paragraphs := strings.Split(text, "\n")
	lines := make([]TextLine, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			lines = append(lines, TextLine{})
			continue
		}
		if maxWidth == 0 {
			lines = append(lines, TextLine{Text: paragraph, Width: measure(paragraph)})
			continue
		}
		for _, line := range wrapParagraph(paragraph, maxWidth, measure) {
			lines = append(lines, TextLine{Text: line, Width: measure(line)})
		}
	}
	return lines
}

func wrapParagraph(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	start := 0
	for start < len(text) {
		lastBreak := -1
		lastFit := -1
		for i := start; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			if measure(text[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(text[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(text) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		lines = append(lines, strings.TrimRightFunc(text[start:cut], unicode.IsSpace))
		start = cut
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

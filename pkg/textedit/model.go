// Package textedit holds the editable buffer and caret of a single-line text
// field.
//
// Every operation is total: input that cannot be applied (a full buffer, a
// rejected character, a caret move past either end) is absorbed without
// changing state. Lengths and caret positions count user-perceived
// characters, i.e. extended grapheme clusters.
package textedit

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultMaxLength is used when a Model is created with a non-positive
// maximum length.
const DefaultMaxLength = 50

// EditState is a snapshot of a Model.
type EditState struct {
	Value string
	Caret int
}

// Model is the text buffer and caret of one text field.
// It is not safe for concurrent use.
type Model struct {
	chars     []string
	caret     int
	maxLength int
	accept    AcceptFunc
}

// NewModel returns an empty model. A nil accept uses DefaultAccept.
func NewModel(maxLength int, accept AcceptFunc) *Model {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if accept == nil {
		accept = DefaultAccept
	}
	return &Model{maxLength: maxLength, accept: accept}
}

// Value returns the current buffer.
func (m *Model) Value() string {
	return strings.Join(m.chars, "")
}

// Caret returns the caret index in characters.
func (m *Model) Caret() int {
	return m.caret
}

// Len returns the buffer length in characters.
func (m *Model) Len() int {
	return len(m.chars)
}

// MaxLength returns the configured capacity in characters.
func (m *Model) MaxLength() int {
	return m.maxLength
}

// BeforeCaret returns the text between the start of the buffer and the caret.
func (m *Model) BeforeCaret() string {
	return strings.Join(m.chars[:m.caret], "")
}

// State returns a snapshot of the buffer and caret.
func (m *Model) State() EditState {
	return EditState{Value: m.Value(), Caret: m.caret}
}

// Insert splices r in at the caret and advances the caret. It reports
// whether the buffer changed.
func (m *Model) Insert(r rune) bool {
	if len(m.chars) >= m.maxLength || !m.accept(r) {
		return false
	}
	before := m.BeforeCaret() + string(r)
	after := strings.Join(m.chars[m.caret:], "")

	chars := split(before + after)
	if len(chars) > m.maxLength {
		return false
	}
	m.chars = chars
	m.caret = min(len(split(before)), len(chars))
	return true
}

// Backspace removes the character before the caret.
func (m *Model) Backspace() bool {
	if m.caret == 0 {
		return false
	}
	m.chars = append(m.chars[:m.caret-1], m.chars[m.caret:]...)
	m.caret--
	return true
}

// MoveLeft moves the caret one character towards the start.
func (m *Model) MoveLeft() bool {
	if m.caret == 0 {
		return false
	}
	m.caret--
	return true
}

// MoveRight moves the caret one character towards the end.
func (m *Model) MoveRight() bool {
	if m.caret >= len(m.chars) {
		return false
	}
	m.caret++
	return true
}

// MoveToEnd places the caret after the last character.
func (m *Model) MoveToEnd() bool {
	if m.caret == len(m.chars) {
		return false
	}
	m.caret = len(m.chars)
	return true
}

// SetValue replaces the buffer with s truncated to the maximum length and
// places the caret at the end. The accept predicate is not applied.
func (m *Model) SetValue(s string) {
	chars := split(s)
	if len(chars) > m.maxLength {
		chars = chars[:m.maxLength]
	}
	m.chars = chars
	m.caret = len(chars)
}

// Truncate returns s cut to at most n characters.
func Truncate(s string, n int) string {
	chars := split(s)
	if len(chars) <= n {
		return s
	}
	return strings.Join(chars[:n], "")
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	chars := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		chars = append(chars, g.Str())
	}
	return chars
}

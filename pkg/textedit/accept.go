package textedit

import "strings"

// AcceptFunc decides whether a typed character may enter the buffer.
type AcceptFunc func(r rune) bool

// DefaultPunctuation is the punctuation DefaultAccept admits besides letters,
// digits and space.
const DefaultPunctuation = `.,!?@#$%^&*()-=_+[]{}|;:'"<>/\`

// DefaultAccept admits ASCII letters and digits, space and DefaultPunctuation.
func DefaultAccept(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return true
	}
	return strings.ContainsRune(DefaultPunctuation, r)
}

// AcceptAll admits every printable character.
func AcceptAll(r rune) bool {
	return r >= ' ' && r != 0x7f
}

// AcceptRunes admits exactly the runes in set.
func AcceptRunes(set string) AcceptFunc {
	allowed := make(map[rune]struct{}, len(set))
	for _, r := range set {
		allowed[r] = struct{}{}
	}
	return func(r rune) bool {
		_, ok := allowed[r]
		return ok
	}
}

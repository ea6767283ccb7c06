package codec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

func fileNameSafe(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return true
	}
	switch r {
	case '+', ',', '.', '=', '@', '(', ')', '[', ']':
		return true
	}
	return false
}

// ToFileName encodes s as a single path segment. Letters, digits and a few
// punctuation characters pass through, space becomes '_', and everything
// else is percent escaped with lowercase hex: %XX below 0x100, %uXXXX below
// 0x10000 and %UXXXXXX above. A leading '.' is always escaped.
func ToFileName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '.' && i == 0:
			b.WriteString(escape(r))
		case fileNameSafe(r):
			b.WriteRune(r)
		default:
			b.WriteString(escape(r))
		}
	}
	return b.String()
}

func escape(r rune) string {
	switch {
	case r < 0x100:
		return fmt.Sprintf("%%%02x", r)
	case r < 0x10000:
		return fmt.Sprintf("%%u%04x", r)
	default:
		return fmt.Sprintf("%%U%06x", r)
	}
}

// FromFileName reverses ToFileName. Only the exact output of ToFileName is
// accepted: raw characters it would have escaped, and escapes it would not
// have written, are errors.
func FromFileName(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '_':
			b.WriteByte(' ')
			i++
			continue
		case c == '%':
		case c == '.' && i == 0:
			return "", fmt.Errorf("%w: unescaped leading '.' in %q", ErrCodec, s)
		case c < utf8.RuneSelf && fileNameSafe(rune(c)):
			b.WriteByte(c)
			i++
			continue
		default:
			r, _ := utf8.DecodeRuneInString(s[i:])
			return "", fmt.Errorf("%w: unescaped %q at offset %d", ErrCodec, r, i)
		}
		width, skip := 2, 1
		if i+1 < len(s) {
			switch s[i+1] {
			case 'u':
				width, skip = 4, 2
			case 'U':
				width, skip = 6, 2
			}
		}
		start := i + skip
		if start+width > len(s) {
			return "", fmt.Errorf("%w: truncated escape %q", ErrCodec, s[i:])
		}
		esc := s[i : start+width]
		v, err := strconv.ParseUint(s[start:start+width], 16, 32)
		if err != nil {
			return "", fmt.Errorf("%w: bad escape %q", ErrCodec, esc)
		}
		r := rune(v)
		if v > UnicodeMaximum || !utf8.ValidRune(r) {
			return "", fmt.Errorf("%w: escape %q is not a scalar value", ErrCodec, esc)
		}
		plain := r == ' ' || (fileNameSafe(r) && !(r == '.' && i == 0))
		if plain || esc != escape(r) {
			return "", fmt.Errorf("%w: non-canonical escape %q", ErrCodec, esc)
		}
		b.WriteRune(r)
		i = start + width
	}
	return b.String(), nil
}

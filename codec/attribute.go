package codec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// entities maps reserved runes to their named entities. '&' is handled
// first by ToAttribute so every '&' in the output starts an entity.
var entities = map[rune]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'\'': "&apos;",
	'"':  "&quot;",
	';':  "&semi;",
}

var entityRunes = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"apos": '\'',
	"quot": '"',
	"semi": ';',
}

// ToAttribute encodes s so it can be placed between double quotes in an
// attribute or on a text line of the tag format.
func ToAttribute(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if e, ok := entities[r]; ok {
			b.WriteString(e)
			continue
		}
		if r < 0x20 || r > 0x7e {
			b.WriteString("&#")
			b.WriteString(strconv.Itoa(int(r)))
			b.WriteByte(';')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FromAttribute reverses ToAttribute. Named entities are tried before
// numeric references; both decimal (&#N;) and hex (&#xH;) references are
// accepted.
func FromAttribute(s string) (string, error) {
	i := strings.IndexByte(s, '&')
	if i == -1 {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end == -1 {
			return "", fmt.Errorf("%w: unterminated entity at offset %d", ErrCodec, i)
		}
		name := s[i+1 : i+end]
		r, err := entityRune(name)
		if err != nil {
			return "", fmt.Errorf("%w at offset %d", err, i)
		}
		b.WriteRune(r)
		i += end + 1
	}
	return b.String(), nil
}

func entityRune(name string) (rune, error) {
	if r, ok := entityRunes[name]; ok {
		return r, nil
	}
	if len(name) < 2 || name[0] != '#' {
		return 0, fmt.Errorf("%w: unknown entity &%s;", ErrCodec, name)
	}
	digits, base := name[1:], 10
	if digits[0] == 'x' || digits[0] == 'X' {
		digits, base = digits[1:], 16
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, fmt.Errorf("%w: bad character reference &%s;", ErrCodec, name)
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad character reference &%s;", ErrCodec, name)
	}
	r := rune(v)
	if v > UnicodeMaximum || !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: &%s; is not a scalar value", ErrCodec, name)
	}
	return r, nil
}

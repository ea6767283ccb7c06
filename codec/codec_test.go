package codec

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func eachScalar(f func(r rune)) {
	for r := rune(0); r <= UnicodeMaximum; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		f(r)
	}
}

func TestAttributeRoundTripAllScalars(t *testing.T) {
	eachScalar(func(r rune) {
		s := string(r)
		got, err := FromAttribute(ToAttribute(s))
		if err != nil {
			t.Fatalf("U+%04X: %v", r, err)
		}
		if got != s {
			t.Fatalf("U+%04X: got %q", r, got)
		}
	})
}

func TestFileNameRoundTripAllScalars(t *testing.T) {
	eachScalar(func(r rune) {
		s := string(r)
		got, err := FromFileName(ToFileName(s))
		if err != nil {
			t.Fatalf("U+%04X: %v", r, err)
		}
		if got != s {
			t.Fatalf("U+%04X: got %q", r, got)
		}
	})
}

func TestToAttribute(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"", ""},
		{"plain", "plain"},
		{"&", "&amp;"},
		{"&amp;", "&amp;amp&semi;"},
		{`<a href="x">'y';</a>`, "&lt;a href=&quot;x&quot;&gt;&apos;y&apos;&semi;&lt;/a&gt;"},
		{"1Ω", "1&#937;"},
		{"tab\there", "tab&#9;here"},
		{"\x00", "&#0;"},
	}
	for _, tt := range tests {
		if got := ToAttribute(tt.in); got != tt.out {
			t.Errorf("ToAttribute(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestFromAttributeForeign(t *testing.T) {
	got, err := FromAttribute("caf&#xE9; &#x1F600;")
	if err != nil {
		t.Fatal(err)
	}
	if got != "café 😀" {
		t.Errorf("got %q", got)
	}
	bad := []string{"&", "a&b", "&nbsp;", "&#;", "&#x;", "&#55296;", "&#1114112;", "&#-1;", "&#12a;"}
	for _, in := range bad {
		if _, err := FromAttribute(in); !errors.Is(err, ErrCodec) {
			t.Errorf("FromAttribute(%q) error = %v, want ErrCodec", in, err)
		}
	}
}

func TestToFileName(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"abc - def", "abc_%2d_def"},
		{"foo/bar", "foo%2fbar"},
		{"\x00", "%00"},
		{"a_b", "a%5fb"},
		{"100%", "100%25"},
		{".hidden", "%2ehidden"},
		{"v1.2", "v1.2"},
		{"10Ω", "10%u03a9"},
		{"\U0001F600", "%U01f600"},
		{"é", "%e9"},
	}
	for _, tt := range tests {
		if got := ToFileName(tt.in); got != tt.out {
			t.Errorf("ToFileName(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestFromFileNameMalformed(t *testing.T) {
	bad := []string{
		"%", "%2", "%zz", "%u12", "%u12g4", "%Ud80000", "%U110000", "%+1",
		// raw characters ToFileName escapes
		"a-b", "a/b", "a b", "caf\u00e9", ".hidden", "50%",
		// escapes ToFileName never writes
		"%41", "%20", "%2D", "%u00e9", "%U0003a9", "a%2eb",
	}
	for _, in := range bad {
		if _, err := FromFileName(in); !errors.Is(err, ErrCodec) {
			t.Errorf("FromFileName(%q) error = %v, want ErrCodec", in, err)
		}
	}
	got, err := FromFileName("Chip_Resistor_%2d_Surface_Mount")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Chip Resistor - Surface Mount" {
		t.Errorf("got %q", got)
	}
}

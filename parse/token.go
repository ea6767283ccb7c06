package parse

import (
	"bytes"
	"fmt"
)

type tokenType int

const (
	tHeader tokenType = iota
	tOpen
	tEmpty
	tClose
	tText
)

func (t tokenType) String() string {
	switch t {
	case tHeader:
		return "header"
	case tOpen:
		return "open tag"
	case tEmpty:
		return "empty tag"
	case tClose:
		return "close tag"
	case tText:
		return "text"
	default:
		return "unknown"
	}
}

type attribute struct {
	name, value string
}

type token struct {
	typ   tokenType
	name  string
	attrs []attribute
	text  string
	pos   Pos
}

// Pos is a 1-based line and column in the parsed document.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

type lexer struct {
	d    []byte
	i    int
	line int
	bol  int
}

func tokenize(d []byte) ([]token, error) {
	lx := &lexer{d: d, line: 1}
	var res []token
	for lx.i < len(lx.d) {
		if lx.d[lx.i] != '<' {
			res = append(res, lx.text())
			continue
		}
		tok, err := lx.tag()
		if err != nil {
			return nil, err
		}
		res = append(res, tok)
	}
	return res, nil
}

func (lx *lexer) pos() Pos {
	return Pos{Line: lx.line, Col: lx.i - lx.bol + 1}
}

func (lx *lexer) advance() {
	if lx.d[lx.i] == '\n' {
		lx.line++
		lx.bol = lx.i + 1
	}
	lx.i++
}

func (lx *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrToken, lx.pos(), fmt.Sprintf(format, args...))
}

func (lx *lexer) text() token {
	tok := token{typ: tText, pos: lx.pos()}
	start := lx.i
	for lx.i < len(lx.d) && lx.d[lx.i] != '<' {
		lx.advance()
	}
	tok.text = string(lx.d[start:lx.i])
	return tok
}

func (lx *lexer) skipSpace() {
	for lx.i < len(lx.d) && isSpace(lx.d[lx.i]) {
		lx.advance()
	}
}

func (lx *lexer) tag() (token, error) {
	tok := token{pos: lx.pos()}
	lx.advance()
	if lx.i >= len(lx.d) {
		return tok, lx.errorf("unterminated tag")
	}
	switch lx.d[lx.i] {
	case '?':
		end := bytes.Index(lx.d[lx.i:], []byte("?>"))
		if end < 0 {
			return tok, lx.errorf("unterminated header")
		}
		for range end + 2 {
			lx.advance()
		}
		tok.typ = tHeader
		return tok, nil
	case '/':
		lx.advance()
		tok.typ = tClose
		tok.name = lx.ident()
		if tok.name == "" {
			return tok, lx.errorf("missing tag name")
		}
		lx.skipSpace()
		if lx.i >= len(lx.d) || lx.d[lx.i] != '>' {
			return tok, lx.errorf("expected '>' closing %s", tok.name)
		}
		lx.advance()
		return tok, nil
	}
	tok.name = lx.ident()
	if tok.name == "" {
		return tok, lx.errorf("missing tag name")
	}
	for {
		lx.skipSpace()
		if lx.i >= len(lx.d) {
			return tok, lx.errorf("unterminated tag %s", tok.name)
		}
		switch lx.d[lx.i] {
		case '>':
			lx.advance()
			tok.typ = tOpen
			return tok, nil
		case '/':
			lx.advance()
			if lx.i >= len(lx.d) || lx.d[lx.i] != '>' {
				return tok, lx.errorf("expected '>' after '/'")
			}
			lx.advance()
			tok.typ = tEmpty
			return tok, nil
		}
		a, err := lx.attribute()
		if err != nil {
			return tok, err
		}
		tok.attrs = append(tok.attrs, a)
	}
}

func (lx *lexer) attribute() (attribute, error) {
	a := attribute{name: lx.ident()}
	if a.name == "" {
		return a, lx.errorf("unexpected %q", lx.d[lx.i])
	}
	lx.skipSpace()
	if lx.i >= len(lx.d) || lx.d[lx.i] != '=' {
		return a, lx.errorf("expected '=' after %s", a.name)
	}
	lx.advance()
	lx.skipSpace()
	if lx.i >= len(lx.d) {
		return a, lx.errorf("missing value for %s", a.name)
	}
	q := lx.d[lx.i]
	if q != '"' && q != '\'' {
		return a, lx.errorf("unquoted value for %s", a.name)
	}
	lx.advance()
	start := lx.i
	for lx.i < len(lx.d) && lx.d[lx.i] != q {
		if lx.d[lx.i] == '<' {
			return a, lx.errorf("'<' in value of %s", a.name)
		}
		lx.advance()
	}
	if lx.i >= len(lx.d) {
		return a, lx.errorf("unterminated value for %s", a.name)
	}
	a.value = string(lx.d[start:lx.i])
	lx.advance()
	return a, nil
}

func (lx *lexer) ident() string {
	start := lx.i
	for lx.i < len(lx.d) && isIdent(lx.d[lx.i], lx.i == start) {
		lx.advance()
	}
	return string(lx.d[start:lx.i])
}

func isIdent(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case first:
		return false
	case c >= '0' && c <= '9', c == '-', c == '.', c == ':':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

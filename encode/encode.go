package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/codec"
)

// ErrEncoding reports a node Encode cannot write.
var ErrEncoding = errors.New("encoding error")

// Header is written first when EncodeHeader is set.
const Header = `<?xml version="1.0"?>`

type EncState struct {
	depth, indent int
	header        bool
	omit          map[catalog.Kind]bool

	Color func(catalog.Kind, ColorAttr, string) string
}

type attr struct {
	name, value string
}

func Encode(node catalog.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 1,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	if es.header {
		if err := writeString(w, Header+"\n"); err != nil {
			return err
		}
	}
	return encode(node, w, es)
}

func encode(node catalog.Node, w io.Writer, es *EncState) error {
	kind := node.Kind()
	attrs, err := attributes(node)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(es.indentString())
	b.WriteString(es.color(kind, TagColor, "<"+kind.String()))
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(es.color(kind, AttrColor, a.name+"="))
		b.WriteString(es.color(kind, ValueColor, `"`+codec.ToAttribute(a.value)+`"`))
	}
	var children []catalog.Node
	for _, c := range node.Children() {
		if !es.omit[c.Kind()] {
			children = append(children, c)
		}
	}
	lines := commentLines(node)
	if len(children) == 0 && len(lines) == 0 {
		b.WriteString(es.color(kind, TagColor, "/>"))
		b.WriteByte('\n')
		return writeString(w, b.String())
	}
	b.WriteString(es.color(kind, TagColor, ">"))
	b.WriteByte('\n')
	if err := writeString(w, b.String()); err != nil {
		return err
	}
	es.depth++
	for _, ln := range lines {
		text := es.indentString() + es.color(kind, TextColor, commentLine(ln)) + "\n"
		if err := writeString(w, text); err != nil {
			return err
		}
	}
	for _, c := range children {
		if err := encode(c, w, es); err != nil {
			return err
		}
	}
	es.depth--
	return writeString(w, es.indentString()+es.color(kind, TagColor, "</"+kind.String()+">")+"\n")
}

func attributes(node catalog.Node) ([]attr, error) {
	switch n := node.(type) {
	case *catalog.Group:
		return []attr{{"name", n.Name()}}, nil
	case *catalog.Collection:
		return []attr{
			{"name", n.Name()},
			{"collection_root", n.Root},
			{"searches_root", n.SearchesRoot},
		}, nil
	case *catalog.Directory:
		return []attr{{"name", n.Name()}}, nil
	case *catalog.Table:
		return []attr{
			{"name", n.Name()},
			{"url", n.URL},
			{"nonce", strconv.Itoa(n.Nonce)},
			{"base", n.Base},
		}, nil
	case *catalog.Parameter:
		return []attr{
			{"name", n.Name()},
			{"index", strconv.Itoa(n.Index)},
			{"type_name", n.Type.String()},
		}, nil
	case *catalog.Search:
		res := []attr{{"name", n.Name()}}
		if n.Filter != "" {
			res = append(res, attr{"filter", n.Filter})
		}
		return res, nil
	case *catalog.TableComment:
		return []attr{{"language", n.Language()}}, nil
	case *catalog.ParameterComment:
		return []attr{{"language", n.Language()}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown node %T", ErrEncoding, node)
	}
}

func commentLines(node catalog.Node) []string {
	switch n := node.(type) {
	case *catalog.TableComment:
		return n.Lines
	case *catalog.ParameterComment:
		return n.Lines
	}
	return nil
}

// commentLine encodes one comment line. Leading spaces are written as
// character references so that a parser may strip indentation freely.
func commentLine(ln string) string {
	enc := codec.ToAttribute(ln)
	trimmed := strings.TrimLeft(enc, " ")
	return strings.Repeat("&#32;", len(enc)-len(trimmed)) + trimmed
}

func (es *EncState) indentString() string {
	return strings.Repeat(" ", es.indent*es.depth)
}

func (es *EncState) color(k catalog.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

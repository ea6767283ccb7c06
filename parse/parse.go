// Package parse reads the nested tag format written by package encode.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/partcat/catalog"
	"github.com/signadot/partcat/codec"
)

type parser struct {
	toks []token
	i    int
	reg  *catalog.Registry
	opts *parseOpts
}

// Parse builds the tree described by d. Every node is bound to reg, and a
// parsed Collection is registered with it.
func Parse(d []byte, reg *catalog.Registry, opts ...ParseOption) (catalog.Node, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := tokenize(d)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, reg: reg, opts: pOpts}
	p.skipSpace()
	if p.i < len(p.toks) && p.toks[p.i].typ == tHeader {
		p.i++
		p.skipSpace()
	}
	if p.i == len(p.toks) {
		return nil, fmt.Errorf("%w: empty document", ErrParse)
	}
	res, err := p.element()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.i != len(p.toks) {
		tok := p.toks[p.i]
		return nil, fmt.Errorf("%w at %s: unexpected %s after document element", ErrParse, tok.pos, tok.typ)
	}
	if pOpts.rootSet && res.Kind() != pOpts.root {
		return nil, fmt.Errorf("%w: document element is %s, want %s", ErrParse, res.Kind(), pOpts.root)
	}
	return res, nil
}

func (p *parser) skipSpace() {
	for p.i < len(p.toks) {
		tok := p.toks[p.i]
		if tok.typ != tText || strings.TrimSpace(tok.text) != "" {
			return
		}
		p.i++
	}
}

func (p *parser) element() (catalog.Node, error) {
	tok := p.toks[p.i]
	if tok.typ != tOpen && tok.typ != tEmpty {
		return nil, fmt.Errorf("%w at %s: unexpected %s", ErrParse, tok.pos, tok.typ)
	}
	p.i++
	node, err := p.newNode(tok)
	if err != nil {
		return nil, err
	}
	if p.opts.positions != nil {
		p.opts.positions[node] = tok.pos
	}
	if tok.typ == tEmpty {
		return node, nil
	}
	switch c := node.(type) {
	case *catalog.TableComment:
		c.Lines, err = p.commentBody(tok)
		return node, err
	case *catalog.ParameterComment:
		c.Lines, err = p.commentBody(tok)
		return node, err
	}
	for {
		p.skipSpace()
		if p.i == len(p.toks) {
			return nil, fmt.Errorf("%w at %s: %s not closed", ErrParse, tok.pos, tok.name)
		}
		next := p.toks[p.i]
		switch next.typ {
		case tClose:
			p.i++
			if next.name != tok.name {
				return nil, fmt.Errorf("%w at %s: </%s> closes <%s> from %s", ErrParse, next.pos, next.name, tok.name, tok.pos)
			}
			return node, nil
		case tText:
			return nil, fmt.Errorf("%w at %s: text inside %s", ErrParse, next.pos, tok.name)
		case tHeader:
			return nil, fmt.Errorf("%w at %s: misplaced header", ErrParse, next.pos)
		}
		childTok := next
		child, err := p.element()
		if err != nil {
			return nil, err
		}
		if err := p.insert(node, child, childTok); err != nil {
			return nil, err
		}
	}
}

func (p *parser) insert(parent, child catalog.Node, tok token) error {
	if param, ok := child.(*catalog.Parameter); ok && !hasAttr(tok, "index") {
		if t, ok := parent.(*catalog.Table); ok {
			param.Index = len(t.Parameters())
		}
	}
	if err := catalog.Insert(parent, child); err != nil {
		return fmt.Errorf("%w at %s: %w", ErrParse, tok.pos, err)
	}
	return nil
}

func (p *parser) commentBody(open token) ([]string, error) {
	var text strings.Builder
	for p.i < len(p.toks) && p.toks[p.i].typ == tText {
		text.WriteString(p.toks[p.i].text)
		p.i++
	}
	if p.i == len(p.toks) {
		return nil, fmt.Errorf("%w at %s: %s not closed", ErrParse, open.pos, open.name)
	}
	closeTok := p.toks[p.i]
	if closeTok.typ != tClose || closeTok.name != open.name {
		return nil, fmt.Errorf("%w at %s: unexpected %s inside %s", ErrParse, closeTok.pos, closeTok.typ, open.name)
	}
	p.i++
	segs := strings.Split(text.String(), "\n")
	var lines []string
	for i, seg := range segs {
		seg = strings.TrimLeft(strings.TrimSuffix(seg, "\r"), " \t")
		if seg == "" && (i == 0 || i == len(segs)-1) {
			continue
		}
		ln, err := codec.FromAttribute(seg)
		if err != nil {
			return nil, fmt.Errorf("%w at %s: line %d of %s: %w", ErrParse, open.pos, i, open.name, err)
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

func (p *parser) newNode(tok token) (catalog.Node, error) {
	kind, ok := catalog.ParseKind(tok.name)
	if !ok {
		return nil, fmt.Errorf("%w at %s: unknown element %s", ErrParse, tok.pos, tok.name)
	}
	as, err := newAttrSet(tok)
	if err != nil {
		return nil, err
	}
	// comments are named by their language attribute
	var name string
	switch kind {
	case catalog.TableCommentKind, catalog.ParameterCommentKind:
	default:
		name = as.required("name")
	}
	var res catalog.Node
	switch kind {
	case catalog.GroupKind:
		res = catalog.NewGroup(p.reg, name)
	case catalog.CollectionKind:
		root := as.required("collection_root")
		searches := as.required("searches_root")
		if err := as.done(); err != nil {
			return nil, err
		}
		return catalog.NewCollection(p.reg, name, root, searches), nil
	case catalog.DirectoryKind:
		res = catalog.NewDirectory(p.reg, name)
	case catalog.TableKind:
		url := as.required("url")
		nonce := as.integer("nonce", true)
		base := as.required("base")
		res = catalog.NewTable(p.reg, name, url, nonce, base)
	case catalog.ParameterKind:
		index := as.integer("index", false)
		var typ catalog.ParameterType
		if tn := as.required("type_name"); as.err == nil {
			typ, as.err = catalog.ParseParameterType(tn)
			if as.err != nil {
				as.err = fmt.Errorf("%w at %s: %w", ErrAttr, tok.pos, as.err)
			}
		}
		res = catalog.NewParameter(p.reg, name, index, typ)
	case catalog.SearchKind:
		filter, _ := as.optional("filter")
		res = catalog.NewSearch(p.reg, name, filter)
	case catalog.TableCommentKind:
		res = catalog.NewTableComment(p.reg, as.required("language"), nil)
	case catalog.ParameterCommentKind:
		res = catalog.NewParameterComment(p.reg, as.required("language"), nil)
	default:
		return nil, fmt.Errorf("%w: kind %s", errInternal, kind)
	}
	if err := as.done(); err != nil {
		return nil, err
	}
	return res, nil
}

func hasAttr(tok token, name string) bool {
	for _, a := range tok.attrs {
		if a.name == name {
			return true
		}
	}
	return false
}

// attrSet hands out decoded attribute values and remembers the first
// error, which done reports along with any attribute never asked for.
type attrSet struct {
	tok  token
	vals map[string]string
	used map[string]bool
	err  error
}

func newAttrSet(tok token) (*attrSet, error) {
	as := &attrSet{
		tok:  tok,
		vals: make(map[string]string, len(tok.attrs)),
		used: make(map[string]bool, len(tok.attrs)),
	}
	for _, a := range tok.attrs {
		if _, dup := as.vals[a.name]; dup {
			return nil, fmt.Errorf("%w at %s: duplicate %s", ErrAttr, tok.pos, a.name)
		}
		v, err := codec.FromAttribute(a.value)
		if err != nil {
			return nil, fmt.Errorf("%w at %s: %s: %w", ErrAttr, tok.pos, a.name, err)
		}
		as.vals[a.name] = v
	}
	return as, nil
}

func (as *attrSet) optional(name string) (string, bool) {
	v, ok := as.vals[name]
	as.used[name] = true
	return v, ok
}

func (as *attrSet) required(name string) string {
	v, ok := as.optional(name)
	if !ok && as.err == nil {
		as.err = fmt.Errorf("%w at %s: %s requires %s", ErrAttr, as.tok.pos, as.tok.name, name)
	}
	return v
}

func (as *attrSet) integer(name string, required bool) int {
	var v string
	if required {
		v = as.required(name)
	} else {
		var ok bool
		if v, ok = as.optional(name); !ok {
			return 0
		}
	}
	if as.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		as.err = fmt.Errorf("%w at %s: %s: %w", ErrAttr, as.tok.pos, name, err)
	}
	return n
}

func (as *attrSet) done() error {
	if as.err != nil {
		return as.err
	}
	for _, a := range as.tok.attrs {
		if !as.used[a.name] {
			return fmt.Errorf("%w at %s: %s has no attribute %s", ErrAttr, as.tok.pos, as.tok.name, a.name)
		}
	}
	return nil
}

package catalog

import (
	"fmt"
	"slices"
)

type Group struct {
	node
}

func NewGroup(reg *Registry, name string) *Group {
	g := &Group{}
	g.init(g, reg, name)
	return g
}

func (*Group) Kind() Kind { return GroupKind }

func (g *Group) GroupInsert(child *Group) error { return Insert(g, child) }

func (g *Group) CollectionInsert(child *Collection) error { return Insert(g, child) }

// Collection is the root of one vendor catalog. Root is the directory that
// mirrors its Directory/Table tree; SearchesRoot holds saved searches.
type Collection struct {
	node
	key          int
	Root         string
	SearchesRoot string
}

// NewCollection creates a Collection and registers it with reg under a
// fresh key.
func NewCollection(reg *Registry, name, root, searchesRoot string) *Collection {
	c := &Collection{Root: root, SearchesRoot: searchesRoot}
	c.init(c, reg, name)
	if reg != nil {
		reg.register(c)
	}
	return c
}

func (*Collection) Kind() Kind { return CollectionKind }

func (c *Collection) Key() int { return c.key }

func (c *Collection) DirectoryInsert(child *Directory) error { return Insert(c, child) }

func (c *Collection) Directories() []*Directory { return childrenOf[*Directory](c) }

type Directory struct {
	node
}

func NewDirectory(reg *Registry, name string) *Directory {
	d := &Directory{}
	d.init(d, reg, name)
	return d
}

func (*Directory) Kind() Kind { return DirectoryKind }

func (d *Directory) DirectoryInsert(child *Directory) error { return Insert(d, child) }

func (d *Directory) TableInsert(child *Table) error { return Insert(d, child) }

func (d *Directory) Directories() []*Directory { return childrenOf[*Directory](d) }

func (d *Directory) Tables() []*Table { return childrenOf[*Table](d) }

func (d *Directory) directory(name string) *Directory {
	for _, sub := range d.Directories() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

// Table describes one sample table. A stub Table only carries its name;
// see Materialized.
type Table struct {
	node
	URL   string
	Nonce int
	Base  string

	materialized bool
}

func NewTable(reg *Registry, name, url string, nonce int, base string) *Table {
	t := &Table{URL: url, Nonce: nonce, Base: base, materialized: true}
	t.init(t, reg, name)
	return t
}

// NewTableStub creates a Table known only by name.
func NewTableStub(reg *Registry, name string) *Table {
	t := &Table{}
	t.init(t, reg, name)
	return t
}

func (*Table) Kind() Kind { return TableKind }

func (t *Table) Materialized() bool { return t.materialized }

func (t *Table) ParameterInsert(child *Parameter) error { return Insert(t, child) }

func (t *Table) SearchInsert(child *Search) error { return Insert(t, child) }

func (t *Table) CommentInsert(child *TableComment) error { return Insert(t, child) }

func (t *Table) Parameters() []*Parameter { return childrenOf[*Parameter](t) }

func (t *Table) Searches() []*Search { return childrenOf[*Search](t) }

func (t *Table) Comments() []*TableComment { return childrenOf[*TableComment](t) }

func (t *Table) Parameter(name string) *Parameter {
	for _, p := range t.Parameters() {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func (t *Table) Search(name string) *Search {
	for _, s := range t.Searches() {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// ParametersReplace makes params the Parameters of t, in order, followed by
// the other children of t in their previous order. Each Parameter's Index is
// set to its position. A Parameter may be a current child of t but must not
// belong to any other node, nor be given twice. On error t is unchanged.
func (t *Table) ParametersReplace(params []*Parameter) error {
	seen := make(map[*Parameter]bool, len(params))
	for _, p := range params {
		if p == nil {
			return fmt.Errorf("%w: nil parameter", ErrTypeMismatch)
		}
		if seen[p] {
			return fmt.Errorf("%w: %s given twice", ErrTypeMismatch, describe(p))
		}
		seen[p] = true
		if p.parent != nil && p.parent != Node(t) {
			return fmt.Errorf("%w: %s already belongs to %s", ErrTypeMismatch, describe(p), describe(p.parent))
		}
	}
	var others []Node
	for _, c := range detachAll(t) {
		if c.Kind() != ParameterKind {
			others = append(others, c)
		}
	}
	for i, p := range params {
		p.Index = i
		if err := Insert(t, p); err != nil {
			return err
		}
	}
	for _, c := range others {
		if err := Insert(t, c); err != nil {
			return err
		}
	}
	return nil
}

// Adopt moves the content of src, typically a freshly parsed copy of the
// same Table, into t and marks t materialized. The children of t are
// replaced.
func (t *Table) Adopt(src *Table) error {
	t.URL = src.URL
	t.Nonce = src.Nonce
	t.Base = src.Base
	detachAll(t)
	for _, c := range detachAll(src) {
		if err := Insert(t, c); err != nil {
			return err
		}
	}
	t.materialized = true
	return nil
}

type Parameter struct {
	node
	Index int
	Type  ParameterType
}

func NewParameter(reg *Registry, name string, index int, typ ParameterType) *Parameter {
	p := &Parameter{Index: index, Type: typ}
	p.init(p, reg, name)
	return p
}

func (*Parameter) Kind() Kind { return ParameterKind }

func (p *Parameter) CommentInsert(child *ParameterComment) error { return Insert(p, child) }

func (p *Parameter) Comments() []*ParameterComment { return childrenOf[*ParameterComment](p) }

// Search is a named query over the rows of its Table. Filter is an
// expression over column names; see package search.
type Search struct {
	node
	Filter string
}

func NewSearch(reg *Registry, name, filter string) *Search {
	s := &Search{Filter: filter}
	s.init(s, reg, name)
	return s
}

func (*Search) Kind() Kind { return SearchKind }

func (s *Search) Table() *Table {
	t, _ := s.parent.(*Table)
	return t
}

// comment is shared by TableComment and ParameterComment. The node name
// holds the language tag.
type comment struct {
	node
	Lines []string
}

func (c *comment) Language() string { return c.name }

type TableComment struct {
	comment
}

func NewTableComment(reg *Registry, language string, lines []string) *TableComment {
	c := &TableComment{comment{Lines: slices.Clone(lines)}}
	c.init(c, reg, language)
	return c
}

func (*TableComment) Kind() Kind { return TableCommentKind }

type ParameterComment struct {
	comment
}

func NewParameterComment(reg *Registry, language string, lines []string) *ParameterComment {
	c := &ParameterComment{comment{Lines: slices.Clone(lines)}}
	c.init(c, reg, language)
	return c
}

func (*ParameterComment) Kind() Kind { return ParameterCommentKind }

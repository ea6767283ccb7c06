package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Key orders nodes of type T. Views compare keys by identity, so a Key
// should be created once and reused for every Fetch that wants the same
// order.
type Key[T Node] struct {
	name string
	cmp  func(a, b T) int
}

// KeyOf returns a Key ordering nodes by the value fn returns for them.
func KeyOf[T Node, K cmp.Ordered](name string, fn func(T) K) *Key[T] {
	return &Key[T]{
		name: name,
		cmp: func(a, b T) int {
			return cmp.Compare(fn(a), fn(b))
		},
	}
}

func (k *Key[T]) Name() string { return k.name }

func NameKey[T Node]() *Key[T] {
	return KeyOf("name", func(n T) string { return n.Name() })
}

// CollatedNameKey orders by name using the collation rules of tag.
func CollatedNameKey[T Node](tag language.Tag) *Key[T] {
	c := collate.New(tag, collate.IgnoreCase, collate.Numeric)
	buf := &collate.Buffer{}
	return KeyOf("collated-name:"+tag.String(), func(n T) string {
		buf.Reset()
		return string(c.KeyFromString(buf, n.Name()))
	})
}

// Nodes is a sorted view over the children of one kind of a parent node.
//
// The view caches the last ordering together with the key that produced it
// and the parent's mutation counter for that kind. Fetch sorts again only
// when either differs.
type Nodes[T Node] struct {
	parent  Node
	kind    Kind
	key     *Key[T]
	version uint64
	valid   bool
	sorted  []T
	sorts   int
}

// NewNodes returns a view over the children of parent of type T, which
// must be a concrete node type such as *Table.
func NewNodes[T Node](parent Node) *Nodes[T] {
	var zero T
	if any(zero) == nil {
		panic("catalog: Nodes needs a concrete node type")
	}
	return &Nodes[T]{parent: parent, kind: zero.Kind()}
}

// Size returns the number of children of the view's kind.
func (v *Nodes[T]) Size() int {
	return v.parent.base().counts[v.kind]
}

// Fetch returns the child at index under the order induced by key. A nil
// key means insertion order.
func (v *Nodes[T]) Fetch(index int, key *Key[T]) (T, error) {
	pb := v.parent.base()
	if !v.valid || v.key != key || v.version != pb.versions[v.kind] {
		v.sort(key)
	}
	if index < 0 || index >= len(v.sorted) {
		var zero T
		return zero, fmt.Errorf("%w: index %d of %d %s children of %s", ErrNotFound, index, len(v.sorted), v.kind, describe(v.parent))
	}
	return v.sorted[index], nil
}

// Sorts reports how many times the view has sorted.
func (v *Nodes[T]) Sorts() int { return v.sorts }

func (v *Nodes[T]) sort(key *Key[T]) {
	v.sorted = childrenOf[T](v.parent)
	if key != nil {
		slices.SortStableFunc(v.sorted, key.cmp)
	}
	v.key = key
	v.version = v.parent.base().versions[v.kind]
	v.valid = true
	v.sorts++
}

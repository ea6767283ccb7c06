package catalog

import (
	"fmt"
	"slices"
)

// Node is implemented by every node kind of this package.
type Node interface {
	Kind() Kind
	Name() string
	SetName(name string)
	Parent() Node
	Children() []Node
	Registry() *Registry
	Collection() *Collection
	Remove(child Node) error

	base() *node
}

type node struct {
	self     Node
	name     string
	registry *Registry
	parent   Node
	children []Node

	counts   [numKinds]int
	versions [numKinds]uint64
}

func (n *node) init(self Node, reg *Registry, name string) {
	n.self = self
	n.registry = reg
	n.name = name
}

func (n *node) base() *node { return n }

func (n *node) Name() string { return n.name }

// SetName renames the node. Sorted views over the parent see the change as
// a modification of their child set.
func (n *node) SetName(name string) {
	n.name = name
	if n.parent != nil {
		n.parent.base().versions[n.self.Kind()]++
	}
}

func (n *node) Parent() Node { return n.parent }

// Children returns a copy of the children in their current order.
func (n *node) Children() []Node {
	return slices.Clone(n.children)
}

func (n *node) Registry() *Registry { return n.registry }

// Collection returns the nearest Collection at or above the node, or nil.
func (n *node) Collection() *Collection {
	for p := n.self; p != nil; p = p.Parent() {
		if c, ok := p.(*Collection); ok {
			return c
		}
	}
	return nil
}

func (n *node) Remove(child Node) error {
	return Remove(n.self, child)
}

func describe(n Node) string {
	return fmt.Sprintf("%s(%q)", n.Kind(), n.Name())
}

// Insert appends child to the children of parent.
func Insert(parent, child Node) error {
	if parent == nil || child == nil {
		return fmt.Errorf("%w: nil node", ErrTypeMismatch)
	}
	if !CanContain(parent.Kind(), child.Kind()) {
		return fmt.Errorf("%w: %s cannot contain %s", ErrTypeMismatch, describe(parent), describe(child))
	}
	cb := child.base()
	if cb.parent != nil {
		return fmt.Errorf("%w: %s already belongs to %s", ErrTypeMismatch, describe(child), describe(cb.parent))
	}
	for p := parent; p != nil; p = p.Parent() {
		if p == child {
			return fmt.Errorf("%w: inserting %s into %s creates a cycle", ErrTypeMismatch, describe(child), describe(parent))
		}
	}
	pb := parent.base()
	cb.parent = parent
	pb.children = append(pb.children, child)
	pb.counts[child.Kind()]++
	pb.versions[child.Kind()]++
	return nil
}

// Remove detaches child from parent. The child keeps its own subtree and may
// be inserted elsewhere afterwards.
func Remove(parent, child Node) error {
	if parent == nil || child == nil {
		return fmt.Errorf("%w: nil node", ErrTypeMismatch)
	}
	if !CanContain(parent.Kind(), child.Kind()) {
		return fmt.Errorf("%w: %s never contains %s", ErrTypeMismatch, describe(parent), describe(child))
	}
	pb := parent.base()
	i := slices.Index(pb.children, child)
	if i == -1 {
		return fmt.Errorf("%w: %s is not a child of %s", ErrNotFound, describe(child), describe(parent))
	}
	pb.children = slices.Delete(pb.children, i, i+1)
	pb.counts[child.Kind()]--
	pb.versions[child.Kind()]++
	child.base().parent = nil
	return nil
}

// detachAll removes every child of n and returns them in order.
func detachAll(n Node) []Node {
	b := n.base()
	res := b.children
	b.children = nil
	for _, c := range res {
		c.base().parent = nil
		k := c.Kind()
		b.counts[k]--
		b.versions[k]++
	}
	return res
}

func childrenOf[T Node](n Node) []T {
	b := n.base()
	var zero T
	res := make([]T, 0, b.counts[zero.Kind()])
	for _, c := range b.children {
		if t, ok := c.(T); ok {
			res = append(res, t)
		}
	}
	return res
}

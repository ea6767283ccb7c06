package catalog

import (
	"fmt"
	"slices"
)

// Visit walks the subtree rooted at n depth first. f is called before
// (isPost false) and after (isPost true) the children of each node; the
// children are visited only if the pre call returns true.
func Visit(n Node, f func(n Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.base().children {
			if err := Visit(c, f); err != nil {
				return err
			}
		}
	}
	_, err = f(n, true)
	return err
}

// CollectRecursively appends to out, in pre-order, every node of the
// subtree rooted at n (n included) whose kind is kind.
func CollectRecursively(n Node, kind Kind, out []Node) []Node {
	if n.Kind() == kind {
		out = append(out, n)
	}
	if !MayContain(n.Kind(), kind) {
		return out
	}
	for _, c := range n.base().children {
		out = CollectRecursively(c, kind, out)
	}
	return out
}

// Collect is the typed form of CollectRecursively.
//
//	tables := catalog.Collect[*catalog.Table](collection)
func Collect[T Node](n Node) []T {
	var zero T
	var res []T
	for _, c := range CollectRecursively(n, zero.Kind(), nil) {
		res = append(res, c.(T))
	}
	return res
}

// TreePathFind returns the path from target up to root, both included.
// Subtrees whose kind can not hold target are not searched.
func TreePathFind(root, target Node) ([]Node, error) {
	var path []Node
	if !findPath(root, target, &path) {
		return nil, fmt.Errorf("%w: %s is not under %s", ErrNotFound, describe(target), describe(root))
	}
	return path, nil
}

func findPath(n, target Node, path *[]Node) bool {
	if n == target {
		*path = append(*path, n)
		return true
	}
	if !MayContain(n.Kind(), target.Kind()) {
		return false
	}
	for _, c := range n.base().children {
		if findPath(c, target, path) {
			*path = append(*path, n)
			return true
		}
	}
	return false
}

// PathNames returns the names of the nodes strictly below ancestor down to
// n, outermost first.
func PathNames(ancestor, n Node) ([]string, error) {
	path, err := TreePathFind(ancestor, n)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(path)-1)
	for _, p := range path[:len(path)-1] {
		names = append(names, p.Name())
	}
	slices.Reverse(names)
	return names, nil
}

// Path returns the names from below the Collection of n down to n.
func Path(n Node) ([]string, error) {
	c := n.Collection()
	if c == nil {
		return nil, fmt.Errorf("%w: %s has no collection", ErrNotFound, describe(n))
	}
	return PathNames(c, n)
}

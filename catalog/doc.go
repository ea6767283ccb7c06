// Package catalog provides the typed tree used to organize a parts catalog.
//
// # Overview
//
// A catalog is a tree of nodes. Every node has a name, belongs to a
// Registry, has at most one parent and keeps its children in insertion
// order. The node kinds form a closed set:
//
//   - Group: organizational node holding Groups and Collections
//   - Collection: one vendor catalog, registered under a session key
//   - Directory: subtree of a Collection, holding Directories and Tables
//   - Table: one sample table, holding Parameters, Searches and TableComments
//   - Parameter: a column descriptor, holding ParameterComments
//   - Search: a named query scoped to a Table
//   - TableComment, ParameterComment: free text blocks tagged by language
//
// Node is a sealed interface; only the types of this package implement it.
//
// # Building Trees
//
// Nodes are created bound to a Registry and inserted into exactly one parent:
//
//	reg := catalog.NewRegistry()
//	root := catalog.NewGroup(reg, "Root")
//	dk := catalog.NewCollection(reg, "Digi-Key", "/data/ROOT", "/data/SEARCHES")
//	if err := root.CollectionInsert(dk); err != nil {
//	    return err
//	}
//
// The typed insert methods and the generic Insert function check the kind of
// the child against CanContain and return an error wrapping ErrTypeMismatch
// when the child does not fit. Remove detaches a direct child and fails with
// ErrNotFound otherwise.
//
// # Tables
//
// A Table is either a stub, holding only its name as found in a directory
// listing, or materialized, holding its full content. Package store promotes
// stubs on demand.
//
// # Traversal
//
//   - ShowLines renders a subtree as indented Kind('name') lines
//   - CollectRecursively and Collect gather nodes of one kind in pre-order
//   - TreePathFind returns the path from a node up to an ancestor
//   - ValidateRecursively checks the structural invariants of a subtree
//
// # Sorted Views
//
// Nodes[T] presents the children of one kind in the order induced by a Key.
// The ordering is cached and recomputed only when the key or the set of
// children changes.
//
// # Thread Safety
//
// Trees and views are not safe for concurrent use. Callers that share a tree
// between goroutines must serialize access themselves.
package catalog

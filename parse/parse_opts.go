package parse

import "github.com/signadot/partcat/catalog"

type parseOpts struct {
	root      catalog.Kind
	rootSet   bool
	positions map[catalog.Node]Pos
}

type ParseOption func(*parseOpts)

// ParseRoot requires the document element to be of kind k.
func ParseRoot(k catalog.Kind) ParseOption {
	return func(o *parseOpts) {
		o.root = k
		o.rootSet = true
	}
}

// ParsePositions records the position of the start tag of each parsed node
// in m.
func ParsePositions(m map[catalog.Node]Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}

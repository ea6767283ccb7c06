package catalog

import "errors"

var (
	// ErrTypeMismatch reports a node that cannot be placed where asked: a
	// kind its parent may not hold, or a node that already has a parent.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotFound reports a lookup that found nothing.
	ErrNotFound = errors.New("not found")

	// ErrPersistence is wrapped by errors reading or writing a catalog on
	// disk, including malformed files.
	ErrPersistence = errors.New("persistence error")

	// ErrInvariant is wrapped by each violation ValidateRecursively finds.
	ErrInvariant = errors.New("invariant violated")
)

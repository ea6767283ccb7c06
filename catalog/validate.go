package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/signadot/partcat/debug"
)

// ValidateRecursively checks the structural invariants of the subtree rooted
// at n and returns every violation found, joined. Each violation wraps
// ErrInvariant.
func ValidateRecursively(n Node) error {
	v := &validator{seen: map[Node]bool{}}
	v.node(n)
	return errors.Join(v.errs...)
}

// CheckInvariants runs ValidateRecursively. A violation is a programming
// error: it panics when the validate debug switch is on and is logged
// otherwise.
func CheckInvariants(n Node, log *slog.Logger) {
	err := ValidateRecursively(n)
	if err == nil {
		return
	}
	if debug.Validate() {
		panic(err)
	}
	if log == nil {
		log = slog.Default()
	}
	log.Error("catalog invariants violated", "root", describe(n), "error", err)
}

type validator struct {
	seen map[Node]bool
	errs []error
}

func (v *validator) errorf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
}

func (v *validator) node(n Node) {
	if v.seen[n] {
		v.errorf("%s reached twice", describe(n))
		return
	}
	v.seen[n] = true
	b := n.base()
	if b.self != n {
		v.errorf("%s has a stale self reference", describe(n))
	}
	if c, ok := n.(*Collection); ok {
		v.collection(c)
	}
	var counts [numKinds]int
	params := 0
	for _, c := range b.children {
		k := c.Kind()
		counts[k]++
		if !CanContain(n.Kind(), k) {
			v.errorf("%s holds %s", describe(n), describe(c))
		}
		if c.Parent() != n {
			v.errorf("%s under %s has another parent", describe(c), describe(n))
		}
		if c.Registry() != b.registry {
			v.errorf("%s under %s belongs to another registry", describe(c), describe(n))
		}
		if p, ok := c.(*Parameter); ok {
			if p.Index != params {
				v.errorf("%s has index %d at position %d", describe(p), p.Index, params)
			}
			params++
		}
		v.node(c)
	}
	if counts != b.counts {
		v.errorf("%s child counts %v, want %v", describe(n), b.counts, counts)
	}
}

func (v *validator) collection(c *Collection) {
	reg := c.Registry()
	if reg == nil {
		v.errorf("%s has no registry", describe(c))
		return
	}
	got, err := reg.Collection(c.Key())
	if err != nil || got != c {
		v.errorf("%s is not registered under key %d", describe(c), c.Key())
	}
}

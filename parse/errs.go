package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/partcat/catalog"
)

var (
	errInternal = errors.New("internal parse error")

	// ErrParse is wrapped by every error of Parse.
	ErrParse = fmt.Errorf("%w: parse error", catalog.ErrPersistence)

	// ErrToken reports malformed markup.
	ErrToken = fmt.Errorf("%w: bad token", ErrParse)

	// ErrAttr reports a bad attribute of an element.
	ErrAttr = fmt.Errorf("%w: bad attribute", ErrParse)
)

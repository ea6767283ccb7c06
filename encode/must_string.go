package encode

import (
	"bytes"

	"github.com/signadot/partcat/catalog"
)

func MustString(node catalog.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

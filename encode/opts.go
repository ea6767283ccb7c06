package encode

import "github.com/signadot/partcat/catalog"

type EncodeOption func(*EncState)

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeHeader(v bool) EncodeOption {
	return func(es *EncState) { es.header = v }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeOmit leaves out children of the given kinds, at every depth.
func EncodeOmit(kinds ...catalog.Kind) EncodeOption {
	return func(es *EncState) {
		if es.omit == nil {
			es.omit = map[catalog.Kind]bool{}
		}
		for _, k := range kinds {
			es.omit[k] = true
		}
	}
}

// Package encode writes catalog trees in the nested tag format.
//
// Each node becomes one element named after its kind, scalar fields become
// attributes, and children become nested elements. Attribute values and
// comment lines are encoded with codec.ToAttribute.
//
// # Usage
//
//	// Encode a tree
//	err := encode.Encode(root, w)
//
//	// Encode a Table file with the xml header
//	err := encode.Encode(table, w, encode.EncodeHeader(true))
//
//	// Colored output for terminals
//	err := encode.Encode(root, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/signadot/partcat/catalog - the tree
//   - github.com/signadot/partcat/parse - parse the format back
package encode

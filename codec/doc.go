// Package codec provides the two lossless text encodings used by the catalog
// store: attribute text, used inside the tag format written by package
// encode, and file names, used for every path segment under a collection
// root.
//
// Both encodings are total over Unicode scalar values, so encoding never
// fails. Decoding is strict: a malformed entity or escape in foreign input
// yields an error wrapping ErrCodec instead of being passed through.
//
//	codec.ToAttribute(`a<b & "c"`) // a&lt;b &amp; &quot;c&quot;
//	codec.ToFileName("abc - def")  // abc_%2d_def
package codec

package codec

import "errors"

// ErrCodec is wrapped by every decoding error of this package.
var ErrCodec = errors.New("codec error")

// UnicodeMaximum is the largest code point either encoding round trips.
const UnicodeMaximum = 0x10FFFF

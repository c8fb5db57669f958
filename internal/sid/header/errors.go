package header

import "errors"

// Structural errors abort decoding, no header is returned. They are
// wrapped with the observed and expected values.
var (
	ErrHeaderTooShort      = errors.New("header too short")
	ErrUnknownMagic        = errors.New("unknown magic")
	ErrUnsupportedVersion  = errors.New("unsupported version")
	ErrDataOffsetMismatch  = errors.New("data offset mismatch")
	ErrUnterminatedTrailer = errors.New("unterminated multi SID trailer")
)

// Encoding errors abort serialization, data is never silently dropped
// or truncated.
var (
	ErrExtendedFieldsV1  = errors.New("v1 does not support extended fields")
	ErrMissingExtended   = errors.New("revision 2 and later require extended fields")
	ErrTooManySIDs       = errors.New("too many SID chips for variant")
	ErrMixedSIDEncodings = errors.New("fixed SID address slots and multi SID trailer are mutually exclusive")
)

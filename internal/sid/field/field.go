// Package field implements the byte level primitives of the SID header
// format: big-endian fixed width integers and the 32 byte Windows-1252
// text slots.
package field

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// TextSize is the fixed byte size of the name, author and released slots.
const TextSize = 32

// ErrTextTooLong is returned when a string does not fit into a text slot.
// Text is never silently truncated.
var ErrTextTooLong = errors.New("text too long")

// Uint16 reads a big-endian 16 bit value at the given offset.
func Uint16(data []byte, offset int) uint16 {
	return binary.BigEndian.Uint16(data[offset:])
}

// Uint32 reads a big-endian 32 bit value at the given offset.
func Uint32(data []byte, offset int) uint32 {
	return binary.BigEndian.Uint32(data[offset:])
}

// PutUint16 writes a big-endian 16 bit value at the given offset.
func PutUint16(data []byte, offset int, value uint16) {
	binary.BigEndian.PutUint16(data[offset:], value)
}

// PutUint32 writes a big-endian 32 bit value at the given offset.
func PutUint32(data []byte, offset int, value uint32) {
	binary.BigEndian.PutUint32(data[offset:], value)
}

// Text decodes a 32 byte text slot at the given offset. Decoding stops
// at the first zero byte or after 32 bytes, whichever comes first.
// Every byte value maps to a character, decoding cannot fail on
// arbitrary content.
func Text(data []byte, offset int) string {
	raw := data[offset : offset+TextSize]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	decoded, _ := charmap.Windows1252.NewDecoder().Bytes(raw)
	return string(decoded)
}

// PutText encodes a string into the 32 byte zero padded text slot at
// the given offset. A string longer than 32 bytes in its Windows-1252
// form is an error, as is a rune the encoding cannot represent.
func PutText(data []byte, offset int, value string) error {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(value))
	if err != nil {
		return fmt.Errorf("encoding text %q: %w", value, err)
	}
	if len(encoded) > TextSize {
		return fmt.Errorf("%w: %q is %d bytes, maximum is %d",
			ErrTextTooLong, value, len(encoded), TextSize)
	}

	slot := data[offset : offset+TextSize]
	for i := range slot {
		slot[i] = 0
	}
	copy(slot, encoded)
	return nil
}

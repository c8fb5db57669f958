// Package header implements the data model and binary codec for the
// PSID/RSID tune header family: the four classic revisions of both
// sibling formats plus the variable length multi SID vendor extension.
// Validation of decoded headers lives in the validate package.
package header

// Magic identifies the format family of a tune file.
type Magic string

// The two supported format families. RSID targets strict real hardware
// compatibility, PSID relaxed emulator playback.
const (
	MagicPSID Magic = "PSID"
	MagicRSID Magic = "RSID"
)

// Version values selecting the header variant. The classic revisions
// are 1 to 4, VersionMulti is the vendor sentinel for the variable
// length multi SID extension.
const (
	Version1 = 1
	Version2 = 2
	Version3 = 3
	Version4 = 4

	VersionMulti = 0x4D
)

// Header sizes in bytes. The multi SID variant has no fixed size, its
// length is 0x7A plus two bytes per extra SID descriptor plus the two
// byte terminator word.
const (
	SizeV1     = 0x76
	SizeV2Plus = 0x7C

	TrailerOffset = 0x7A
)

// Field byte offsets, identical across all variants up to 0x75.
const (
	OffsetMagic       = 0x00
	OffsetVersion     = 0x04
	OffsetDataOffset  = 0x06
	OffsetLoadAddress = 0x08
	OffsetInitAddress = 0x0A
	OffsetPlayAddress = 0x0C
	OffsetSongCount   = 0x0E
	OffsetStartSong   = 0x10
	OffsetSpeed       = 0x12
	OffsetName        = 0x16
	OffsetAuthor      = 0x36
	OffsetReleased    = 0x56

	OffsetFlags          = 0x76
	OffsetRelocStartPage = 0x78
	OffsetRelocPageCount = 0x79
	OffsetSecondSID      = 0x7A
	OffsetThirdSID       = 0x7B
)

// Variant tags the concrete header layout of a decoded tune.
type Variant int

// The five header variants.
const (
	VariantUnknown Variant = iota
	VariantV1
	VariantV2
	VariantV3
	VariantV4
	VariantMulti
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case VariantV1:
		return "v1"
	case VariantV2:
		return "v2"
	case VariantV3:
		return "v3"
	case VariantV4:
		return "v4"
	case VariantMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// TuneHeader is the in-memory representation of a tune file header.
// A header is produced by Decode or by the builder for new files and
// treated as immutable once returned, edits go through a copy followed
// by re-validation and Encode.
type TuneHeader struct {
	Magic      Magic
	Version    uint16
	DataOffset uint16 // must equal the computed size of the variant

	LoadAddress uint16 // 0 means the payload carries its own load address
	InitAddress uint16
	PlayAddress uint16

	SongCount uint16 // 1..256
	StartSong uint16 // 1..SongCount
	Speed     uint32 // one bit per tune, wraparound differs by magic

	Name     string
	Author   string
	Released string

	// Extended is nil for v1 headers, which end at offset 0x76.
	Extended *Extended
}

// Extended holds the fields present from revision 2 on. The fixed SID
// address slots and the ExtraSIDs trailer are mutually exclusive: the
// slots belong to the classic v3/v4 layouts, the trailer to the multi
// SID vendor variant.
type Extended struct {
	Flags Flags

	RelocStartPage byte
	RelocPageCount byte

	SecondSIDAddress byte // classic v3/v4 fixed slot, middle nibble encoding
	ThirdSIDAddress  byte // classic v4 fixed slot, middle nibble encoding

	ExtraSIDs []SIDDescriptor // multi SID vendor trailer
}

// Variant returns the layout tag derived from the version field.
func (h *TuneHeader) Variant() Variant {
	switch h.Version {
	case Version1:
		return VariantV1
	case Version2:
		return VariantV2
	case Version3:
		return VariantV3
	case Version4:
		return VariantV4
	case VersionMulti:
		return VariantMulti
	default:
		return VariantUnknown
	}
}

// Size returns the encoded byte length of the header for its variant.
// For the multi SID variant the size depends on the current descriptor
// count, including the terminator word.
func (h *TuneHeader) Size() int {
	switch h.Variant() {
	case VariantV1:
		return SizeV1
	case VariantMulti:
		extras := 0
		if h.Extended != nil {
			extras = len(h.Extended.ExtraSIDs)
		}
		return TrailerOffset + 2*(extras+1)
	default:
		return SizeV2Plus
	}
}

// SongSpeedBit returns the speed bit for the given 1-based song number.
// PSID reuses the 32 bits cyclically for songs above 32, RSID saturates
// at bit 31.
func (h *TuneHeader) SongSpeedBit(song int) byte {
	bit := song - 1
	if h.Magic == MagicRSID {
		if bit > 31 {
			bit = 31
		}
	} else {
		bit %= 32
	}
	return byte(h.Speed >> uint(bit) & 1)
}

// SIDAddressPresent reports whether a middle nibble byte denotes a
// usable extra SID base address: the value has to be even and within
// $42..$7F or $E0..$FE. Anything else, including zero, means that no
// chip is mapped at the slot.
func SIDAddressPresent(value byte) bool {
	if value&1 != 0 {
		return false
	}
	return (value >= 0x42 && value <= 0x7F) || (value >= 0xE0 && value <= 0xFE)
}

// SIDAddress expands the middle nibble encoding to the full memory
// mapped base address, $42 becomes $D420.
func SIDAddress(value byte) uint16 {
	return 0xD000 | uint16(value)<<4
}

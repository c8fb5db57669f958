package header

import (
	"fmt"

	"github.com/retroenv/sidfile/internal/sid/field"
)

// preambleSize is the number of bytes needed to select the header
// variant: magic, version and declared data offset.
const preambleSize = 0x08

// Decode parses a raw tune file buffer into a header and its payload.
// Structural problems abort with an error and no header, constraint
// checks are the validate package's job. The returned payload aliases
// the input buffer and is passed through unmodified.
//
// The only diagnostics produced here are warnings about reserved bits
// in multi SID descriptor words, which are not representable in the
// decoded model.
func Decode(data []byte) (*TuneHeader, []byte, Diagnostics, error) {
	size, sids, diagnostics, err := dispatch(data)
	if err != nil {
		return nil, nil, nil, err
	}

	h := &TuneHeader{
		Magic:       Magic(data[OffsetMagic : OffsetMagic+4]),
		Version:     field.Uint16(data, OffsetVersion),
		DataOffset:  field.Uint16(data, OffsetDataOffset),
		LoadAddress: field.Uint16(data, OffsetLoadAddress),
		InitAddress: field.Uint16(data, OffsetInitAddress),
		PlayAddress: field.Uint16(data, OffsetPlayAddress),
		SongCount:   field.Uint16(data, OffsetSongCount),
		StartSong:   field.Uint16(data, OffsetStartSong),
		Speed:       field.Uint32(data, OffsetSpeed),
		Name:        field.Text(data, OffsetName),
		Author:      field.Text(data, OffsetAuthor),
		Released:    field.Text(data, OffsetReleased),
	}

	if h.Variant() != VariantV1 {
		extended := &Extended{
			Flags:          FlagsFromWord(field.Uint16(data, OffsetFlags), h.Magic),
			RelocStartPage: data[OffsetRelocStartPage],
			RelocPageCount: data[OffsetRelocPageCount],
		}

		if h.Variant() == VariantMulti {
			extended.ExtraSIDs = sids
		} else {
			extended.SecondSIDAddress = data[OffsetSecondSID]
			extended.ThirdSIDAddress = data[OffsetThirdSID]
		}
		h.Extended = extended
	}

	return h, data[size:], diagnostics, nil
}

// dispatch selects the header variant and derives its exact size from
// magic, version, declared data offset and buffer length. The size is
// never assumed from the version alone: for the multi SID variant it
// is discovered by scanning the descriptor trailer, and the declared
// data offset has to match the computed size exactly.
func dispatch(data []byte) (int, []SIDDescriptor, Diagnostics, error) {
	if len(data) < preambleSize {
		return 0, nil, nil, fmt.Errorf("%w: got %d bytes, need at least %d",
			ErrHeaderTooShort, len(data), preambleSize)
	}

	switch magic := Magic(data[OffsetMagic : OffsetMagic+4]); magic {
	case MagicPSID, MagicRSID:
	default:
		return 0, nil, nil, fmt.Errorf("%w: got %q, want %q or %q",
			ErrUnknownMagic, string(magic), MagicPSID, MagicRSID)
	}

	version := field.Uint16(data, OffsetVersion)
	var minSize int
	switch version {
	case Version1:
		minSize = SizeV1
	case Version2, Version3, Version4:
		minSize = SizeV2Plus
	case VersionMulti:
		minSize = TrailerOffset + 2 // flags and relocation plus terminator word
	default:
		return 0, nil, nil, fmt.Errorf("%w: got %d, want 1-4 or $%02X",
			ErrUnsupportedVersion, version, VersionMulti)
	}

	if len(data) < minSize {
		return 0, nil, nil, fmt.Errorf("%w: got %d bytes, variant needs at least %d",
			ErrHeaderTooShort, len(data), minSize)
	}

	size := minSize
	var sids []SIDDescriptor
	var diagnostics Diagnostics
	if version == VersionMulti {
		var trailerSize int
		var err error
		sids, trailerSize, diagnostics, err = decodeTrailer(data)
		if err != nil {
			return 0, nil, nil, err
		}
		size = TrailerOffset + trailerSize
	}

	if declared := field.Uint16(data, OffsetDataOffset); int(declared) != size {
		return 0, nil, nil, fmt.Errorf("%w: declared $%04X, computed $%04X for variant",
			ErrDataOffsetMismatch, declared, size)
	}

	return size, sids, diagnostics, nil
}

package header

import (
	"fmt"

	"github.com/retroenv/sidfile/internal/sid/field"
)

// Encode serializes the header followed by the unmodified payload. The
// data offset field is recomputed from the variant and, for the multi
// SID variant, the current descriptor count; reserved bytes are zero
// filled. Nothing is ever silently dropped: over-length text and SID
// chips exceeding the variant's capacity are errors.
func Encode(h *TuneHeader, payload []byte) ([]byte, error) {
	if err := checkEncodable(h); err != nil {
		return nil, err
	}

	size := h.Size()
	data := make([]byte, size, size+len(payload))

	copy(data[OffsetMagic:], h.Magic)
	field.PutUint16(data, OffsetVersion, h.Version)
	field.PutUint16(data, OffsetDataOffset, uint16(size))
	field.PutUint16(data, OffsetLoadAddress, h.LoadAddress)
	field.PutUint16(data, OffsetInitAddress, h.InitAddress)
	field.PutUint16(data, OffsetPlayAddress, h.PlayAddress)
	field.PutUint16(data, OffsetSongCount, h.SongCount)
	field.PutUint16(data, OffsetStartSong, h.StartSong)
	field.PutUint32(data, OffsetSpeed, h.Speed)

	texts := []struct {
		name   string
		offset int
		value  string
	}{
		{"name", OffsetName, h.Name},
		{"author", OffsetAuthor, h.Author},
		{"released", OffsetReleased, h.Released},
	}
	for _, text := range texts {
		if err := field.PutText(data, text.offset, text.value); err != nil {
			return nil, fmt.Errorf("field %s: %w", text.name, err)
		}
	}

	if h.Variant() != VariantV1 {
		field.PutUint16(data, OffsetFlags, h.Extended.Flags.Word())
		data[OffsetRelocStartPage] = h.Extended.RelocStartPage
		data[OffsetRelocPageCount] = h.Extended.RelocPageCount

		if h.Variant() == VariantMulti {
			encodeTrailer(data, h.Extended.ExtraSIDs)
		} else {
			data[OffsetSecondSID] = h.Extended.SecondSIDAddress
			data[OffsetThirdSID] = h.Extended.ThirdSIDAddress
		}
	}

	return append(data, payload...), nil
}

// checkEncodable verifies that the header's variant can represent its
// SID chip configuration.
func checkEncodable(h *TuneHeader) error {
	variant := h.Variant()
	if variant == VariantUnknown {
		return fmt.Errorf("%w: got %d, want 1-4 or $%02X",
			ErrUnsupportedVersion, h.Version, VersionMulti)
	}

	if variant == VariantV1 {
		if h.Extended != nil {
			return ErrExtendedFieldsV1
		}
		return nil
	}
	if h.Extended == nil {
		return fmt.Errorf("%w: variant %s", ErrMissingExtended, variant)
	}

	if variant == VariantMulti {
		if h.Extended.SecondSIDAddress != 0 || h.Extended.ThirdSIDAddress != 0 {
			return fmt.Errorf("%w: multi SID header sets fixed address slots",
				ErrMixedSIDEncodings)
		}
		return nil
	}

	if len(h.Extended.ExtraSIDs) > 0 {
		return fmt.Errorf("%w: classic variant %s carries %d extra SID descriptors, "+
			"only the fixed address slots are available",
			ErrTooManySIDs, variant, len(h.Extended.ExtraSIDs))
	}
	return nil
}

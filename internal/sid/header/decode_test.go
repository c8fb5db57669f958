package header

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/sidfile/internal/sid/field"
)

// buildRaw returns a minimal valid header buffer for the given magic
// and version, patched by the optional modifier.
func buildRaw(magic Magic, version uint16, modify func(data []byte)) []byte {
	size := SizeV2Plus
	switch version {
	case Version1:
		size = SizeV1
	case VersionMulti:
		size = TrailerOffset + 2
	}

	data := make([]byte, size)
	copy(data, magic)
	field.PutUint16(data, OffsetVersion, version)
	field.PutUint16(data, OffsetDataOffset, uint16(size))
	field.PutUint16(data, OffsetInitAddress, 0x1000)
	field.PutUint16(data, OffsetSongCount, 1)
	field.PutUint16(data, OffsetStartSong, 1)

	if modify != nil {
		modify(data)
	}
	return data
}

func TestDecodeV2(t *testing.T) {
	data := buildRaw(MagicPSID, Version2, func(data []byte) {
		field.PutUint16(data, OffsetPlayAddress, 0x1003)
		field.PutUint16(data, OffsetSongCount, 3)
		field.PutUint32(data, OffsetSpeed, 0b101)
		copy(data[OffsetName:], "Commando")
		copy(data[OffsetAuthor:], "Rob Hubbard")
		copy(data[OffsetReleased:], "1985 Elite")
	})

	h, payload, diagnostics, err := Decode(data)

	assert.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Empty(t, payload)
	assert.Equal(t, MagicPSID, h.Magic)
	assert.Equal(t, VariantV2, h.Variant())
	assert.Equal(t, uint16(SizeV2Plus), h.DataOffset)
	assert.Equal(t, uint16(0x1000), h.InitAddress)
	assert.Equal(t, uint16(0x1003), h.PlayAddress)
	assert.Equal(t, uint16(3), h.SongCount)
	assert.Equal(t, uint16(1), h.StartSong)
	assert.Equal(t, uint32(0b101), h.Speed)
	assert.Equal(t, "Commando", h.Name)
	assert.Equal(t, "Rob Hubbard", h.Author)
	assert.Equal(t, "1985 Elite", h.Released)
	assert.NotNil(t, h.Extended)
}

func TestDecodeV1(t *testing.T) {
	data := buildRaw(MagicPSID, Version1, nil)

	h, _, diagnostics, err := Decode(data)

	assert.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Equal(t, VariantV1, h.Variant())
	assert.Equal(t, uint16(SizeV1), h.DataOffset)
	assert.Nil(t, h.Extended)
}

func TestDecodeRSIDBasicFlag(t *testing.T) {
	data := buildRaw(MagicRSID, Version2, func(data []byte) {
		field.PutUint16(data, OffsetInitAddress, 0)
		field.PutUint16(data, OffsetFlags, 1<<1)
	})

	h, _, _, err := Decode(data)

	assert.NoError(t, err)
	assert.Equal(t, CompatBasic, h.Extended.Flags.Compatibility)
}

func TestDecodePayload(t *testing.T) {
	data := buildRaw(MagicPSID, Version2, nil)
	data = append(data, 0x00, 0x10, 0xA9, 0x00, 0x60)

	_, payload, _, err := Decode(data)

	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x10, 0xA9, 0x00, 0x60}, payload)
}

func TestDecodeStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "buffer shorter than preamble",
			data:    []byte("PSID"),
			wantErr: ErrHeaderTooShort,
		},
		{
			name:    "buffer shorter than variant size",
			data:    buildRaw(MagicPSID, Version2, nil)[:0x70],
			wantErr: ErrHeaderTooShort,
		},
		{
			name: "v1 buffer shorter than v1 size",
			data: buildRaw(MagicPSID, Version1, nil)[:SizeV1-1],
			wantErr: ErrHeaderTooShort,
		},
		{
			name: "unknown magic",
			data: buildRaw(MagicPSID, Version2, func(data []byte) {
				copy(data, "MUS!")
			}),
			wantErr: ErrUnknownMagic,
		},
		{
			name: "unsupported version",
			data: buildRaw(MagicPSID, Version2, func(data []byte) {
				field.PutUint16(data, OffsetVersion, 5)
			}),
			wantErr: ErrUnsupportedVersion,
		},
		{
			name: "data offset mismatch",
			data: buildRaw(MagicPSID, Version2, func(data []byte) {
				field.PutUint16(data, OffsetDataOffset, SizeV1)
			}),
			wantErr: ErrDataOffsetMismatch,
		},
		{
			name: "v1 with v2 data offset",
			data: buildRaw(MagicPSID, Version1, func(data []byte) {
				field.PutUint16(data, OffsetDataOffset, SizeV2Plus)
			}),
			wantErr: ErrDataOffsetMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _, err := Decode(tt.data)

			assert.Nil(t, h)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

// buildMulti returns a multi SID header buffer with the given trailer
// words, terminator not included.
func buildMulti(words ...uint16) []byte {
	size := TrailerOffset + 2*(len(words)+1)
	data := make([]byte, size)
	copy(data, MagicPSID)
	field.PutUint16(data, OffsetVersion, VersionMulti)
	field.PutUint16(data, OffsetDataOffset, uint16(size))
	field.PutUint16(data, OffsetInitAddress, 0x1000)
	field.PutUint16(data, OffsetSongCount, 1)
	field.PutUint16(data, OffsetStartSong, 1)

	for i, word := range words {
		field.PutUint16(data, TrailerOffset+2*i, word)
	}
	return data
}

func TestDecodeMultiTrailer(t *testing.T) {
	data := buildMulti(0x0142, 0x0043)

	h, _, diagnostics, err := Decode(data)

	assert.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Equal(t, VariantMulti, h.Variant())
	assert.Equal(t, uint16(0x80), h.DataOffset)
	assert.Len(t, h.Extended.ExtraSIDs, 2)
	assert.Equal(t,
		SIDDescriptor{Channel: ChannelRight, Address: 0x42},
		h.Extended.ExtraSIDs[0])
	assert.Equal(t,
		SIDDescriptor{Channel: ChannelLeft, Address: 0x43},
		h.Extended.ExtraSIDs[1])
}

func TestDecodeMultiNoExtraChips(t *testing.T) {
	data := buildMulti()

	h, _, diagnostics, err := Decode(data)

	assert.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Equal(t, uint16(0x7C), h.DataOffset)
	assert.Empty(t, h.Extended.ExtraSIDs)
}

func TestDecodeMultiEightExtraChips(t *testing.T) {
	words := make([]uint16, 8)
	for i := range words {
		words[i] = uint16(0x42 + 2*i)
	}
	data := buildMulti(words...)

	h, _, diagnostics, err := Decode(data)

	assert.NoError(t, err)
	assert.Empty(t, diagnostics)
	assert.Equal(t, uint16(TrailerOffset+2*9), h.DataOffset)
	assert.Len(t, h.Extended.ExtraSIDs, 8)
	assert.Equal(t, byte(0x50), h.Extended.ExtraSIDs[7].Address)
}

func TestDecodeMultiUnterminatedTrailer(t *testing.T) {
	data := buildMulti(0x0142, 0x0044)
	// overwrite the terminator word and keep the buffer length
	field.PutUint16(data, len(data)-2, 0x0046)

	h, _, _, err := Decode(data)

	assert.Nil(t, h)
	assert.True(t, errors.Is(err, ErrUnterminatedTrailer))
}

func TestDecodeMultiReservedBitsWarning(t *testing.T) {
	data := buildMulti(0x8142)

	h, _, diagnostics, err := Decode(data)

	assert.NoError(t, err)
	assert.Len(t, diagnostics, 1)
	assert.Equal(t, Warning, diagnostics[0].Severity)
	assert.Equal(t, "extraSid[0]", diagnostics[0].Field)
	assert.Equal(t, TrailerOffset, diagnostics[0].Offset)
	assert.Len(t, h.Extended.ExtraSIDs, 1)
}

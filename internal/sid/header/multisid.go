package header

import (
	"fmt"

	"github.com/retroenv/sidfile/internal/sid/field"
)

// OutputChannel selects the stereo channel an extra SID is mixed to.
type OutputChannel byte

// Output channels, one bit per descriptor word.
const (
	ChannelLeft OutputChannel = iota
	ChannelRight
)

// String implements fmt.Stringer.
func (c OutputChannel) String() string {
	if c == ChannelRight {
		return "right"
	}
	return "left"
}

// SIDDescriptor describes one additional SID chip in the multi SID
// vendor trailer: its model, output channel and base address in the
// middle nibble encoding.
type SIDDescriptor struct {
	Model   SIDModel
	Channel OutputChannel
	Address byte
}

// Descriptor word layout, bit 15 down to bit 0:
// 5 reserved bits (zero), 2 bits model, 1 bit channel, 8 bits address.
const (
	descriptorModelShift   = 9
	descriptorChannelShift = 8
	descriptorReservedMask = 0xF800
)

// Word packs the descriptor into its 16 bit wire representation.
// A zero word is the trailer terminator, which a descriptor with any
// populated field can not produce.
func (d SIDDescriptor) Word() uint16 {
	return uint16(d.Model&3)<<descriptorModelShift |
		uint16(d.Channel&1)<<descriptorChannelShift |
		uint16(d.Address)
}

// DescriptorFromWord unpacks a non-zero trailer word.
func DescriptorFromWord(word uint16) SIDDescriptor {
	return SIDDescriptor{
		Model:   SIDModel(word >> descriptorModelShift & 3),
		Channel: OutputChannel(word >> descriptorChannelShift & 1),
		Address: byte(word),
	}
}

// ModelOrDefault returns the descriptor model, substituting the primary
// chip's model when the descriptor leaves it unknown.
func (d SIDDescriptor) ModelOrDefault(primary SIDModel) SIDModel {
	if d.Model == ModelUnknown {
		return primary
	}
	return d.Model
}

// decodeTrailer scans the descriptor words starting at TrailerOffset
// until the zero terminator word. The scan is bounded by the remaining
// buffer length so that corrupted input terminates: a missing
// terminator is a structural error. It returns the descriptors, the
// trailer length in bytes including the terminator and a warning for
// every word with reserved bits set.
func decodeTrailer(data []byte) ([]SIDDescriptor, int, Diagnostics, error) {
	var sids []SIDDescriptor
	var diagnostics Diagnostics

	limit := (len(data) - TrailerOffset) / 2
	for i := 0; i < limit; i++ {
		offset := TrailerOffset + 2*i
		word := field.Uint16(data, offset)
		if word == 0 {
			return sids, 2 * (i + 1), diagnostics, nil
		}

		if word&descriptorReservedMask != 0 {
			diagnostics = append(diagnostics, Diagnostic{
				Severity: Warning,
				Field:    fmt.Sprintf("extraSid[%d]", i),
				Offset:   offset,
				Message: fmt.Sprintf("reserved descriptor bits set: got $%04X, want zero in mask $%04X",
					word, uint16(descriptorReservedMask)),
			})
		}
		sids = append(sids, DescriptorFromWord(word))
	}

	return nil, 0, nil, fmt.Errorf("%w: no terminator word in %d bytes after offset $%02X",
		ErrUnterminatedTrailer, len(data)-TrailerOffset, TrailerOffset)
}

// encodeTrailer writes the descriptor words followed by the zero
// terminator word into the buffer.
func encodeTrailer(data []byte, sids []SIDDescriptor) {
	offset := TrailerOffset
	for _, sid := range sids {
		field.PutUint16(data, offset, sid.Word())
		offset += 2
	}
	field.PutUint16(data, offset, 0)
}

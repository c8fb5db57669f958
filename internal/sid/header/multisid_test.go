package header

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDescriptorWord(t *testing.T) {
	tests := []struct {
		name       string
		word       uint16
		descriptor SIDDescriptor
	}{
		{
			name: "right channel at $D420",
			word: 0x0142,
			descriptor: SIDDescriptor{
				Model:   ModelUnknown,
				Channel: ChannelRight,
				Address: 0x42,
			},
		},
		{
			name: "left channel unknown model",
			word: 0x0043,
			descriptor: SIDDescriptor{
				Model:   ModelUnknown,
				Channel: ChannelLeft,
				Address: 0x43,
			},
		},
		{
			name: "8580 left at $DE00",
			word: 0x04E0,
			descriptor: SIDDescriptor{
				Model:   Model8580,
				Channel: ChannelLeft,
				Address: 0xE0,
			},
		},
		{
			name: "both models right at $D500",
			word: 0x0750,
			descriptor: SIDDescriptor{
				Model:   ModelAny,
				Channel: ChannelRight,
				Address: 0x50,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.descriptor, DescriptorFromWord(tt.word))
			assert.Equal(t, tt.word, tt.descriptor.Word())
		})
	}
}

func TestDescriptorReservedBitsIgnored(t *testing.T) {
	// reserved bits do not leak into the decoded descriptor
	descriptor := DescriptorFromWord(0x8142)
	assert.Equal(t, SIDDescriptor{Channel: ChannelRight, Address: 0x42}, descriptor)
	assert.Equal(t, uint16(0x0142), descriptor.Word())
}

func TestModelOrDefault(t *testing.T) {
	unknown := SIDDescriptor{Model: ModelUnknown}
	assert.Equal(t, Model8580, unknown.ModelOrDefault(Model8580))

	fixed := SIDDescriptor{Model: Model6581}
	assert.Equal(t, Model6581, fixed.ModelOrDefault(Model8580))
}

package header

// PlayerType selects between the built-in player and Compute!'s
// Sidplayer MUS data.
type PlayerType byte

// Player types, bit 0 of the flags word.
const (
	PlayerBuiltIn PlayerType = iota
	PlayerComputeSidplayer
)

// String implements fmt.Stringer.
func (p PlayerType) String() string {
	if p == PlayerComputeSidplayer {
		return "Compute!'s Sidplayer"
	}
	return "built-in"
}

// Compatibility is the magic dependent meaning of bit 1 of the flags
// word: for PSID a set bit marks PlaySID specific samples, for RSID a
// C64 BASIC program.
type Compatibility byte

// Compatibility values.
const (
	CompatC64     Compatibility = iota
	CompatPlaySID               // PSID only
	CompatBasic                 // RSID only
)

// String implements fmt.Stringer.
func (c Compatibility) String() string {
	switch c {
	case CompatPlaySID:
		return "PlaySID specific"
	case CompatBasic:
		return "C64 BASIC"
	default:
		return "C64 compatible"
	}
}

// Clock is the video standard the tune is written for.
type Clock byte

// Clock standards, bits 2-3 of the flags word.
const (
	ClockUnknown Clock = iota
	ClockPAL
	ClockNTSC
	ClockAny
)

// String implements fmt.Stringer.
func (c Clock) String() string {
	switch c {
	case ClockPAL:
		return "PAL"
	case ClockNTSC:
		return "NTSC"
	case ClockAny:
		return "PAL and NTSC"
	default:
		return "unknown"
	}
}

// SIDModel identifies the targeted SID chip revision.
type SIDModel byte

// SID models, two bits per chip in the flags word.
const (
	ModelUnknown SIDModel = iota
	Model6581
	Model8580
	ModelAny
)

// String implements fmt.Stringer.
func (m SIDModel) String() string {
	switch m {
	case Model6581:
		return "MOS 6581"
	case Model8580:
		return "MOS 8580"
	case ModelAny:
		return "MOS 6581 and 8580"
	default:
		return "unknown"
	}
}

// Flags is the structured view of the 16 bit flags word at offset
// 0x76, present from revision 2 on. Model2 and Model3 describe the
// fixed second and third SID slots of the classic v3/v4 layouts and
// stay unknown for all other variants.
type Flags struct {
	Player        PlayerType
	Compatibility Compatibility
	Clock         Clock
	Model1        SIDModel
	Model2        SIDModel
	Model3        SIDModel
}

// Word packs the flags into their wire representation. The
// compatibility values PlaySID specific and C64 BASIC share bit 1,
// the magic decides which one a set bit means.
func (f Flags) Word() uint16 {
	var word uint16
	word |= uint16(f.Player) & 1
	if f.Compatibility != CompatC64 {
		word |= 1 << 1
	}
	word |= uint16(f.Clock&3) << 2
	word |= uint16(f.Model1&3) << 4
	word |= uint16(f.Model2&3) << 6
	word |= uint16(f.Model3&3) << 8
	return word
}

// FlagsFromWord unpacks a flags word. For RSID a set bit 1 means a C64
// BASIC program, for PSID it means PlaySID specific samples.
func FlagsFromWord(word uint16, magic Magic) Flags {
	compat := CompatC64
	if word>>1&1 == 1 {
		if magic == MagicRSID {
			compat = CompatBasic
		} else {
			compat = CompatPlaySID
		}
	}

	return Flags{
		Player:        PlayerType(word & 1),
		Compatibility: compat,
		Clock:         Clock(word >> 2 & 3),
		Model1:        SIDModel(word >> 4 & 3),
		Model2:        SIDModel(word >> 6 & 3),
		Model3:        SIDModel(word >> 8 & 3),
	}
}

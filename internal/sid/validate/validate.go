// Package validate implements the cross-field constraint checks of the
// tune header family. Validation is fail-soft: every violation is
// collected instead of stopping at the first one, tagged fatal or
// warning, so that lenient archival tools and strict playback tools
// can apply different thresholds to the same result.
package validate

import (
	"fmt"

	"github.com/retroenv/sidfile/internal/sid/header"
)

// Check runs every rule applicable to the header's magic and variant
// and returns the collected diagnostics. The payload is needed to
// derive the effective load range for the relocation checks; it is
// not modified.
func Check(h *header.TuneHeader, payload []byte) header.Diagnostics {
	c := &checker{h: h, payload: payload}

	c.checkCommon()
	switch h.Magic {
	case header.MagicRSID:
		c.checkRSID()
	default:
		c.checkPSID()
	}
	c.checkVariantCapacity()
	c.checkRelocation()
	c.checkChips()

	return c.diagnostics
}

type checker struct {
	h           *header.TuneHeader
	payload     []byte
	diagnostics header.Diagnostics
}

func (c *checker) fatal(field string, offset int, format string, args ...any) {
	c.add(header.Fatal, field, offset, format, args...)
}

func (c *checker) warn(field string, offset int, format string, args ...any) {
	c.add(header.Warning, field, offset, format, args...)
}

func (c *checker) add(severity header.Severity, field string, offset int,
	format string, args ...any) {

	c.diagnostics = append(c.diagnostics, header.Diagnostic{
		Severity: severity,
		Field:    field,
		Offset:   offset,
		Message:  fmt.Sprintf(format, args...),
	})
}

// checkCommon verifies the rules shared by both format families.
func (c *checker) checkCommon() {
	h := c.h

	if size := h.Size(); int(h.DataOffset) != size {
		c.fatal("dataOffset", header.OffsetDataOffset,
			"got $%04X, want computed variant size $%04X", h.DataOffset, size)
	}

	if h.SongCount < 1 || h.SongCount > 256 {
		c.fatal("songCount", header.OffsetSongCount,
			"got %d, want 1..256", h.SongCount)
	}
	if h.StartSong < 1 || h.StartSong > h.SongCount {
		c.fatal("startSong", header.OffsetStartSong,
			"got %d, want 1..%d", h.StartSong, h.SongCount)
	}
}

// checkPSID verifies the PSID specific rules. Addresses are
// unrestricted, only the compatibility flag is constrained.
func (c *checker) checkPSID() {
	h := c.h
	if h.Extended != nil && h.Extended.Flags.Compatibility == header.CompatBasic {
		c.fatal("flags", header.OffsetFlags,
			"got %s, PSID does not support C64 BASIC files",
			h.Extended.Flags.Compatibility)
	}
}

// checkRSID verifies the RSID field lockdowns: tunes have to bring
// their own player, so load address, play address and speed bitmap are
// forced to zero and the init address is confined to free RAM.
func (c *checker) checkRSID() {
	h := c.h

	if h.LoadAddress != 0 {
		c.fatal("loadAddress", header.OffsetLoadAddress,
			"got $%04X, loadAddress must be 0 for RSID", h.LoadAddress)
	}
	if h.PlayAddress != 0 {
		c.fatal("playAddress", header.OffsetPlayAddress,
			"got $%04X, playAddress must be 0 for RSID", h.PlayAddress)
	}
	if h.Speed != 0 {
		c.fatal("speed", header.OffsetSpeed,
			"got $%08X, speed must be 0 for RSID", h.Speed)
	}
	if h.Extended != nil && h.Extended.Flags.Compatibility == header.CompatPlaySID {
		c.fatal("flags", header.OffsetFlags,
			"got %s, RSID does not support PlaySID samples",
			h.Extended.Flags.Compatibility)
	}

	c.checkRSIDInitAddress()
}

// checkRSIDInitAddress verifies the init address against the RSID
// memory rules: exactly 0 for C64 BASIC tunes, otherwise within
// $07E8-$9FFF or $C000-$CFFF, never inside the BASIC ROM, I/O or
// Kernal ROM areas and never below $07E8.
func (c *checker) checkRSIDInitAddress() {
	h := c.h

	basic := h.Extended != nil && h.Extended.Flags.Compatibility == header.CompatBasic
	if basic {
		if h.InitAddress != 0 {
			c.fatal("initAddress", header.OffsetInitAddress,
				"got $%04X, initAddress must be 0 when the C64 BASIC flag is set",
				h.InitAddress)
		}
		return
	}

	addr := h.InitAddress
	if (addr >= 0x07E8 && addr <= 0x9FFF) || (addr >= 0xC000 && addr <= 0xCFFF) {
		return
	}
	c.fatal("initAddress", header.OffsetInitAddress,
		"got $%04X, want $07E8-$9FFF or $C000-$CFFF for RSID", addr)
}

// checkVariantCapacity warns about populated fields the header's
// variant declares meaningless: they are ignored by players and
// indicate a malformed file.
func (c *checker) checkVariantCapacity() {
	h := c.h
	if h.Extended == nil {
		return
	}
	flags := h.Extended.Flags

	switch h.Variant() {
	case header.VariantV2:
		if h.Extended.SecondSIDAddress != 0 {
			c.warn("secondSidAddress", header.OffsetSecondSID,
				"got $%02X, v2 has no second SID, ignored", h.Extended.SecondSIDAddress)
		}
		if flags.Model2 != header.ModelUnknown {
			c.warn("flags", header.OffsetFlags,
				"second SID model %s set, v2 has no second SID, ignored", flags.Model2)
		}
		fallthrough

	case header.VariantV3:
		if h.Extended.ThirdSIDAddress != 0 {
			c.warn("thirdSidAddress", header.OffsetThirdSID,
				"got $%02X, %s has no third SID, ignored",
				h.Extended.ThirdSIDAddress, h.Variant())
		}
		if flags.Model3 != header.ModelUnknown {
			c.warn("flags", header.OffsetFlags,
				"third SID model %s set, %s has no third SID, ignored",
				flags.Model3, h.Variant())
		}

	case header.VariantMulti:
		// Extra chip models live in the descriptor words.
		if flags.Model2 != header.ModelUnknown || flags.Model3 != header.ModelUnknown {
			c.warn("flags", header.OffsetFlags,
				"fixed slot SID models set, multi SID headers describe extra chips "+
					"in the trailer, ignored")
		}
	}
}

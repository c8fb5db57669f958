package validate

import (
	"encoding/binary"

	"github.com/retroenv/sidfile/internal/sid/header"
)

// RSID memory areas the relocation range must stay clear of: zero
// page through the default screen, BASIC ROM, and I/O plus Kernal ROM.
var rsidReservedAreas = []memoryArea{
	{0x0000, 0x03FF, "zero page and system area"},
	{0xA000, 0xBFFF, "BASIC ROM"},
	{0xD000, 0xFFFF, "I/O and Kernal ROM"},
}

type memoryArea struct {
	start int
	end   int
	name  string
}

// checkRelocation verifies the free page range hint: start pages 0 and
// $FF carry no range and require a zero page count, and a populated
// range must not intersect the payload's load range nor, for RSID, the
// reserved memory areas.
func (c *checker) checkRelocation() {
	h := c.h
	if h.Extended == nil {
		return
	}

	startPage := h.Extended.RelocStartPage
	pageCount := h.Extended.RelocPageCount

	if startPage == 0 || startPage == 0xFF {
		if pageCount != 0 {
			c.warn("relocPageCount", header.OffsetRelocPageCount,
				"got %d pages, start page $%02X carries no range, want 0",
				pageCount, startPage)
		}
		return
	}
	if pageCount == 0 {
		return
	}

	relocStart := int(startPage) * 256
	relocEnd := relocStart + int(pageCount)*256 - 1
	if relocEnd > 0xFFFF {
		c.fatal("relocPageCount", header.OffsetRelocPageCount,
			"range $%04X-$%05X exceeds the 64k address space", relocStart, relocEnd)
		return
	}

	if loadStart, loadEnd, ok := c.loadRange(); ok &&
		relocStart <= loadEnd && loadStart <= relocEnd {
		c.fatal("relocStartPage", header.OffsetRelocStartPage,
			"range $%04X-$%04X overlaps the load range $%04X-$%04X",
			relocStart, relocEnd, loadStart, loadEnd)
	}

	if h.Magic != header.MagicRSID {
		return
	}
	for _, area := range rsidReservedAreas {
		if relocStart <= area.end && area.start <= relocEnd {
			c.fatal("relocStartPage", header.OffsetRelocStartPage,
				"range $%04X-$%04X overlaps the %s $%04X-$%04X",
				relocStart, relocEnd, area.name, area.start, area.end)
		}
	}
}

// loadRange derives the effective memory range the payload occupies.
// A zero load address means the payload's first two bytes are a little
// endian load address consumed by the loader.
func (c *checker) loadRange() (int, int, bool) {
	addr := int(c.h.LoadAddress)
	size := len(c.payload)

	if addr == 0 {
		if size < 2 {
			return 0, 0, false
		}
		addr = int(binary.LittleEndian.Uint16(c.payload))
		size -= 2
	}
	if size == 0 {
		return 0, 0, false
	}
	return addr, addr + size - 1, true
}

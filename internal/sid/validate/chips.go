package validate

import (
	"fmt"

	"github.com/retroenv/sidfile/internal/sid/header"
)

// checkChips verifies the extra SID chip addresses of the classic
// v3/v4 fixed slots and the multi SID descriptor trailer. An encoded
// value outside the legal ranges means the chip is absent: a warning
// when non-zero, since the value carries no usable address. Two
// present chips sharing one address is fatal.
func (c *checker) checkChips() {
	h := c.h
	if h.Extended == nil {
		return
	}

	type chip struct {
		field  string
		offset int
		value  byte
	}
	var chips []chip

	switch h.Variant() {
	case header.VariantV3:
		chips = append(chips,
			chip{"secondSidAddress", header.OffsetSecondSID, h.Extended.SecondSIDAddress})

	case header.VariantV4:
		chips = append(chips,
			chip{"secondSidAddress", header.OffsetSecondSID, h.Extended.SecondSIDAddress},
			chip{"thirdSidAddress", header.OffsetThirdSID, h.Extended.ThirdSIDAddress})

	case header.VariantMulti:
		for i, sid := range h.Extended.ExtraSIDs {
			chips = append(chips, chip{
				field:  fmt.Sprintf("extraSid[%d]", i),
				offset: header.TrailerOffset + 2*i,
				value:  sid.Address,
			})
		}
	}

	present := map[uint16]string{}
	for _, ch := range chips {
		if !header.SIDAddressPresent(ch.value) {
			if ch.value != 0 {
				c.warn(ch.field, ch.offset,
					"got $%02X, not a usable SID address, chip treated as absent",
					ch.value)
			}
			continue
		}

		addr := header.SIDAddress(ch.value)
		if first, ok := present[addr]; ok {
			c.fatal(ch.field, ch.offset,
				"duplicate chip address $%04X, already used by %s", addr, first)
			continue
		}
		present[addr] = ch.field
	}
}

// Package sid is the entry point of the tune file codec: it combines
// the raw header codec with the constraint validator. Decode, Check
// and Encode are pure functions over in-memory buffers and safe for
// concurrent use on independent inputs.
package sid

import (
	"github.com/retroenv/sidfile/internal/sid/header"
	"github.com/retroenv/sidfile/internal/sid/validate"
)

// Decode parses a raw tune file buffer and validates the result. A
// structural problem aborts with an error and no header. Constraint
// violations do not: the best-effort header is returned together with
// the collected diagnostics and the caller decides which severities
// are acceptable.
func Decode(data []byte) (*header.TuneHeader, []byte, header.Diagnostics, error) {
	h, payload, diagnostics, err := header.Decode(data)
	if err != nil {
		return nil, nil, nil, err
	}

	diagnostics = append(diagnostics, validate.Check(h, payload)...)
	return h, payload, diagnostics, nil
}

// Encode serializes a header and its payload, recomputing the derived
// size fields. It does not run the validator: callers encoding edited
// headers re-validate the copy first.
func Encode(h *header.TuneHeader, payload []byte) ([]byte, error) {
	return header.Encode(h, payload)
}

// New returns a header for a new tune file with the customary
// defaults: PSID v2, init $1000, play $1003, one song. The returned
// header validates cleanly against a two byte zero payload.
func New() *header.TuneHeader {
	h := &header.TuneHeader{
		Magic:       header.MagicPSID,
		Version:     header.Version2,
		InitAddress: 0x1000,
		PlayAddress: 0x1003,
		SongCount:   1,
		StartSong:   1,
		Name:        "SONGNAME",
		Author:      "First Last (Handle)",
		Released:    "2026 Organisation",
		Extended:    &header.Extended{},
	}
	h.DataOffset = uint16(h.Size())
	return h
}

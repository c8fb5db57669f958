// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sidfile/internal/options"
	"github.com/retroenv/sidfile/internal/sid"
	"github.com/retroenv/sidfile/internal/sid/header"
)

// ErrDiagnostics is returned when a file decoded but produced
// diagnostics above the acceptable threshold: any fatal entry, or any
// entry at all in strict mode.
var ErrDiagnostics = errors.New("header has diagnostics")

// ProcessFile handles the complete workflow for one tune file: load,
// decode, report the header and its diagnostics and optionally write a
// normalized re-encoding.
func ProcessFile(logger *log.Logger, opts options.Program, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", file, err)
	}

	h, payload, diagnostics, err := sid.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding header: %w", err)
	}

	printHeader(logger, opts, file, h, payload)
	reportDiagnostics(logger, diagnostics)

	if opts.Output != "" {
		if err := writeNormalized(opts.Output, h, payload); err != nil {
			return err
		}
		logger.Info("Wrote normalized file", log.String("file", opts.Output))
	}

	if diagnostics.HasFatal() || (opts.Strict && len(diagnostics) > 0) {
		return fmt.Errorf("%w: %d entries", ErrDiagnostics, len(diagnostics))
	}
	return nil
}

// printHeader reports the decoded header fields.
func printHeader(logger *log.Logger, opts options.Program, file string,
	h *header.TuneHeader, payload []byte) {

	if opts.Quiet {
		return
	}

	logger.Info("Tune header",
		log.String("file", file),
		log.String("magic", string(h.Magic)),
		log.Stringer("variant", h.Variant()),
		log.Int("payload_bytes", len(payload)),
	)
	logger.Info("Credits",
		log.String("name", h.Name),
		log.String("author", h.Author),
		log.String("released", h.Released),
	)
	logger.Info("Songs",
		log.Int("count", int(h.SongCount)),
		log.Int("start", int(h.StartSong)),
		log.Hex("speed", h.Speed),
	)
	logger.Info("Addresses",
		log.Hex("load", h.LoadAddress),
		log.Hex("init", h.InitAddress),
		log.Hex("play", h.PlayAddress),
	)

	if h.Extended == nil {
		return
	}
	printExtended(logger, h)
}

// printExtended reports the fields present from revision 2 on.
func printExtended(logger *log.Logger, h *header.TuneHeader) {
	flags := h.Extended.Flags
	logger.Info("Flags",
		log.Stringer("player", flags.Player),
		log.Stringer("compatibility", flags.Compatibility),
		log.Stringer("clock", flags.Clock),
		log.Stringer("sid_model", flags.Model1),
	)

	if h.Extended.RelocStartPage != 0 {
		logger.Info("Relocation range",
			log.Uint8("start_page", h.Extended.RelocStartPage),
			log.Uint8("page_count", h.Extended.RelocPageCount),
		)
	}

	printExtraChips(logger, h)
}

// printExtraChips reports every present extra chip, fixed slots and
// descriptor trailer alike.
func printExtraChips(logger *log.Logger, h *header.TuneHeader) {
	flags := h.Extended.Flags

	for _, slot := range []struct {
		name  string
		value byte
		model header.SIDModel
	}{
		{"second", h.Extended.SecondSIDAddress, flags.Model2},
		{"third", h.Extended.ThirdSIDAddress, flags.Model3},
	} {
		if header.SIDAddressPresent(slot.value) {
			logger.Info("Extra SID chip",
				log.String("slot", slot.name),
				log.Hex("address", header.SIDAddress(slot.value)),
				log.Stringer("model", slot.model),
			)
		}
	}

	for i, sid := range h.Extended.ExtraSIDs {
		logger.Info("Extra SID chip",
			log.Int("slot", i+1),
			log.Hex("address", header.SIDAddress(sid.Address)),
			log.Stringer("model", sid.ModelOrDefault(flags.Model1)),
			log.Stringer("channel", sid.Channel),
		)
	}
}

// reportDiagnostics logs every collected violation with its severity.
func reportDiagnostics(logger *log.Logger, diagnostics header.Diagnostics) {
	for _, diagnostic := range diagnostics {
		if diagnostic.Severity == header.Fatal {
			logger.Error("Header constraint violated",
				log.String("field", diagnostic.Field),
				log.Hex("offset", diagnostic.Offset),
				log.String("message", diagnostic.Message))
		} else {
			logger.Warn("Header warning",
				log.String("field", diagnostic.Field),
				log.Hex("offset", diagnostic.Offset),
				log.String("message", diagnostic.Message))
		}
	}
}

// writeNormalized re-encodes the header with recomputed derived fields
// and writes it together with the payload.
func writeNormalized(file string, h *header.TuneHeader, payload []byte) error {
	data, err := sid.Encode(h, payload)
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", file, err)
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("sidfile", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

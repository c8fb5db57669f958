// Package options contains the program options.
package options

// Program options of the sidfile tool.
type Program struct {
	Inputs []string // tune files to inspect
	Output string   // re-encoded output file, only valid with a single input

	Strict bool // treat warnings like fatal diagnostics
	Debug  bool
	Quiet  bool
}

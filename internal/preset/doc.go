// Package preset loads HCL preset files: flat lists of option assignments
// that pre-fill a module's options before command-line flags are applied.
//
//	assembler       = "megahit"
//	megahit-min-len = 500
//	outdir          = "sample/results"
//
// Attribute names are option keys of the selected module. Values are plain
// literals (strings, numbers, booleans or null); no variables or functions
// are available.
package preset

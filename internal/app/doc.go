// Package app contains the core application logic. It turns a parsed
// Config into a module run: it builds the module catalogue, applies presets
// and command-line overrides, and hands the resulting selection to the
// runner, decoupled from any specific entrypoint.
package app

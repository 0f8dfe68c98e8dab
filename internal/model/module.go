// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines ModuleDef, the static description of a pipeline stage, and
// ModuleSpec, the immutable selection of that stage with concrete option
// values for a single invocation.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Keys of the options every module carries.
const (
	KeyWorkdir      = "workdir"
	KeyOutdir       = "outdir"
	KeyDatadir      = "datadir"
	KeyFastadir     = "fastadir"
	KeySamplelist   = "samplelist"
	KeyFasta        = "fasta"
	KeyCustomConfig = "custom-config"
)

// DefaultOutdir is used when no output directory is given.
const DefaultOutdir = "results"

// ErrUnknownOption is returned when a value is supplied for a key the module
// does not declare.
var ErrUnknownOption = errors.New("unknown option")

// CommonOptions returns the options shared by every module, in the order they
// are serialized.
func CommonOptions() []OptionDef {
	custom := String(KeyCustomConfig, "Custom config file copied verbatim as the run config.")
	custom.Internal = true
	return []OptionDef{
		String(KeyWorkdir, "Working directory; overrides the workdir of the config file."),
		StringDefault(KeyOutdir, DefaultOutdir, "Output directory, relative to the workdir."),
		String(KeyDatadir, "Directory with the input reads, relative to the workdir."),
		String(KeyFastadir, "Directory with input FASTA files, relative to the workdir."),
		String(KeySamplelist, "CSV sample list."),
		String(KeyFasta, "Input FASTA file."),
		custom,
	}
}

// ModuleDef is the catalogue entry for one pipeline stage.
type ModuleDef struct {
	Name        string
	Description string
	Options     []OptionDef
}

// NewModuleDef builds a module definition whose options are the common
// options followed by the stage-specific ones.
func NewModuleDef(name, description string, opts ...OptionDef) *ModuleDef {
	all := CommonOptions()
	all = append(all, opts...)
	return &ModuleDef{Name: name, Description: description, Options: all}
}

// Option returns the definition of the option with the given key.
func (d *ModuleDef) Option(key string) (OptionDef, bool) {
	for _, o := range d.Options {
		if o.Key == key {
			return o, true
		}
	}
	return OptionDef{}, false
}

// Validate checks that the definition is well formed: a non-empty name,
// unique non-empty option keys, and defaults that match the declared kinds.
func (d *ModuleDef) Validate() error {
	var errs []string
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, "module name is empty")
	}
	seen := make(map[string]struct{}, len(d.Options))
	for _, o := range d.Options {
		if o.Key == "" {
			errs = append(errs, "option with empty key")
			continue
		}
		if strings.ContainsAny(o.Key, "_ =\"") {
			errs = append(errs, fmt.Sprintf("option %q: key must be hyphenated and contain no spaces, quotes or '='", o.Key))
		}
		if _, dup := seen[o.Key]; dup {
			errs = append(errs, fmt.Sprintf("option %q declared twice", o.Key))
		}
		seen[o.Key] = struct{}{}
		if _, err := o.Coerce(o.DefaultValue()); err != nil {
			errs = append(errs, fmt.Sprintf("default: %v", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("module %q is invalid:\n- %s", d.Name, strings.Join(errs, "\n- "))
	}
	return nil
}

// ModuleSpec is a module selected for one invocation together with the
// value of each of its options. It is not modified after construction.
type ModuleSpec struct {
	name    string
	options []Option
}

// NewModuleSpec binds def to the given overrides. Options not present in
// overrides take their default. Keys not declared by def are rejected.
func NewModuleSpec(def *ModuleDef, overrides map[string]cty.Value) (*ModuleSpec, error) {
	var unknown []string
	for key := range overrides {
		if _, ok := def.Option(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w for module %q: %s", ErrUnknownOption, def.Name, strings.Join(unknown, ", "))
	}

	options := make([]Option, 0, len(def.Options))
	for _, o := range def.Options {
		v := o.DefaultValue()
		if ov, ok := overrides[o.Key]; ok {
			coerced, err := o.Coerce(ov)
			if err != nil {
				return nil, err
			}
			if coerced.IsNull() && !v.IsNull() {
				return nil, fmt.Errorf("option %q has a default and cannot be unset", o.Key)
			}
			v = coerced
		}
		options = append(options, Option{OptionDef: o, Value: v})
	}
	return &ModuleSpec{name: def.Name, options: options}, nil
}

// Name returns the module name.
func (s *ModuleSpec) Name() string { return s.name }

// Options returns the options in catalogue order.
func (s *ModuleSpec) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

// Lookup returns the option with the given key.
func (s *ModuleSpec) Lookup(key string) (Option, bool) {
	for _, o := range s.options {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// StringValue returns the text of the option, or "" when it is absent or
// not declared.
func (s *ModuleSpec) StringValue(key string) string {
	o, ok := s.Lookup(key)
	if !ok {
		return ""
	}
	return o.Text()
}

// Workdir returns the explicit working directory override, if any.
func (s *ModuleSpec) Workdir() string { return s.StringValue(KeyWorkdir) }

// Outdir returns the output directory, relative to the working directory.
// It is the same value the engine receives on its command line.
func (s *ModuleSpec) Outdir() string { return s.StringValue(KeyOutdir) }

// CustomConfig returns the path of the user-supplied config file, if any.
func (s *ModuleSpec) CustomConfig() string { return s.StringValue(KeyCustomConfig) }

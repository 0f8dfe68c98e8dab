// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the typed option system shared by every pipeline module.
// Option values are held as cty values so that booleans, numbers and strings
// keep their kind all the way from flag parsing to serialization, and a null
// value stands for "not provided".
package model

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Kind is the declared value type of an option.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Type returns the cty type used to hold values of this kind.
func (k Kind) Type() cty.Type {
	switch k {
	case KindBool:
		return cty.Bool
	case KindInt, KindFloat:
		return cty.Number
	default:
		return cty.String
	}
}

// OptionDef declares one configurable option of a module.
type OptionDef struct {
	Key     string
	Kind    Kind
	Default cty.Value // cty.NilVal or a null value means no default.
	Usage   string

	// Internal options are bookkeeping for this tool (e.g. custom-config) and
	// are never passed on the engine command line.
	Internal bool
}

// Bool declares a boolean option. Booleans always carry a value.
func Bool(key string, def bool, usage string) OptionDef {
	return OptionDef{Key: key, Kind: KindBool, Default: cty.BoolVal(def), Usage: usage}
}

// Int declares an integer option with a default.
func Int(key string, def int64, usage string) OptionDef {
	return OptionDef{Key: key, Kind: KindInt, Default: cty.NumberIntVal(def), Usage: usage}
}

// Float declares a floating point option with a default.
func Float(key string, def float64, usage string) OptionDef {
	return OptionDef{Key: key, Kind: KindFloat, Default: cty.NumberFloatVal(def), Usage: usage}
}

// String declares a string option that is absent unless set.
func String(key string, usage string) OptionDef {
	return OptionDef{Key: key, Kind: KindString, Usage: usage}
}

// StringDefault declares a string option with a default.
func StringDefault(key, def, usage string) OptionDef {
	return OptionDef{Key: key, Kind: KindString, Default: cty.StringVal(def), Usage: usage}
}

// DefaultValue returns the option's default, normalized to a typed null when
// the option has none.
func (d OptionDef) DefaultValue() cty.Value {
	if d.Default.IsNull() {
		return cty.NullVal(d.Kind.Type())
	}
	return d.Default
}

// Coerce converts v to the option's kind. A null v yields a typed null.
func (d OptionDef) Coerce(v cty.Value) (cty.Value, error) {
	if v.IsNull() {
		return cty.NullVal(d.Kind.Type()), nil
	}
	if !v.IsKnown() {
		return cty.NilVal, fmt.Errorf("option %q: value is not known", d.Key)
	}
	out, err := convert.Convert(v, d.Kind.Type())
	if err != nil {
		return cty.NilVal, fmt.Errorf("option %q expects %s: %w", d.Key, d.Kind, err)
	}
	if d.Kind == KindInt && !out.AsBigFloat().IsInt() {
		return cty.NilVal, fmt.Errorf("option %q expects %s, got %s", d.Key, d.Kind, FormatValue(out))
	}
	return out, nil
}

// Parse converts a command-line string into a value of the option's kind.
func (d OptionDef) Parse(s string) (cty.Value, error) {
	switch d.Kind {
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return cty.NilVal, fmt.Errorf("option %q expects a boolean, got %q", d.Key, s)
		}
		return cty.BoolVal(b), nil
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return cty.NilVal, fmt.Errorf("option %q expects an integer, got %q", d.Key, s)
		}
		return cty.NumberIntVal(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return cty.NilVal, fmt.Errorf("option %q expects a number, got %q", d.Key, s)
		}
		return cty.NumberFloatVal(f), nil
	default:
		return cty.StringVal(s), nil
	}
}

// Option is an option definition bound to its value for one invocation.
type Option struct {
	OptionDef
	Value cty.Value
}

// IsSet reports whether the option carries a value.
func (o Option) IsSet() bool {
	return !o.Value.IsNull()
}

// Text renders the value the way it appears on the engine command line.
// Absent values render as the empty string.
func (o Option) Text() string {
	if !o.IsSet() {
		return ""
	}
	return FormatValue(o.Value)
}

// Native returns the value as a plain Go value suitable for encoding into a
// config document: bool, int, float64 or string. Absent values yield nil.
func (o Option) Native() any {
	if !o.IsSet() {
		return nil
	}
	switch o.Kind {
	case KindBool:
		return o.Value.True()
	case KindInt:
		i, _ := o.Value.AsBigFloat().Int64()
		return int(i)
	case KindFloat:
		f, _ := o.Value.AsBigFloat().Float64()
		return f
	default:
		return o.Value.AsString()
	}
}

// FormatValue renders a known, non-null primitive cty value as text.
func FormatValue(v cty.Value) string {
	switch v.Type() {
	case cty.Bool:
		return strconv.FormatBool(v.True())
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return strconv.FormatInt(i, 10)
			}
			return bf.Text('f', 0)
		}
		f, _ := bf.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case cty.String:
		return v.AsString()
	default:
		return v.GoString()
	}
}

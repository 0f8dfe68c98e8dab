// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the generic options that govern the external workflow
// engine, independent of which module is being run.
package model

import "github.com/zclconf/go-cty/cty"

// Engine defaults.
const (
	DefaultJobs        = 4
	DefaultLatencyWait = 20
)

// EngineOptions are the engine-level settings of one invocation.
type EngineOptions struct {
	Jobs        int
	LatencyWait int

	DryRun          bool
	ForceAll        bool
	RerunIncomplete bool
	KeepGoing       bool
	Unlock          bool
	PrintShellCmds  bool

	Profile string

	// AddArgs is appended to the command line verbatim.
	AddArgs string
}

// DefaultEngineOptions returns the options used when the user sets none.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{Jobs: DefaultJobs, LatencyWait: DefaultLatencyWait}
}

// EngineFlag is one engine option in serialization order.
type EngineFlag struct {
	Flag  string
	Value cty.Value

	// Count flags are always emitted as "<flag> <value>", even when zero.
	Count bool
}

// Flags lists the engine options in the order they appear on the command
// line. AddArgs is not included.
func (e EngineOptions) Flags() []EngineFlag {
	profile := cty.NullVal(cty.String)
	if e.Profile != "" {
		profile = cty.StringVal(e.Profile)
	}
	return []EngineFlag{
		{Flag: "-j", Value: cty.NumberIntVal(int64(e.Jobs)), Count: true},
		{Flag: "--latency-wait", Value: cty.NumberIntVal(int64(e.LatencyWait)), Count: true},
		{Flag: "--dry-run", Value: cty.BoolVal(e.DryRun)},
		{Flag: "--forceall", Value: cty.BoolVal(e.ForceAll)},
		{Flag: "--rerun-incomplete", Value: cty.BoolVal(e.RerunIncomplete)},
		{Flag: "--keep-going", Value: cty.BoolVal(e.KeepGoing)},
		{Flag: "--unlock", Value: cty.BoolVal(e.Unlock)},
		{Flag: "--printshellcmds", Value: cty.BoolVal(e.PrintShellCmds)},
		{Flag: "--profile", Value: profile},
	}
}

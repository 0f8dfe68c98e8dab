// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the typed, in-memory description of a vomix
// invocation. It knows nothing about flags, files or processes.
//
// # Core Concepts
//
//   - OptionDef: one named, typed option of a module, with an optional
//     default. Values are cty.Values so that the same definition can type
//     check a command-line string, an HCL preset expression and a default.
//
//   - ModuleDef: the catalogue entry of a pipeline stage. Every module carries
//     the common options (workdir, outdir, datadir and so on) ahead of its own.
//
//   - ModuleSpec: a ModuleDef resolved against user overrides. An option is
//     absent when it has no default and the user never set it; absent options
//     are neither written to the run config nor passed to the engine.
//
//   - EngineOptions: settings of the workflow engine itself, shared by all
//     modules, serialized after the module options.
package model

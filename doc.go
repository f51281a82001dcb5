// Package onnxmeta validates and compares the declared tensor interfaces
// of ONNX model artifacts, and manages the key-value metadata records
// embedded in them.
//
// The package serves two primary use cases:
//
//  1. Interface diffing - Differ compares the named, shaped input and
//     output layers of two models and reports whether the artifacts can
//     be swapped without changing surrounding pre/post-processing code.
//
//  2. Metadata management - Pipeline validates a user-supplied metadata
//     record against a fixed schema (required keys, value types, license
//     restrictions) and, only if fully valid, commits it into the
//     artifact, replacing any prior record.
//
// For CLI integration, NewCommand returns a complete Cobra command tree
// ("diff" and "meta" subcommands) that a parent tool can attach to its
// root command.
//
// # Artifact Access
//
// Models are read and rewritten at the protobuf wire level, so no ONNX
// runtime is required. Introspection walks the graph's input/output
// value infos; metadata writes strip every existing metadata_props entry
// and append the new record, leaving all other model bytes untouched.
//
// # Persistence
//
// Artifact writes go through a temporary file followed by a rename, so a
// failed persist never leaves a half-written model behind, even when
// overwriting the input artifact in place.
package onnxmeta

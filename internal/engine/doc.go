// Package engine is the boundary to the jq filter engine (github.com/itchyny/gojq).
//
// The package models the engine the way a native jq library is driven:
//
//   - State is an evaluation context, opened with New and released with Close.
//   - Program is a filter compiled against one State, released with Close.
//   - ParseFlags and DumpOptions are the native flag sets controlling how input
//     records are read and how results are dumped.
//   - ParsePalette parses colour palettes in JQ_COLORS syntax.
//
// Handles are never shared between invocations. Live reports how many handles
// are currently open, which callers use to verify that every exit path
// releases what it acquired.
//
// Errors returned by Compile are marked with ErrCompile, errors returned by
// Evaluate with ErrEvaluate and palette errors with ErrPalette; the message of
// the returned error is the engine diagnostic without added context.
package engine

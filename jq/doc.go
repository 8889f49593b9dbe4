// Package jq runs jq filter programs over JSON or raw text input.
//
// Options describes how input is read and how results are printed. It is a
// plain value: the With methods return modified copies and the zero value is
// equivalent to Default.
//
//	opts := jq.Default().WithSortKeys(true).WithIndentation(jq.Spaces(2))
//	out, err := jq.Run(".items[] | {name}", input, opts)
//
// Every call compiles the program against a fresh engine context and
// releases it before returning. Failures are reported as *Error values whose
// Kind tells configuration, compile and evaluation problems apart.
package jq

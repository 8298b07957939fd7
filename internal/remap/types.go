// Package remap implements the Diagnostic Remapper (C4) and Message
// Mapper (C5): the core of the Diagnostic Remapping Core. For every raw
// compiler diagnostic it produces a Diagnostic whose location and message
// point at the user's own source, regardless of whether the compiler
// originally rooted the diagnostic in the user file or in the synthesized
// harness (spec §4.4, §4.5).
package remap

import (
	"fmt"
	"strconv"
)

// Origin is the tagged sum a diagnostic is classified into before
// rewriting (spec §9 "dynamic dispatch over diagnostic origin" — a match
// over this sum replaces any inheritance-based per-error-shape scheme).
type Origin int

const (
	OriginUserFile Origin = iota
	OriginHarnessResult
	OriginHarnessCall
	OriginHarnessCallee
	OriginHarnessArgList
	OriginNoDefault
	OriginNotAModule
	OriginNotCallable
	OriginOther
)

// Diagnostic is a diagnostic rewritten to target the user's source (spec
// §3's Diagnostic, post-remap). Line and Column are 1-based positions in
// the user's source text. Code is 0 for synthesized diagnostics that have
// no single underlying compiler code of their own (there are none in this
// design — every case in §4.4 carries a concrete TS code).
type Diagnostic struct {
	Origin  Origin
	Code    int
	Start   int
	Length  int
	Line    int
	Column  int
	Message string
	// EnclosingName is the nearest function-like ancestor's name, used to
	// build the "at <name>(L:C)" stack line for type-level diagnostics
	// (spec §4.4 user branch). Empty if none is found.
	EnclosingName string
}

// WireStack renders the single-frame stack text spec §6/§8 expects for a
// compile-time diagnostic: "at <name>(line:column)", with an anonymous
// enclosing scope rendered as "null" — the same convention
// faultmap.Map uses for a runtime fault's frames, so both diagnostic
// kinds produce a stack in one shape on the wire.
func (d Diagnostic) WireStack() string {
	name := d.EnclosingName
	if name == "" {
		name = "null"
	}
	return fmt.Sprintf("at %s(%d:%d)", name, d.Line, d.Column)
}

// ErrUnmappedHarnessDiagnostic is raised when a harness-origin diagnostic
// doesn't match any of the known anchor cases (spec §4.4 case 6). This is
// a bug in the DRC itself, never a user-facing condition — callers
// surface it as a host/embedding error (spec §7), not a diagnostic.
type ErrUnmappedHarnessDiagnostic struct {
	Code int
}

func (e *ErrUnmappedHarnessDiagnostic) Error() string {
	return "remap: unmapped harness diagnostic (DRC bug, not user code): TS" + strconv.Itoa(e.Code)
}

// Package harness synthesizes the hidden execution harness module: a UL
// source unit that imports the user's module, declares ambient globals
// typed with the host-supplied signature, and calls the user's default
// export with host-supplied arguments (spec §4.1, component C1).
package harness

import (
	"fmt"

	"github.com/ulrunner/drc/internal/codegen"
	"github.com/ulrunner/drc/internal/vfile"
)

// Anchors are the HarnessAST anchor nodes, identified by structural
// position (byte offsets into Source) rather than identifier search, per
// the data model's HarnessAST invariant: the harness is constructed so
// these anchors always exist and are at known positions.
type Anchors struct {
	// ResultAssignmentLHS is the span of the identifier on the LHS of the
	// final assignment statement ("result").
	ResultAssignmentLHS Span
	// DefaultCall is the span of the call expression on the RHS of that
	// statement ("defaultExport(...args)").
	DefaultCall Span
	// DefaultCalleeIdentifier is the span of the callee of DefaultCall
	// ("defaultExport").
	DefaultCalleeIdentifier Span
	// DefaultCallArgList is the span of the argument list of DefaultCall
	// ("...args").
	DefaultCallArgList Span
	// ExpectedArgTypeNode is the span of the type annotation of the
	// ambient "args" declaration ("[<T1>, <T2>, ...]").
	ExpectedArgTypeNode Span
	// ExpectedReturnTypeNode is the span of the type annotation of the
	// ambient "result" declaration ("<R>").
	ExpectedReturnTypeNode Span
}

// Span is a half-open byte range [Start, End) into the synthesized source.
type Span struct {
	Start int
	End   int
}

// Len reports the span's length.
func (s Span) Len() int { return s.End - s.Start }

// Result is the synthesized harness: its UL source text and the anchor
// spans located within it.
type Result struct {
	Source  string
	Anchors Anchors
}

// calleeIdentifier is the synthesized name bound to the user's default
// export. It lives only inside the harness module's own scope, so any
// fixed identifier is safe — it can never collide with a caller-supplied
// name because callers never see or name harness-internal bindings.
const calleeIdentifier = "defaultExport"

// Synthesize builds the harness source text for one compile. auxLogicalNames
// lists the non-declaration auxiliary files to import for side effects, in
// the order the caller wants them evaluated (spec §8 "aux-import closure"
// law: imports are evaluated in the order the harness lists them).
// argTypes and returnType are opaque UL type expressions, spliced verbatim,
// never parsed here (spec §4.1 contract).
func Synthesize(auxLogicalNames []string, argTypes []string, returnType string) Result {
	e := codegen.NewEmitter()

	for _, aux := range auxLogicalNames {
		e.Line("import %q;", vfile.Strip(aux))
	}
	e.Line("import %s from %q;", calleeIdentifier, vfile.UserLogicalName)

	e.Block("declare global")

	e.Raw(indentPrefix(e))
	e.Raw("const args: ")
	argTypeStart := e.Len()
	e.Raw(tupleLiteral(argTypes))
	argTypeEnd := e.Len()
	e.Raw(";\n")

	e.Raw(indentPrefix(e))
	e.Raw("let  result: ")
	returnTypeStart := e.Len()
	e.Raw(returnType)
	returnTypeEnd := e.Len()
	e.Raw(";\n")

	e.EndBlock()
	e.Blank()

	resultStart := e.Len()
	e.Raw("result")
	resultEnd := e.Len()
	e.Raw(" = ")

	callStart := e.Len()
	calleeStart := e.Len()
	e.Raw(calleeIdentifier)
	calleeEnd := e.Len()
	e.Raw("(")
	argListStart := e.Len()
	e.Raw("...args")
	argListEnd := e.Len()
	e.Raw(")")
	callEnd := e.Len()
	e.Raw(";\n")

	return Result{
		Source: e.String(),
		Anchors: Anchors{
			ResultAssignmentLHS:     Span{resultStart, resultEnd},
			DefaultCall:             Span{callStart, callEnd},
			DefaultCalleeIdentifier: Span{calleeStart, calleeEnd},
			DefaultCallArgList:      Span{argListStart, argListEnd},
			ExpectedArgTypeNode:     Span{argTypeStart, argTypeEnd},
			ExpectedReturnTypeNode:  Span{returnTypeStart, returnTypeEnd},
		},
	}
}

// tupleLiteral renders the ambient args tuple type, e.g. "[string, number]"
// or "[]" when empty (spec §4.1: "If argTypes is empty the tuple is []").
func tupleLiteral(argTypes []string) string {
	if len(argTypes) == 0 {
		return "[]"
	}
	out := "["
	for i, t := range argTypes {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out + "]"
}

// indentPrefix returns the two-space-per-level prefix the Emitter would
// write for its current indent, so Raw() calls that need byte-exact
// anchor offsets can stay aligned with Emitter's own Block()/Line() output.
func indentPrefix(e *codegen.Emitter) string {
	depth := e.IndentDepth()
	out := make([]byte, 0, depth*2)
	for i := 0; i < depth; i++ {
		out = append(out, ' ', ' ')
	}
	return string(out)
}

// ErrReservedNameCollision is a sentinel for an auxiliary whose stripped
// name collides with a reserved logical name. vfile.NewSet reports such a
// collision with its own error; no code in this repository returns this
// value.
var ErrReservedNameCollision = fmt.Errorf("harness: auxiliary file collides with reserved logical name %q or %q", vfile.UserLogicalName, vfile.HarnessLogicalName)

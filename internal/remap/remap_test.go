package remap

import (
	"testing"

	"github.com/ulrunner/drc/internal/harness"
)

func TestLocateAnchorPrecedence(t *testing.T) {
	r := harness.Synthesize(nil, []string{"string"}, "string")
	a := r.Anchors

	if got := locateAnchor(a, a.ResultAssignmentLHS.Start); got != anchorResultAssignmentLHS {
		t.Errorf("expected result-assignment anchor, got %v", got)
	}
	if got := locateAnchor(a, a.DefaultCalleeIdentifier.Start); got != anchorDefaultCalleeIdentifier {
		t.Errorf("expected callee anchor (more specific than DefaultCall), got %v", got)
	}
	if got := locateAnchor(a, a.DefaultCallArgList.Start); got != anchorDefaultCallArgList {
		t.Errorf("expected arg-list anchor, got %v", got)
	}
	if got := locateAnchor(a, -1); got != anchorNone {
		t.Errorf("expected no anchor for out-of-range position, got %v", got)
	}
}

func TestHarnessCtxExpectedText(t *testing.T) {
	r := harness.Synthesize(nil, []string{"string", "number"}, "boolean")
	hctx := harnessCtx{source: r.Source, anchors: r.Anchors}

	if got := hctx.expectedArgsText(); got != "[string, number]" {
		t.Errorf("expectedArgsText() = %q", got)
	}
	if got := hctx.expectedReturnText(); got != "boolean" {
		t.Errorf("expectedReturnText() = %q", got)
	}
}

func TestDiagnosticWireStack(t *testing.T) {
	named := Diagnostic{EnclosingName: "F", Line: 1, Column: 55}
	if got, want := named.WireStack(), "at F(1:55)"; got != want {
		t.Errorf("WireStack() = %q, want %q", got, want)
	}

	anon := Diagnostic{Line: 1, Column: 1}
	if got, want := anon.WireStack(), "at null(1:1)"; got != want {
		t.Errorf("WireStack() = %q, want %q", got, want)
	}
}

func TestJoinTypes(t *testing.T) {
	if got := joinTypes(nil); got != "" {
		t.Errorf("joinTypes(nil) = %q", got)
	}
	if got := joinTypes([]string{"string", "number"}); got != "string, number" {
		t.Errorf("joinTypes(...) = %q", got)
	}
}

func TestDefaultMessageMappersStripsModuleResolutionSuggestion(t *testing.T) {
	mappers := DefaultMessageMappers()
	m, ok := mappers[2792]
	if !ok {
		t.Fatal("expected a default mapper for code 2792")
	}
	out, ok := m("Cannot find module 'foo'. Did you mean to set the 'moduleResolution' option?")
	if !ok {
		t.Fatal("expected mapper to recognize its shape")
	}
	if out != "Cannot find module 'foo'." {
		t.Errorf("got %q", out)
	}
}

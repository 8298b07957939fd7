// Package classify implements the Diagnostic Classifier (C3): partitioning
// the raw diagnostic stream C2 produced by which virtual file each
// diagnostic's span falls in (spec §4.3).
package classify

import (
	"path"

	"github.com/microsoft/typescript-go/shim/ast"

	"github.com/ulrunner/drc/internal/vfile"
)

// Branch tags which side of the classifier a diagnostic landed on.
type Branch int

const (
	// BranchUser holds diagnostics rooted in the user's own source file.
	BranchUser Branch = iota
	// BranchHarness holds diagnostics rooted in the synthesized harness —
	// these are the ones C4 must rewrite to point at the user file.
	BranchHarness
	// BranchAuxiliary holds diagnostics rooted in a caller-supplied
	// auxiliary file. Spec §4.3 only names User/Harness branches
	// explicitly; auxiliary-origin diagnostics are kept distinct here so
	// callers can decide how to surface a bug in their own aux code,
	// rather than silently folding them into the user branch.
	BranchAuxiliary
)

// Classified pairs a raw diagnostic with the branch it was routed to and
// the stripped name of the file it originated in (empty if the diagnostic
// has no file at all — those never reach here, C2 already turned them
// into host-bug errors per spec §4.2).
type Classified struct {
	Diagnostic  *ast.Diagnostic
	Branch      Branch
	StrippedSrc string
}

// Classify partitions diags by origin file's stripped name, per spec §4.3:
// harness-origin diagnostics go to the Harness branch, everything else
// either to the User branch (if its stripped name matches the user
// sentinel) or the Auxiliary branch.
func Classify(diags []*ast.Diagnostic) []Classified {
	out := make([]Classified, 0, len(diags))
	for _, d := range diags {
		stripped := strippedFileName(d)
		out = append(out, Classified{
			Diagnostic:  d,
			Branch:      branchFor(stripped),
			StrippedSrc: stripped,
		})
	}
	return out
}

func branchFor(stripped string) Branch {
	switch stripped {
	case vfile.Strip(vfile.HarnessLogicalName):
		return BranchHarness
	case vfile.Strip(vfile.UserLogicalName):
		return BranchUser
	default:
		return BranchAuxiliary
	}
}

func strippedFileName(d *ast.Diagnostic) string {
	f := d.File()
	if f == nil {
		return ""
	}
	return vfile.Strip(path.Base(f.FileName()))
}

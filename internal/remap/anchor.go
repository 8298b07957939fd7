package remap

import "github.com/ulrunner/drc/internal/harness"

type anchorKind int

const (
	anchorNone anchorKind = iota
	anchorResultAssignmentLHS
	anchorDefaultCalleeIdentifier
	anchorDefaultCallArgList
	anchorDefaultCall
)

// locateAnchor finds which HarnessAST anchor a diagnostic's span falls
// within, in the precedence the anchors nest at: the callee identifier and
// the argument list are both inside DefaultCall, so they must be checked
// before the broader DefaultCall span, or the broader span would always
// win (spec §3: "the remapper uses anchor equality... to classify a
// diagnostic" — equivalent here to innermost-span containment, since the
// harness is synthesized with byte-exact, non-overlapping-except-by-nesting
// anchor spans).
func locateAnchor(a harness.Anchors, pos int) anchorKind {
	within := func(s harness.Span) bool { return pos >= s.Start && pos <= s.End }

	switch {
	case within(a.ResultAssignmentLHS):
		return anchorResultAssignmentLHS
	case within(a.DefaultCalleeIdentifier):
		return anchorDefaultCalleeIdentifier
	case within(a.DefaultCallArgList):
		return anchorDefaultCallArgList
	case within(a.DefaultCall):
		return anchorDefaultCall
	default:
		return anchorNone
	}
}

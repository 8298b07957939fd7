package faultmap

import (
	"fmt"

	"github.com/go-sourcemap/sourcemap"

	"github.com/ulrunner/drc/internal/vfile"
)

// Location is the wire-shape position spec §6 defines for every surfaced
// diagnostic, compile-time or runtime.
type Location struct {
	Line   int
	Column int
}

// Fault is the runtime-fault counterpart of a compile-time Diagnostic,
// already formatted to spec §4.8's exact shape: message, multi-line
// stack, and the innermost retained frame's location.
type Fault struct {
	Message  string
	Stack    string
	Location Location
}

// translatedFrame is a stack frame after source-map translation, with its
// original (pre-translation) module identity dropped — only the user
// position and function name survive into the wire format.
type translatedFrame struct {
	funcName string
	line     int
	column   int
}

// Map translates a thrown error's message and stack into the user-facing
// Fault per spec §4.8: drop frames not located in the emitted user file
// (matched by stripped logical name, not raw path — emitted specifiers
// carry whatever shape the compiler chose), translate each retained
// frame's position via its module's source map, and drop any frame whose
// translation lands outside the user file or fails entirely (these are
// synthesized positions with no original counterpart).
//
// consumers maps a stripped module name to the source map consumer for
// that module's emitted JS. Map only reads it; pkg/drc parses the
// consumers from the artifacts' source-map text each time it translates
// a fault, and does not keep them between faults.
func Map(errMessage, stack string, consumers map[string]*sourcemap.Consumer) Fault {
	frames := ParseStack(stack)
	var kept []translatedFrame

	for _, f := range frames {
		if vfile.Strip(f.Module) != vfile.UserLogicalName {
			continue
		}
		c, ok := consumers[vfile.UserLogicalName]
		if !ok {
			continue
		}
		source, fn, line, col, ok := c.Source(f.Line, f.Column)
		if !ok {
			continue
		}
		if vfile.Strip(source) != vfile.UserLogicalName {
			continue
		}
		name := f.FuncName
		if fn != "" {
			name = fn
		}
		kept = append(kept, translatedFrame{funcName: name, line: line, column: col})
	}

	stackLines := make([]string, 0, len(kept))
	for _, k := range kept {
		fn := k.funcName
		if fn == "" {
			fn = "null"
		}
		stackLines = append(stackLines, fmt.Sprintf("at %s(%d:%d)", fn, k.line, k.column))
	}

	loc := Location{Line: 1, Column: 1}
	if len(kept) > 0 {
		loc = Location{Line: kept[0].line, Column: kept[0].column}
	}

	return Fault{
		Message:  "Error: " + errMessage,
		Stack:    joinLines(stackLines),
		Location: loc,
	}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

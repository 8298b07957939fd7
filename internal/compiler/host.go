package compiler

import (
	"github.com/microsoft/typescript-go/shim/bundled"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"

	"github.com/ulrunner/drc/internal/vfile"
)

// NewHost builds a compiler host bound to a filesystem-free MemFS: every
// virtual file is served by stripped name, and only the UL standard
// library falls through to the bundled lib set (spec §4.2 — "falls
// through to the real file system only for the UL standard library").
// There is no real project directory; cwd is the fixed virtual root.
func NewHost(fs *vfile.MemFS) shimcompiler.CompilerHost {
	return shimcompiler.NewCompilerHost(vfile.Root(), fs, bundled.LibPath(), nil, nil)
}

package compiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"

	"github.com/ulrunner/drc/internal/harness"
	"github.com/ulrunner/drc/internal/vfile"
)

// CompilationArtifacts' userSourceMap (spec §3) is not built here:
// Assemble only returns the raw emitted JS and source-map text, which
// internal/cache stores as text; pkg/drc parses the source maps when it
// translates a runtime fault. Assemble does not own source-map decoding.

// Assemble is the Program Assembler (C2): it synthesizes the harness,
// builds the virtual file set, compiles, and emits. It returns the
// compiled Program (for C3/C4's checker queries), the raw diagnostic
// stream, and the emitted JS keyed by stripped name.
//
// auxSources maps a caller-supplied logical name to its UL source text.
// Declaration files (vfile.IsDeclarationExt) are not imported by the
// harness for side effects — they only contribute ambient types — but
// they are still placed in the virtual file set so the compiler can see
// them.
func Assemble(ctx context.Context, userSource string, argTypes []string, returnType string, auxSources map[string]string, auxOrder []string) (program *ProgramHandle, jsByName map[string]string, mapsByName map[string]string, diags []*ast.Diagnostic, err error) {
	var harnessAuxImports []string
	for _, name := range auxOrder {
		if !vfile.IsDeclarationExt(name) {
			harnessAuxImports = append(harnessAuxImports, name)
		}
	}

	h := harness.Synthesize(harnessAuxImports, argTypes, returnType)

	set, err := vfile.NewSet(userSource, h.Source, auxSources)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	sources := make(map[string]string, len(set.All())+1)
	for _, f := range set.All() {
		sources[virtualPath(f)] = f.Text
	}
	sources[ConfigPath] = SyntheticTSConfigJSON

	fs := vfile.New(sources)
	host := NewHost(fs)

	result, parseDiags, perr := CreateProgram(false, fs, vfile.Root(), ConfigPath, host)
	if perr != nil {
		return nil, nil, nil, nil, fmt.Errorf("compiler: %w", perr)
	}
	if len(parseDiags) > 0 {
		if hostErr := checkForHostBug(parseDiags); hostErr != nil {
			return nil, nil, nil, nil, hostErr
		}
		return nil, nil, nil, parseDiags, nil
	}

	raw := GatherDiagnostics(ctx, result.Program)
	if hasErrorDiagnostic(raw) {
		if hostErr := checkForHostBug(raw); hostErr != nil {
			return nil, nil, nil, nil, hostErr
		}
		return &ProgramHandle{Program: result.Program, Anchors: h.Anchors}, nil, nil, raw, nil
	}

	emitResult, eerr := Emit(result.Program)
	if eerr != nil {
		return nil, nil, nil, nil, fmt.Errorf("compiler: %w", eerr)
	}
	if len(emitResult.Diagnostics) > 0 {
		if hostErr := checkForHostBug(emitResult.Diagnostics); hostErr != nil {
			return nil, nil, nil, nil, hostErr
		}
		return &ProgramHandle{Program: result.Program, Anchors: h.Anchors}, nil, nil, emitResult.Diagnostics, nil
	}

	js := make(map[string]string)
	maps := make(map[string]string)
	for path, text := range fs.Emitted() {
		if strings.HasSuffix(path, ".map") {
			maps[stripVirtualPath(strings.TrimSuffix(path, ".map"))] = text
			continue
		}
		js[stripVirtualPath(path)] = text
	}

	return &ProgramHandle{Program: result.Program, Anchors: h.Anchors}, js, maps, raw, nil
}

// ProgramHandle carries the compiled Program together with the harness
// anchors C4 needs to classify and remap diagnostics.
type ProgramHandle struct {
	Program *shimcompiler.Program
	Anchors harness.Anchors
}

// UserFilePath returns the fixed virtual path of the user's own module, so
// callers holding a *ProgramHandle can fetch its *ast.SourceFile back out
// of the compiled Program without reconstructing Assemble's own naming.
func UserFilePath() string {
	return vfile.Root() + "/" + vfile.Strip(vfile.UserLogicalName) + ".ts"
}

// HarnessFilePath is UserFilePath's counterpart for the synthesized
// harness module, so a caller can recover its source text (needed for
// the anchor-relative text slicing in internal/remap's harness branch)
// straight out of the compiled Program.
func HarnessFilePath() string {
	return vfile.Root() + "/" + vfile.Strip(vfile.HarnessLogicalName) + ".ts"
}

func virtualPath(f vfile.VirtualFile) string {
	ext := ".ts"
	if f.Kind == vfile.KindDeclaration {
		ext = ".d.ts"
	}
	return vfile.Root() + "/" + vfile.Strip(f.LogicalName) + ext
}

func stripVirtualPath(path string) string {
	name := path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return vfile.Strip(name)
}

// benignHostCodes lists diagnostic codes that may legitimately arrive with
// no associated file — compiler-global warnings that are not symptoms of a
// host/embedding bug (spec §4.2 "benign, expected" allow-list).
var benignHostCodes = map[int]bool{
	// 18003: "No inputs were found in config file" — never actually hit
	// since the virtual file set always has at least USER + HARNESS, but
	// harmless if ever reported by a future compiler version.
	18003: true,
}

// checkForHostBug implements spec §4.2's failure mode: any diagnostic with
// no file, and whose code is not on the benign allow-list, is a bug in the
// DRC itself (an embedder bug), not a user-facing diagnostic.
func checkForHostBug(diags []*ast.Diagnostic) error {
	for _, d := range diags {
		if d.File() != nil {
			continue
		}
		if benignHostCodes[int(d.Code())] {
			continue
		}
		return fmt.Errorf("compiler: host bug: diagnostic with no file, code TS%d: %s", d.Code(), d.String())
	}
	return nil
}

func hasErrorDiagnostic(diags []*ast.Diagnostic) bool {
	for _, d := range diags {
		if DiagnosticCategory(ast.Diagnostic_Category(d)) == CategoryError {
			return true
		}
	}
	return false
}

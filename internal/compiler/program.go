// Package compiler drives the UL compiler-as-a-library surface
// (microsoft/typescript-go/shim/*) over a filesystem-free virtual file set:
// parsing the synthetic tsconfig, constructing a Program, gathering
// diagnostics, and emitting JS + source maps into memory (spec §4.2,
// component C2 of the Diagnostic Remapping Core).
package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/microsoft/typescript-go/shim/ast"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"github.com/microsoft/typescript-go/shim/core"
	"github.com/microsoft/typescript-go/shim/tsoptions"
	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"
)

// CreateProgramResult bundles the constructed program with the parsed
// config that built it, so callers can inspect compiler options without
// re-parsing.
type CreateProgramResult struct {
	Program      *shimcompiler.Program
	ParsedConfig *tsoptions.ParsedCommandLine
}

// ParseTSConfig parses the synthetic tsconfig virtual file. Any diagnostic
// returned here has no associated user/harness file: it indicates a bug
// in SyntheticTSConfigJSON itself, not in user code (spec §4.2 "host bug").
func ParseTSConfig(fs vfs.FS, cwd string, tsconfigPath string, host shimcompiler.CompilerHost) (*tsoptions.ParsedCommandLine, []*ast.Diagnostic, error) {
	resolvedConfigPath := tspath.ResolvePath(cwd, tsconfigPath)
	if !fs.FileExists(resolvedConfigPath) {
		return nil, nil, fmt.Errorf("compiler: synthetic tsconfig missing at %v", resolvedConfigPath)
	}

	configParseResult, diagnostics := tsoptions.GetParsedCommandLineOfConfigFile(tsconfigPath, &core.CompilerOptions{}, nil, host, nil)
	if len(diagnostics) > 0 {
		return nil, diagnostics, nil
	}
	if configParseResult != nil && len(configParseResult.Errors) > 0 {
		return nil, configParseResult.Errors, nil
	}
	return configParseResult, nil, nil
}

// CreateProgramFromConfig constructs a Program from an already-parsed
// config and a host. The caller may mutate parsedConfig.CompilerOptions()
// first (unused here: SyntheticTSConfigJSON fixes everything C2 needs).
func CreateProgramFromConfig(singleThreaded bool, parsedConfig *tsoptions.ParsedCommandLine, host shimcompiler.CompilerHost) (*shimcompiler.Program, []*ast.Diagnostic, error) {
	opts := shimcompiler.ProgramOptions{
		Config:                      parsedConfig,
		SingleThreaded:              core.TSTrue,
		Host:                        host,
		UseSourceOfProjectReference: true,
	}
	if !singleThreaded {
		opts.SingleThreaded = core.TSFalse
	}

	program := shimcompiler.NewProgram(opts)
	if program == nil {
		return nil, nil, errors.New("compiler: failed to create program")
	}

	if programDiags := program.GetProgramDiagnostics(); len(programDiags) > 0 {
		return nil, programDiags, nil
	}

	program.BindSourceFiles()
	return program, nil, nil
}

// CreateProgram parses the synthetic tsconfig and constructs a Program in
// one step.
func CreateProgram(singleThreaded bool, fs vfs.FS, cwd string, tsconfigPath string, host shimcompiler.CompilerHost) (*CreateProgramResult, []*ast.Diagnostic, error) {
	parsedConfig, diags, err := ParseTSConfig(fs, cwd, tsconfigPath, host)
	if err != nil || len(diags) > 0 {
		return nil, diags, err
	}

	program, programDiags, err := CreateProgramFromConfig(singleThreaded, parsedConfig, host)
	if err != nil || len(programDiags) > 0 {
		return nil, programDiags, err
	}

	return &CreateProgramResult{Program: program, ParsedConfig: parsedConfig}, nil, nil
}

// EmitResult is the outcome of emitting a Program: the list of emitted
// virtual paths and any diagnostics the emit step itself raised.
type EmitResult struct {
	EmittedFiles []string
	Diagnostics  []*ast.Diagnostic
}

// Emit writes the compiled JS and source-map output for a Program. With a
// MemFS host, WriteFile captures this output in memory rather than
// touching disk (internal/vfile.MemFS.Emitted).
func Emit(program *shimcompiler.Program) (EmitResult, error) {
	result := program.Emit(context.Background(), shimcompiler.EmitOptions{})
	return EmitResult{EmittedFiles: result.EmittedFiles, Diagnostics: result.Diagnostics}, nil
}

// GetSourceFiles returns the program's non-declaration source files —
// these are the ones whose diagnostics get classified and potentially
// remapped (declaration files only ever contribute types, never
// diagnostics origin-classified as "user" or "harness").
func GetSourceFiles(program *shimcompiler.Program) []*ast.SourceFile {
	var files []*ast.SourceFile
	for _, f := range program.GetSourceFiles() {
		if !f.IsDeclarationFile {
			files = append(files, f)
		}
	}
	return files
}

// GatherDiagnostics collects every category of diagnostic the compiler can
// produce for a Program: per-file syntactic, semantic, and bind
// diagnostics, plus program-wide global diagnostics, sorted and
// deduplicated. This is the raw diagnostic stream C3 (internal/classify)
// partitions by origin file.
//
// The teacher's own code called a function of this shape from its CLI
// build path but never defined it in any file visible in this pack; this
// implementation is written fresh against the Program method signatures
// documented in the yasufadhili-jawt compiler wrapper (GetSyntacticDiagnostics,
// GetSemanticDiagnostics, GetGlobalDiagnostics, GetBindDiagnostics).
func GatherDiagnostics(ctx context.Context, program *shimcompiler.Program) []*ast.Diagnostic {
	var all []*ast.Diagnostic
	for _, f := range GetSourceFiles(program) {
		all = append(all, program.GetSyntacticDiagnostics(ctx, f)...)
		all = append(all, program.GetBindDiagnostics(ctx, f)...)
		all = append(all, program.GetSemanticDiagnostics(ctx, f)...)
	}
	all = append(all, program.GetGlobalDiagnostics(ctx)...)
	return ast.SortAndDeduplicateDiagnostics(all)
}

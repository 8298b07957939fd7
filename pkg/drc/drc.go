package drc

import (
	"context"
	"fmt"

	"github.com/go-sourcemap/sourcemap"

	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"

	"github.com/dop251/goja"

	"github.com/ulrunner/drc/internal/cache"
	"github.com/ulrunner/drc/internal/classify"
	"github.com/ulrunner/drc/internal/compiler"
	"github.com/ulrunner/drc/internal/faultmap"
	"github.com/ulrunner/drc/internal/rconfig"
	"github.com/ulrunner/drc/internal/remap"
	"github.com/ulrunner/drc/internal/sandbox"
	"github.com/ulrunner/drc/internal/vfile"
)

// Runner is the Diagnostic Remapping Core's public entry point (spec §6's
// "Runner contract"): preProcess, executeUserCode, executeFromArtifacts.
// A Runner owns one compilation cache; concurrent calls into the same
// Runner are safe (internal/cache.Coalescing is goroutine-safe), but a
// Context passed to executeFromArtifacts is not (spec §5).
type Runner struct {
	opts  rconfig.Options
	store *cache.Coalescing
}

// NewRunner builds a Runner from opts, seeding its cache with the
// capacity and TTL opts names (spec §4.6).
func NewRunner(opts rconfig.Options) *Runner {
	return &Runner{
		opts:  opts,
		store: cache.NewCoalescing(cache.NewLRU(opts.CacheCapacity, opts.CacheTTL())),
	}
}

// PreProcess is spec §6's preProcess: compile userSource against the
// host-supplied call signature, returning either a reusable Artifacts
// handle (success) or the full diagnostic list (type-level failure).
// Identical inputs hit the Runner's cache (spec §8 "cache idempotence").
func (r *Runner) PreProcess(ctx context.Context, userSource, expectedReturnType string, expectedArgTypes []string, auxSources map[string]string, auxOrder []string) (*Artifacts, []Diagnostic, error) {
	auxTexts := make([]string, len(auxOrder))
	for i, name := range auxOrder {
		auxTexts[i] = auxSources[name]
	}
	key := cache.BuildKey(userSource, expectedReturnType, expectedArgTypes, auxTexts)

	result, err := r.store.GetOrCompute(key, func() (cache.Result, error) {
		return r.compile(ctx, userSource, expectedReturnType, expectedArgTypes, auxSources, auxOrder)
	})
	if err != nil {
		return nil, nil, &HostError{Err: err}
	}

	if !result.Success {
		return nil, diagnosticsFromRemap(result.Diagnostics), nil
	}
	return &Artifacts{emittedJS: result.EmittedJS, emittedMap: result.EmittedMap}, nil, nil
}

// compile runs C2 through C5 once: assemble the harness and virtual file
// set, compile, and either collect the emitted JS/source maps or remap
// every diagnostic back to the user's source. Its error return is always
// a host/embedding bug (spec §7) — never a user-facing condition, which
// instead comes back as a non-empty Diagnostics list inside a successful
// Result.
func (r *Runner) compile(ctx context.Context, userSource, expectedReturnType string, expectedArgTypes []string, auxSources map[string]string, auxOrder []string) (cache.Result, error) {
	program, js, maps, diags, err := compiler.Assemble(ctx, userSource, expectedArgTypes, expectedReturnType, auxSources, auxOrder)
	if err != nil {
		return cache.Result{}, err
	}

	if len(diags) == 0 {
		return cache.Result{Success: true, EmittedJS: js, EmittedMap: maps}, nil
	}

	checker, release := shimcompiler.Program_GetTypeChecker(program.Program, ctx)
	if checker == nil {
		return cache.Result{}, fmt.Errorf("drc: could not obtain a type checker for the compiled program")
	}
	defer release()

	userFile := program.Program.GetSourceFile(compiler.UserFilePath())
	if userFile == nil {
		return cache.Result{}, fmt.Errorf("drc: compiled program has no user file")
	}
	harnessFile := program.Program.GetSourceFile(compiler.HarnessFilePath())
	if harnessFile == nil {
		return cache.Result{}, fmt.Errorf("drc: compiled program has no harness file")
	}

	classified := classify.Classify(diags)
	remapped, rerr := remap.RemapAll(userFile, classified, harnessFile.Text(), program.Anchors, checker, r.opts.MessageMappers())
	if rerr != nil {
		return cache.Result{}, rerr
	}

	return cache.Result{Success: false, Diagnostics: remapped}, nil
}

// ExecuteUserCode is spec §6's executeUserCode: preProcess followed by
// executeFromArtifacts. When the program is already known-good or
// known-bad, preProcess is a cache hit and no compilation runs.
func (r *Runner) ExecuteUserCode(ctx context.Context, userSource string, args []any, expectedReturnType string, expectedArgTypes []string, auxSources map[string]string, auxOrder []string, evalContext *sandbox.Context) (any, []Diagnostic, error) {
	artifacts, diags, err := r.PreProcess(ctx, userSource, expectedReturnType, expectedArgTypes, auxSources, auxOrder)
	if err != nil {
		return nil, nil, err
	}
	if diags != nil {
		return nil, diags, nil
	}
	return r.ExecuteFromArtifacts(ctx, artifacts, args, evalContext)
}

// ExecuteFromArtifacts is spec §6's executeFromArtifacts: run a
// previously compiled program's harness to completion, translating
// whatever it throws back into a single user-facing Diagnostic via C8.
func (r *Runner) ExecuteFromArtifacts(ctx context.Context, artifacts *Artifacts, args []any, evalContext *sandbox.Context) (any, []Diagnostic, error) {
	if evalContext == nil {
		evalContext = sandbox.NewContext()
	}

	auxNames := make(map[string]bool, len(artifacts.emittedJS))
	for name := range artifacts.emittedJS {
		if name != vfile.Strip(vfile.UserLogicalName) {
			auxNames[name] = true
		}
	}

	value, fault, err := sandbox.Execute(ctx, evalContext, artifacts.emittedJS, auxNames, args, r.opts.Timeout())
	if err != nil {
		return nil, nil, &HostError{Err: err}
	}
	if fault != nil {
		if fault.Exception == nil {
			// Timeout or cancellation: spec §7's "surfaced as a runtime
			// user error whose message is the sandbox's timeout message
			// and whose location is the innermost user frame reachable
			// through source maps (or (1,1) if none)" — there is no
			// thrown stack to translate, so the innermost frame is
			// always unavailable here.
			return nil, []Diagnostic{{
				Message:  "Error: " + fault.Err.Error(),
				Stack:    "",
				Location: Location{Line: 1, Column: 1},
			}}, nil
		}

		msg, stack := explodeException(fault.Exception)
		consumers := buildConsumers(artifacts.emittedMap)
		translated := faultmap.Map(msg, stack, consumers)
		return nil, []Diagnostic{{
			Message:  translated.Message,
			Stack:    translated.Stack,
			Location: Location{Line: translated.Location.Line, Column: translated.Location.Column},
		}}, nil
	}

	return value.Export(), nil, nil
}

// explodeException splits a goja exception into the raw thrown message
// (the Error object's own "message" property, not its toString, so
// faultmap.Map's "Error: " prefixing isn't doubled) and the full textual
// stack trace goja attaches to it.
func explodeException(exc *goja.Exception) (message string, stack string) {
	val := exc.Value()
	message = val.String()
	if obj, ok := val.(*goja.Object); ok {
		if m := obj.Get("message"); m != nil {
			message = m.String()
		}
	}
	return message, exc.String()
}

func buildConsumers(emittedMap map[string]string) map[string]*sourcemap.Consumer {
	consumers := make(map[string]*sourcemap.Consumer, len(emittedMap))
	for name, mapJSON := range emittedMap {
		c, err := sourcemap.Parse(name, []byte(mapJSON))
		if err != nil {
			continue
		}
		consumers[name] = c
	}
	return consumers
}

func diagnosticsFromRemap(diags []remap.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{
			Message:  d.Message,
			Stack:    d.WireStack(),
			Location: Location{Line: d.Line, Column: d.Column},
		}
	}
	return out
}

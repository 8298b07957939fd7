// Package sandbox implements the Sandbox Executor (C7): it takes the
// emitted JS modules C2 produced and runs the harness module to
// completion inside a goja runtime, under a caller-supplied timeout,
// surfacing either a result value or a fault for C8 to translate.
package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/ulrunner/drc/internal/vfile"
)

// resultUnset is the sentinel the harness's `result` binding starts as,
// distinguishing "the harness never assigned a result" (an internal bug)
// from a legitimately falsy returned value.
const resultUnset = "__drc_result_unset"

// Module is one compiled-JS unit registered with the runtime, keyed by its
// stripped logical name for linking.
type Module struct {
	Name   string
	Source string
	record goja.ModuleRecord
}

// Context is the caller-owned evaluation context spec §4.7 calls an
// "opaque handle into which ambient bindings can be injected": a fresh
// goja.Runtime plus whatever host builtins the embedder wants available
// inside user code. It is not re-entrant (spec §5): concurrent use of the
// same Context is undefined behavior.
type Context struct {
	Runtime *goja.Runtime
}

// NewContext returns a fresh evaluation context with no ambient bindings
// beyond what goja itself provides.
func NewContext() *Context {
	return &Context{Runtime: goja.New()}
}

// Fault is a runtime failure the executor could not attribute to the
// evaluated program's own control flow: a goja exception thrown during
// evaluation, a timeout, or cancellation of the caller's context. Execute
// hands this to C8 for stack translation; InternalError faults (see
// below), which include linking failures, must never reach it.
type Fault struct {
	Err       error
	Exception *goja.Exception
	Timeout   bool
}

func (f *Fault) Error() string { return f.Err.Error() }

// InternalError marks a condition that is rethrown rather than routed
// through C8: a missing harness module, an unresolved import specifier,
// a module that fails to parse, a fault at module link time, or a harness
// that completes without assigning result. Each indicates a bug in the
// embedding, not a problem with the user's program.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return "sandbox: internal error: " + e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

// Execute runs emittedJS (the harness plus every module it transitively
// needs, keyed by stripped logical name) inside ctx, injecting args and
// reading back result per spec §4.7's five steps. auxLogicalNames names
// the modules that are NOT part of the user's own program (the harness
// and caller-supplied auxiliaries); Execute does not consult it. Every
// goja exception raised during evaluation, including a top-level throw in
// an auxiliary module, is returned as a Fault; no exception is classified
// by the module it originated in.
func Execute(ctx context.Context, evalCtx *Context, emittedJS map[string]string, auxLogicalNames map[string]bool, args []any, timeout time.Duration) (value goja.Value, fault *Fault, err error) {
	rt := evalCtx.Runtime

	if err := rt.Set("args", args); err != nil {
		return nil, nil, fmt.Errorf("sandbox: binding args: %w", err)
	}
	if err := rt.Set("result", resultUnset); err != nil {
		return nil, nil, fmt.Errorf("sandbox: binding result sentinel: %w", err)
	}

	modules := make(map[string]*Module, len(emittedJS))
	for name, src := range emittedJS {
		modules[vfile.Strip(name)] = &Module{Name: vfile.Strip(name), Source: src}
	}

	resolve := func(referencingScriptOrModule any, specifier string) (goja.ModuleRecord, error) {
		m, ok := resolveSpecifier(modules, specifier)
		if !ok {
			return nil, &InternalError{Err: fmt.Errorf("unresolved import specifier %q (should have been caught at compile time)", specifier)}
		}
		if m.record == nil {
			rec, err := goja.ParseModule(m.Name, m.Source, resolve)
			if err != nil {
				return nil, &InternalError{Err: fmt.Errorf("parsing module %q: %w", m.Name, err)}
			}
			m.record = rec
		}
		return m.record, nil
	}

	harness, ok := modules[vfile.HarnessLogicalName]
	if !ok {
		return nil, nil, &InternalError{Err: fmt.Errorf("emitted JS has no %q module", vfile.HarnessLogicalName)}
	}
	harnessRecord, err := goja.ParseModule(harness.Name, harness.Source, resolve)
	if err != nil {
		return nil, nil, &InternalError{Err: fmt.Errorf("parsing harness module: %w", err)}
	}
	harness.record = harnessRecord

	if cm, ok := harnessRecord.(goja.CyclicModuleRecord); ok {
		if err := cm.Link(); err != nil {
			return nil, nil, &InternalError{Err: fmt.Errorf("linking harness module: %w", err)}
		}
	}

	done := make(chan struct{})
	var evalErr error
	go func() {
		defer close(done)
		evalErr = rt.CyclicModuleRecordEvaluate(harnessRecord.(goja.CyclicModuleRecord), resolve)
	}()

	select {
	case <-done:
	case <-timeoutChan(timeout):
		rt.Interrupt("execution timed out")
		<-done
		return nil, &Fault{Err: fmt.Errorf("execution exceeded %s timeout", timeout), Timeout: true}, nil
	case <-ctx.Done():
		rt.Interrupt(ctx.Err())
		<-done
		return nil, &Fault{Err: ctx.Err()}, nil
	}

	if evalErr != nil {
		var exc *goja.Exception
		if asException(evalErr, &exc) {
			return nil, &Fault{Err: evalErr, Exception: exc}, nil
		}
		return nil, nil, &InternalError{Err: fmt.Errorf("evaluating harness module: %w", evalErr)}
	}

	resultVal := rt.Get("result")
	if resultVal == nil || resultVal.Export() == resultUnset {
		return nil, nil, &InternalError{Err: fmt.Errorf("harness completed without assigning result")}
	}
	return resultVal, nil, nil
}

func timeoutChan(d time.Duration) <-chan time.Time {
	if d <= 0 {
		return nil
	}
	return time.After(d)
}

func asException(err error, target **goja.Exception) bool {
	if exc, ok := err.(*goja.Exception); ok {
		*target = exc
		return true
	}
	return false
}

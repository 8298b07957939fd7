package drc

import "fmt"

// HostError is the one condition the Runner's public API throws rather
// than returns (spec §7): a compiler diagnostic with no file, an
// unmapped harness node, or a module-linking failure for a specifier
// outside the virtual file set. Every one of these indicates a bug in
// the embedding itself, never in the caller's UL program.
type HostError struct {
	Err error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("drc: host error (embedder bug, not user code): %v", e.Err)
}

func (e *HostError) Unwrap() error { return e.Err }

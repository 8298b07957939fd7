// Package drc is the public Runner API: compile and execute untrusted UL
// source inside a sandbox, with every diagnostic — compile-time or
// runtime — remapped back to a position inside the caller's own source
// text (spec §6).
package drc

import "github.com/go-json-experiment/json"

// Diagnostic is the stable, serializable wire shape spec §6 defines for
// every surfaced error, compile-time or runtime.
type Diagnostic struct {
	Message  string   `json:"message"`
	Stack    string   `json:"stack"`
	Location Location `json:"location"`
}

// Location is 1-based throughout, per spec mandate.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Artifacts is the opaque compiled-program handle executeFromArtifacts
// accepts, skipping recompilation. Callers must treat it as opaque; its
// fields exist only for this package's own executeFromArtifacts path.
type Artifacts struct {
	emittedJS  map[string]string
	emittedMap map[string]string
}

// DumpJSON renders the compiled artifacts (emitted JS and source maps,
// keyed by virtual module name) as JSON, for cmd/ulrun's --dump-json
// development flag. Uses go-json-experiment/json with Deterministic
// output so two dumps of the same compile are byte-identical and diffable.
func (a *Artifacts) DumpJSON() ([]byte, error) {
	type dump struct {
		JS         map[string]string `json:"js"`
		SourceMaps map[string]string `json:"sourceMaps"`
	}
	return json.Marshal(dump{JS: a.emittedJS, SourceMaps: a.emittedMap}, json.Deterministic(true))
}

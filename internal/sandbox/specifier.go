package sandbox

import "github.com/ulrunner/drc/internal/vfile"

// resolveSpecifier matches an import specifier against the emitted module
// set by stripped logical name (spec §4.7: "specifier matching is by
// stripped name"), not by raw path — emitted import specifiers carry
// whatever extension or relative-path shape the compiler chose, but every
// module in the set was registered under its stripped name.
func resolveSpecifier(modules map[string]*Module, specifier string) (*Module, bool) {
	m, ok := modules[vfile.Strip(specifier)]
	return m, ok
}

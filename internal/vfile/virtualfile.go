// Package vfile defines the virtual, filesystem-free source units the DRC
// assembles a program from, and the in-memory vfs.FS that serves them to
// the UL compiler host.
package vfile

import (
	"fmt"
	"strings"
)

// Kind classifies a VirtualFile's role in the assembled program.
type Kind int

const (
	KindSource Kind = iota
	KindDeclaration
	KindEmittedJS
	KindSourceMap
)

// UserLogicalName is the reserved sentinel identifying the user's own
// module. It must not collide with any caller-supplied auxiliary name.
const UserLogicalName = "__user_file"

// HarnessLogicalName is the reserved sentinel identifying the synthesized
// execution harness module.
const HarnessLogicalName = "__execution_harness"

// VirtualFile is one unit of the virtual file set assembled for a single
// compile: either UL source/declaration text going in, or emitted
// JS/source-map text coming out.
type VirtualFile struct {
	LogicalName string
	Text        string
	Kind        Kind
}

// Strip removes a trailing extension from a logical or physical name,
// leaving the identity used for import-specifier matching and file
// partitioning throughout the DRC. Only the last extension is stripped
// ("a.test.ts" -> "a.test"), matching how the UL compiler itself treats
// module specifiers.
func Strip(name string) string {
	// Strip path separators first: identity is the basename.
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// IsDeclarationExt reports whether a physical name carries a declaration-file
// extension (".d.ts"-equivalent). Declaration files contribute only types:
// the harness does not import them for side effects.
func IsDeclarationExt(name string) bool {
	return strings.HasSuffix(name, ".d.ts")
}

// Set is the full virtual file set assembled for one compile: the user
// source, the synthesized harness, and the caller's auxiliary files.
// Identity is by stripped name; two files whose stripped names collide
// is a caller error, not a DRC bug (spec.md §6 "Reserved logical file
// names").
type Set struct {
	files map[string]VirtualFile
	order []string // insertion order
}

// NewSet builds a virtual file set from the user source, the caller's
// auxiliary sources, and the already-synthesized harness text. It returns
// an error if any stripped name collides, or if an auxiliary collides with
// a reserved logical name.
func NewSet(userSource string, harnessSource string, auxSources map[string]string) (*Set, error) {
	s := &Set{files: make(map[string]VirtualFile)}

	if err := s.add(VirtualFile{LogicalName: UserLogicalName, Text: userSource, Kind: KindSource}); err != nil {
		return nil, err
	}
	if err := s.add(VirtualFile{LogicalName: HarnessLogicalName, Text: harnessSource, Kind: KindSource}); err != nil {
		return nil, err
	}

	// auxSources is a map, so auxiliaries are added in map iteration order;
	// the harness's import order comes from the caller's separate auxOrder
	// list (compiler.Assemble), not from this set. Here we just guard
	// against stripped-name collisions.
	for name, text := range auxSources {
		kind := KindSource
		if IsDeclarationExt(name) {
			kind = KindDeclaration
		}
		if err := s.add(VirtualFile{LogicalName: name, Text: text, Kind: kind}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Set) add(f VirtualFile) error {
	stripped := Strip(f.LogicalName)
	if existing, ok := s.files[stripped]; ok {
		return fmt.Errorf("vfile: logical name collision on %q (existing %q, new %q)", stripped, existing.LogicalName, f.LogicalName)
	}
	s.files[stripped] = f
	s.order = append(s.order, stripped)
	return nil
}

// Get returns the virtual file registered under a stripped name.
func (s *Set) Get(strippedName string) (VirtualFile, bool) {
	f, ok := s.files[strippedName]
	return f, ok
}

// All returns the virtual files in insertion order.
func (s *Set) All() []VirtualFile {
	out := make([]VirtualFile, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.files[name])
	}
	return out
}

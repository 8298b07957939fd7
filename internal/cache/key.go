// Package cache implements the Compilation Cache (C6): a pluggable
// key→Result store keyed by a hash of the compile's full input surface,
// so that repeated compilation of a known-good or known-bad program is a
// pure lookup (spec §4.6).
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// keySeparator is the control-character field separator spec §3 mandates
// for the cache key formula, chosen precisely because it cannot appear in
// ordinary UL source or type-expression text.
const keySeparator = ""

// BuildKey computes the cache key spec §3 defines:
// SHA1(userSource || sep || returnType || sep || join(sep, argTypes) ||
// sep || join(sep, auxTexts)). auxTexts must be supplied in a stable,
// caller-determined order — two auxiliary sets differing only in
// iteration order would otherwise collide or needlessly miss.
func BuildKey(userSource, returnType string, argTypes []string, auxTexts []string) string {
	var b strings.Builder
	b.WriteString(userSource)
	b.WriteString(keySeparator)
	b.WriteString(returnType)
	b.WriteString(keySeparator)
	b.WriteString(strings.Join(argTypes, keySeparator))
	b.WriteString(keySeparator)
	b.WriteString(strings.Join(auxTexts, keySeparator))

	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

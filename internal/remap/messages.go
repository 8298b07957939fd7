package remap

import (
	"strconv"
	"strings"

	"github.com/microsoft/typescript-go/shim/ast"
)

// Rewriter maps one diagnostic code's message text to a replacement, or
// reports it doesn't recognize the shape it was given (⊥ in spec §4.5:
// "this code was claimed but the message shape was not understood").
type Rewriter func(text string) (rewritten string, ok bool)

// MessageMappers is the configurable code → rewriter table of spec §4.5.
// Callers (rconfig.Options.TypeErrorCodeMessageMappers) may register
// additional entries or override defaults; DefaultMessageMappers seeds a
// fresh table with the one example §4.5 itself names.
type MessageMappers map[int]Rewriter

// DefaultMessageMappers returns a table with the §4.5 example entry: code
// 2792 ("Cannot find module … Did you mean to set 'moduleResolution'…?")
// has its implementation-suggestion tail stripped, since that suggestion
// names a compiler flag the caller never exposes.
func DefaultMessageMappers() MessageMappers {
	return MessageMappers{
		2792: func(text string) (string, bool) {
			if idx := strings.Index(text, " Did you mean"); idx >= 0 {
				return text[:idx], true
			}
			return text, true
		},
	}
}

// ErrUnrecognizedMessageShape signals a registered mapper's ⊥: the code was
// claimed but the message text didn't match the shape the mapper expected.
// Surfaced as an internal inconsistency error per spec §4.5.
type ErrUnrecognizedMessageShape struct {
	Code int
	Text string
}

func (e *ErrUnrecognizedMessageShape) Error() string {
	return "remap: message mapper for TS" + strconv.Itoa(e.Code) + " did not recognize its own message shape: " + e.Text
}

// MapMessage rewrites a diagnostic's message chain through mappers,
// recursively applying the matching code's rewriter to each sub-message
// and indenting joined chain levels by two spaces (spec §4.5), preserving
// depth-first order (spec §8 "message chain preservation" law).
func MapMessage(d *ast.Diagnostic, mappers MessageMappers) (string, error) {
	return mapChain(d.Code(), d.Message(), chainOf(d), mappers, 0)
}

// chainOf adapts whatever shape the compiler's messageText takes (plain
// string vs. chained sub-diagnostics) to a uniform slice, matching spec
// §3's "Chain: (messageText, code, next: Chain[])".
func chainOf(d *ast.Diagnostic) []*ast.Diagnostic {
	return d.MessageChain()
}

func mapChain(code int, text string, next []*ast.Diagnostic, mappers MessageMappers, depth int) (string, error) {
	rewritten := text
	if m, ok := mappers[code]; ok {
		out, ok := m(text)
		if !ok {
			return "", &ErrUnrecognizedMessageShape{Code: code, Text: text}
		}
		rewritten = out
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(rewritten)

	for _, sub := range next {
		subText, err := mapChain(sub.Code(), sub.Message(), sub.MessageChain(), mappers, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(subText)
	}
	return b.String(), nil
}

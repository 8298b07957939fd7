package remap

import (
	"github.com/microsoft/typescript-go/shim/ast"
	shimchecker "github.com/microsoft/typescript-go/shim/checker"
)

// DefaultExport describes the user file's default-exported binding, as
// resolved through the type-checker's symbol table rather than by
// scanning source text (spec §4.4: "obtained via the type-checker's
// module-exports facility, not by textual scanning").
type DefaultExport struct {
	Symbol *ast.Symbol
	// Decl is the value declaration backing Symbol: a function
	// declaration, the variable declaration an alias hop lands on, or the
	// `export default <expr>` assignment itself.
	Decl *ast.Node
}

// ResolveDefaultExport looks up the user source file's default export
// through the checker's module-exports table and follows at most one
// alias hop, mirroring the alias-resolution discipline in
// resolveIdentifierOrigin (internal/analyzer/decorator_origin.go): get
// the symbol, check SymbolFlagsAlias, and if set, call GetAliasedSymbol
// exactly once. Spec §9: "resolve via symbol table queries + one
// alias-hop, not by AST pattern matching."
//
// Returns (nil, false) if the file has no default export — callers treat
// that as the "no default export" case (spec §4.4 case 1), not an error.
func ResolveDefaultExport(c *shimchecker.Checker, userFile *ast.SourceFile) (*DefaultExport, bool) {
	moduleSym := c.GetSymbolAtLocation(userFile.AsNode())
	if moduleSym == nil || moduleSym.Exports == nil {
		return nil, false
	}

	sym, ok := moduleSym.Exports[ast.InternalSymbolNameDefault]
	if !ok || sym == nil {
		return nil, false
	}

	if sym.Flags&ast.SymbolFlagsAlias != 0 {
		if aliased := c.GetAliasedSymbol(sym); aliased != nil {
			sym = aliased
		}
	}

	decl := sym.ValueDeclaration
	if decl == nil && len(sym.Declarations) > 0 {
		decl = sym.Declarations[0]
	}
	if decl == nil {
		return nil, false
	}

	return &DefaultExport{Symbol: sym, Decl: decl}, true
}

// IsCallable reports whether the default export's type has at least one
// call signature (spec §4.4 case 3: "Default export is not a valid
// function").
func IsCallable(c *shimchecker.Checker, de *DefaultExport) bool {
	return len(callSignatures(c, de)) > 0
}

// ReturnType renders the default export's call return type via the
// checker's typeToString, as spec §4.4 case 4 requires.
func ReturnType(c *shimchecker.Checker, de *DefaultExport) string {
	sigs := callSignatures(c, de)
	if len(sigs) == 0 {
		return c.TypeToString(c.GetTypeOfSymbolAtLocation(de.Symbol, de.Decl))
	}
	return c.TypeToString(c.GetReturnTypeOfSignature(sigs[0]))
}

// ParameterTypes renders the default export's call parameter types in
// declaration order, as spec §4.4 case 5 requires ("each pi is the
// parameter type as reported by the type-checker at the parameter's
// declaration site").
func ParameterTypes(c *shimchecker.Checker, de *DefaultExport) []string {
	sigs := callSignatures(c, de)
	if len(sigs) == 0 {
		return nil
	}
	params := c.GetParametersOfSignature(sigs[0])
	out := make([]string, 0, len(params))
	for _, p := range params {
		decl := p.ValueDeclaration
		out = append(out, c.TypeToString(c.GetTypeOfSymbolAtLocation(p, decl)))
	}
	return out
}

// ReturnTypeAnnotationNode returns the explicit return-type annotation
// node of the default export's function-like declaration, or nil if none
// was written — spec §4.4: "If the default-exported function has an
// explicit return-type annotation, underline that node; otherwise
// underline the entire function/arrow signature."
func ReturnTypeAnnotationNode(de *DefaultExport) *ast.Node {
	fn := functionLike(de.Decl)
	if fn == nil {
		return nil
	}
	return functionReturnTypeNode(fn)
}

// SignatureSpan returns the declaration span to underline when there is
// no explicit return-type annotation: the entire function/arrow signature
// (spec §4.4's "Return-type node selection with no annotation").
func SignatureSpan(de *DefaultExport) (pos int, end int, ok bool) {
	fn := functionLike(de.Decl)
	if fn == nil {
		return 0, 0, false
	}
	end = fn.End()
	if body := fn.Body(); body != nil {
		end = body.Pos()
	}
	return fn.Pos(), end, true
}

// ParameterListSpan returns the span of the default export's parameter
// list, for the "no parameters → underline whole export, else underline
// the parameter list's spanning range" rule in spec §4.4 case 5.
func ParameterListSpan(de *DefaultExport) (pos int, end int, ok bool) {
	fn := functionLike(de.Decl)
	if fn == nil {
		return 0, 0, false
	}
	params := functionParameters(fn)
	if len(params) == 0 {
		return 0, 0, false
	}
	return params[0].Pos(), params[len(params)-1].End(), true
}

// functionReturnTypeNode returns the explicit return-type annotation node
// of a function-like node, or nil if none was written. Each function-like
// AST shape carries its own typed accessor (As*()), mirroring the
// decorator_origin.go convention of unwrapping via the concrete As*()
// method for a node's Kind rather than a generic interface method.
func functionReturnTypeNode(fn *ast.Node) *ast.Node {
	switch fn.Kind {
	case ast.KindFunctionDeclaration:
		return fn.AsFunctionDeclaration().Type
	case ast.KindFunctionExpression:
		return fn.AsFunctionExpression().Type
	case ast.KindArrowFunction:
		return fn.AsArrowFunction().Type
	default:
		return nil
	}
}

// functionParameters returns the parameter declaration nodes of a
// function-like node, in declaration order.
func functionParameters(fn *ast.Node) []*ast.Node {
	switch fn.Kind {
	case ast.KindFunctionDeclaration:
		return fn.AsFunctionDeclaration().Parameters.Nodes
	case ast.KindFunctionExpression:
		return fn.AsFunctionExpression().Parameters.Nodes
	case ast.KindArrowFunction:
		return fn.AsArrowFunction().Parameters.Nodes
	default:
		return nil
	}
}

func callSignatures(c *shimchecker.Checker, de *DefaultExport) []*shimchecker.Signature {
	t := c.GetTypeOfSymbolAtLocation(de.Symbol, de.Decl)
	return c.GetSignaturesOfType(t, shimchecker.SignatureKindCall)
}

// Name returns the default export's own declared name for stack frames
// built off the harness branch (spec §4.4's "at <name>(L:C)" rule applies
// just the same to a harness-rooted diagnostic as to a user-rooted one):
// the function declaration's own name, or for `export default` of a
// named arrow/function-expression binding, the variable it was assigned
// to. Mirrors enclosingFunctionName/assignedVariableName's walk, rooted
// directly at the resolved declaration instead of an ancestor search,
// since ResolveDefaultExport has already landed on the right node.
func (de *DefaultExport) Name() string {
	fn := functionLike(de.Decl)
	if fn == nil {
		return ""
	}
	switch fn.Kind {
	case ast.KindFunctionDeclaration:
		if name := fn.AsFunctionDeclaration().Name(); name != nil && name.Kind == ast.KindIdentifier {
			return name.AsIdentifier().Text
		}
	case ast.KindFunctionExpression:
		if name := fn.AsFunctionExpression().Name(); name != nil && name.Kind == ast.KindIdentifier {
			return name.AsIdentifier().Text
		}
	}
	return assignedVariableName(fn)
}

// functionLike returns decl itself if it's function-like (function
// declaration/expression, arrow function), or nil otherwise. Handles all
// four default-export shapes spec §4.4 enumerates: `export default
// function F(...)`, `export default <expr>`, `const x = (...) => ...;
// export default x`, and `const x = function(...) {}; export default x`
// — for `export default <expr>` Decl is the export assignment and its
// expression is used; in the latter two, one alias hop in
// ResolveDefaultExport landed Decl on x's variable declaration and its
// initializer is used.
func functionLike(decl *ast.Node) *ast.Node {
	switch decl.Kind {
	case ast.KindFunctionDeclaration, ast.KindFunctionExpression, ast.KindArrowFunction:
		return decl
	case ast.KindVariableDeclaration:
		if init := decl.AsVariableDeclaration().Initializer; init != nil {
			return functionLike(init)
		}
		return nil
	case ast.KindExportAssignment:
		if expr := decl.AsExportAssignment().Expression; expr != nil {
			return functionLike(expr)
		}
		return nil
	default:
		return nil
	}
}

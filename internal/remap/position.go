package remap

import "github.com/microsoft/typescript-go/shim/ast"

// findNodeAtPosition descends from root to the smallest descendant node
// whose span contains pos, mirroring the "find the smallest AST node
// enclosing the diagnostic span" step spec §4.4 names for the harness
// branch.
func findNodeAtPosition(root *ast.Node, pos int) *ast.Node {
	found := root
	root.ForEachChild(func(c *ast.Node) bool {
		if pos >= c.Pos() && pos <= c.End() {
			found = findNodeAtPosition(c, pos)
			return true
		}
		return false
	})
	return found
}

// enclosingFunctionName walks a node's ancestors for the nearest
// function-like and returns its name — the function declaration's own
// name, or (for an anonymous function expression/arrow) the name of the
// variable it's assigned to. Returns "" if none is found, which the
// caller renders as an anonymous stack frame (spec §4.4 user branch).
func enclosingFunctionName(node *ast.Node) string {
	for n := node; n != nil; n = n.Parent {
		switch n.Kind {
		case ast.KindFunctionDeclaration:
			if name := n.AsFunctionDeclaration().Name(); name != nil && name.Kind == ast.KindIdentifier {
				return name.AsIdentifier().Text
			}
			return ""
		case ast.KindFunctionExpression:
			if name := n.AsFunctionExpression().Name(); name != nil && name.Kind == ast.KindIdentifier {
				return name.AsIdentifier().Text
			}
			return assignedVariableName(n)
		case ast.KindArrowFunction:
			return assignedVariableName(n)
		}
	}
	return ""
}

func assignedVariableName(fn *ast.Node) string {
	if fn.Parent == nil || fn.Parent.Kind != ast.KindVariableDeclaration {
		return ""
	}
	name := fn.Parent.AsVariableDeclaration().Name()
	if name == nil || name.Kind != ast.KindIdentifier {
		return ""
	}
	return name.AsIdentifier().Text
}

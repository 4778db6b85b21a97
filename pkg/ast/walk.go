/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

// Walk traverses node depth-first. v.Visit(node) is called first; if it
// returns a non-nil visitor w, the children are walked with w, followed by
// w.Visit(nil).
func Walk(v Visitor, node ASTNode) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *FunctionDeclNode:
		for _, p := range n.Params {
			Walk(v, p)
		}
		walkStatements(v, n.Body)

	case *ParamNode:
		Walk(v, n.Declarator)

	case *VarDeclNode:
		Walk(v, n.Declarator)

		if n.Init != nil {
			Walk(v, n.Init)
		}

	case *IfNode:
		Walk(v, n.Condition)
		walkStatements(v, n.Then)
		walkStatements(v, n.Else)

	case *AssignmentNode:
		Walk(v, n.Val)

	case *EqualsNode:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *PointerNode:
		Walk(v, n.Inner)

	case *TypedefNode, *IdentifierNode, *IntegerNode:
		// Skip, leaf nodes

	default:
		panic("Unexpected ASTNode passed to Walk")
	}

	v.Visit(nil)
}

func walkStatements(v Visitor, stmts []Statement) {
	for _, s := range stmts {
		Walk(v, s)
	}
}

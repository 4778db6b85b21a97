/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"fmt"
	"strings"

	"github.com/BlueTheDuck/rcc/pkg/lexer"
)

type ASTNode interface {
	Value() string
}

type Visitor interface {
	Visit(ASTNode) Visitor
}

type Statement interface {
	ASTNode
	statementNode()
}

type Expression interface {
	ASTNode
	expressionNode()
}

// Declarator is either an *IdentifierNode or a *PointerNode wrapping
// another Declarator.
type Declarator interface {
	ASTNode
	declaratorNode()
}

// Program is the ordered list of top-level statements of one parse.
type Program []Statement

type (
	BaseNode struct {
		Token lexer.Token
	}

	IdentifierNode struct {
		BaseNode
	}

	IntegerNode struct {
		BaseNode
		Val int64
	}

	EqualsNode struct {
		BaseNode
		Left  Expression
		Right Expression
	}

	PointerNode struct {
		BaseNode
		Inner Declarator
	}

	ParamNode struct {
		BaseNode
		Type       *IdentifierNode
		Declarator Declarator
	}

	FunctionDeclNode struct {
		BaseNode
		ReturnType *IdentifierNode
		Name       *IdentifierNode
		Params     []*ParamNode
		Body       []Statement
	}

	VarDeclNode struct {
		BaseNode
		Type       *IdentifierNode
		Declarator Declarator
		Init       Expression
	}

	TypedefNode struct {
		BaseNode
		Types []*IdentifierNode
		Name  *IdentifierNode
	}

	// IfNode has a nil Else when there is no else branch, and an empty
	// non-nil one for `else {}`.
	IfNode struct {
		BaseNode
		Condition Expression
		Then      []Statement
		Else      []Statement
	}

	AssignmentNode struct {
		BaseNode
		Target *IdentifierNode
		Val    Expression
	}
)

// -- BaseNode

func (b *BaseNode) Value() string {
	return b.Token.Lexeme()
}

//-- IdentifierNode

func MakeIdentifierNode(tok lexer.Token) *IdentifierNode {
	return &IdentifierNode{BaseNode: BaseNode{Token: tok}}
}

func (*IdentifierNode) expressionNode() {}
func (*IdentifierNode) declaratorNode() {}

//-- IntegerNode

func MakeIntegerNode(tok lexer.Token) *IntegerNode {
	return &IntegerNode{BaseNode: BaseNode{Token: tok}, Val: tok.Integer}
}

func (*IntegerNode) expressionNode() {}

//-- EqualsNode

func (*EqualsNode) expressionNode() {}

//-- PointerNode

func (*PointerNode) declaratorNode() {}

//-- ParamNode

func (p *ParamNode) Value() string {
	return p.Type.Value()
}

//-- FunctionDeclNode

func (f *FunctionDeclNode) Value() string {
	return "name(" + f.Name.Value() + ") returns(" + f.ReturnType.Value() + ")"
}

func (*FunctionDeclNode) statementNode() {}

//-- VarDeclNode

func (v *VarDeclNode) Value() string {
	return v.Type.Value()
}

func (*VarDeclNode) statementNode() {}

//-- TypedefNode

func (t *TypedefNode) Value() string {
	types := make([]string, len(t.Types))
	for i, ty := range t.Types {
		types[i] = ty.Value()
	}
	return "types(" + strings.Join(types, " ") + ") name(" + t.Name.Value() + ")"
}

func (*TypedefNode) statementNode() {}

//-- IfNode

func (i *IfNode) Value() string {
	if i.Else == nil {
		return fmt.Sprintf("then(%d)", len(i.Then))
	}
	return fmt.Sprintf("then(%d) else(%d)", len(i.Then), len(i.Else))
}

func (*IfNode) statementNode() {}

//-- AssignmentNode

func (a *AssignmentNode) Value() string {
	return a.Target.Value()
}

func (*AssignmentNode) statementNode() {}

// DeclaredName unwraps any pointers around d and returns the identifier
// being declared.
func DeclaredName(d Declarator) *IdentifierNode {
	for {
		switch n := d.(type) {
		case *IdentifierNode:
			return n
		case *PointerNode:
			d = n.Inner
		default:
			panic(fmt.Sprintf("unexpected declarator %T", d))
		}
	}
}

// PointerDepth counts the pointers wrapped around the declared name.
func PointerDepth(d Declarator) int {
	depth := 0
	for p, ok := d.(*PointerNode); ok; p, ok = p.Inner.(*PointerNode) {
		depth++
	}
	return depth
}

/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"testing"

	"github.com/BlueTheDuck/rcc/pkg/lexer"
	"github.com/BlueTheDuck/rcc/pkg/span"
)

func tok(text string) lexer.Token {
	return lexer.Lex(span.Classify(span.NewSource("", text), 0))
}

func ident(text string) *IdentifierNode {
	return MakeIdentifierNode(tok(text))
}

func pointer(inner Declarator) *PointerNode {
	return &PointerNode{BaseNode: BaseNode{Token: tok("*")}, Inner: inner}
}

func mainWithArgs() *FunctionDeclNode {
	return &FunctionDeclNode{
		BaseNode:   BaseNode{Token: tok("int")},
		ReturnType: ident("int"),
		Name:       ident("main"),
		Params: []*ParamNode{
			{BaseNode: BaseNode{Token: tok("int")}, Type: ident("int"), Declarator: ident("argc")},
			{BaseNode: BaseNode{Token: tok("char")}, Type: ident("char"), Declarator: pointer(pointer(ident("argv")))},
		},
		Body: []Statement{
			&IfNode{
				BaseNode: BaseNode{Token: tok("if")},
				Condition: &EqualsNode{
					BaseNode: BaseNode{Token: tok("==")},
					Left:     ident("argc"),
					Right:    MakeIntegerNode(tok("1")),
				},
				Then: []Statement{
					&AssignmentNode{BaseNode: BaseNode{Token: tok("x")}, Target: ident("x"), Val: MakeIntegerNode(tok("-2"))},
				},
				Else: []Statement{},
			},
		},
	}
}

func TestValues(t *testing.T) {
	tests := []struct {
		node ASTNode
		want string
	}{
		{mainWithArgs(), "name(main) returns(int)"},
		{&TypedefNode{Types: []*IdentifierNode{ident("unsigned"), ident("int")}, Name: ident("uint32_t")}, "types(unsigned int) name(uint32_t)"},
		{&IfNode{Then: []Statement{}}, "then(0)"},
		{&IfNode{Then: []Statement{}, Else: []Statement{}}, "then(0) else(0)"},
		{&VarDeclNode{Type: ident("char"), Declarator: ident("c")}, "char"},
		{MakeIntegerNode(tok("42")), "42"},
		{pointer(ident("p")), "*"},
	}

	for _, test := range tests {
		if v := test.node.Value(); v != test.want {
			t.Errorf("wanted '%s', got '%s'", test.want, v)
		}
	}
}

func TestIntegerNode(t *testing.T) {
	if n := MakeIntegerNode(tok("-17")); n.Val != -17 {
		t.Errorf("wanted -17, got %d", n.Val)
	}
}

func TestDeclaredName(t *testing.T) {
	d := pointer(pointer(ident("argv")))

	if name := DeclaredName(d).Value(); name != "argv" {
		t.Errorf("wanted 'argv', got '%s'", name)
	}
	if depth := PointerDepth(d); depth != 2 {
		t.Errorf("wanted a pointer depth of 2, got %d", depth)
	}
	if depth := PointerDepth(ident("x")); depth != 0 {
		t.Errorf("wanted a pointer depth of 0, got %d", depth)
	}
}

func TestDump(t *testing.T) {
	want := `FunctionDeclNode[name(main) returns(int)]
    ParamNode[int]
        IdentifierNode[argc]
    ParamNode[char]
        PointerNode[*]
            PointerNode[*]
                IdentifierNode[argv]
    IfNode[then(1) else(0)]
        EqualsNode[==]
            IdentifierNode[argc]
            IntegerNode[1]
        AssignmentNode[x]
            IntegerNode[-2]
`

	if got := ASTToString(mainWithArgs()); got != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, got)
	}
}

func TestDumpProgram(t *testing.T) {
	p := Program{
		&TypedefNode{Types: []*IdentifierNode{ident("int")}, Name: ident("int32_t")},
		&VarDeclNode{Type: ident("int32_t"), Declarator: ident("x"), Init: MakeIntegerNode(tok("0"))},
	}

	want := "TypedefNode[types(int) name(int32_t)]\nVarDeclNode[int32_t]\n    IdentifierNode[x]\n    IntegerNode[0]\n"
	if got := Dump(p); got != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, got)
	}
}

type counter struct {
	nodes int
	depth int
	max   int
}

func (c *counter) Visit(node ASTNode) Visitor {
	if node == nil {
		c.depth--
		return nil
	}
	c.nodes++
	c.depth++
	c.max = max(c.max, c.depth)
	return c
}

type pruner struct {
	seen []string
}

func (p *pruner) Visit(node ASTNode) Visitor {
	if node == nil {
		return nil
	}
	p.seen = append(p.seen, node.Value())
	if _, ok := node.(*ParamNode); ok {
		return nil
	}
	return p
}

func TestWalk(t *testing.T) {
	c := counter{}
	Walk(&c, mainWithArgs())

	if c.nodes != 13 {
		t.Errorf("wanted 13 nodes, got %d", c.nodes)
	}
	if c.max != 5 {
		t.Errorf("wanted a depth of 5, got %d", c.max)
	}
	if c.depth != 0 {
		t.Errorf("wanted every visit to be closed, depth is %d", c.depth)
	}
}

// Returning a nil Visitor skips the children of a node.
func TestWalkPrunes(t *testing.T) {
	p := pruner{}
	Walk(&p, mainWithArgs())

	for _, v := range p.seen {
		if v == "argv" || v == "*" {
			t.Errorf("wanted parameter declarators to be skipped, saw '%s'", v)
		}
	}
	if len(p.seen) != 9 {
		t.Errorf("wanted 9 visits, got %d: %v", len(p.seen), p.seen)
	}
}

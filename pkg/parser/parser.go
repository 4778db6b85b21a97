/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"fmt"
	"strings"

	"github.com/BlueTheDuck/rcc/pkg/ast"
	"github.com/BlueTheDuck/rcc/pkg/common/parse"
	"github.com/BlueTheDuck/rcc/pkg/lexer"
	"github.com/rs/zerolog"
)

// Parser builds a Program out of a finalized token buffer. Productions are
// functions from a Stream to the Stream that follows what they matched; on
// failure they hand back their input untouched, so backtracking is just a
// matter of trying the next production on the same Stream.
type Parser struct {
	Stream lexer.Stream
	Logger zerolog.Logger

	// farthest is the furthest position any production failed at while
	// parsing the current statement, along with what was expected there
	farthest lexer.Stream
	expected []string
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{Stream: lexer.NewStream(tokens), Logger: zerolog.Nop()}
}

// Parse is shorthand for NewParser(tokens).Parse()
func Parse(tokens []lexer.Token) (ast.Program, error) {
	return NewParser(tokens).Parse()
}

// Parse consumes statements until the end of input. Any token left after
// TOK_EOF is a syntax error.
func (p *Parser) Parse() (program ast.Program, err error) {
	defer parse.Catch(&err)

	program = ast.Program{}
	in := p.Stream

	for !in.Empty() && !in.Peek().Is(lexer.TOK_EOF) {
		p.farthest, p.expected = in, nil

		rest, stmt, ok := p.statement(in)
		if !ok {
			p.failAtFarthest(in)
		}

		p.Logger.Trace().
			Str("statement", fmt.Sprintf("%T", stmt)).
			Int("offset", in.Offset()).
			Int("tokens", in.Len()-rest.Len()).
			Msg("parsed statement")

		program = append(program, stmt)
		in = rest
	}

	if in.Empty() {
		panic(parse.NewSyntaxError(parse.PHASE_PARSER, parse.Location{}, "token stream does not end with an end of input"))
	}

	if in.Len() > 1 {
		_, trailing := in.Split(1)
		panic(parse.NewSyntaxError(parse.PHASE_PARSER, trailing.Peek().Span.Location(),
			fmt.Sprintf("unexpected tokens after end of input: %s", trailing)))
	}

	p.Logger.Debug().Int("statements", len(program)).Msg("parsed program")

	return program, nil
}

func (p *Parser) failAtFarthest(in lexer.Stream) {
	tok := p.farthest.Peek()
	m := fmt.Sprintf("unexpected '%s'", tok)
	if len(p.expected) > 0 {
		m += ", expected " + strings.Join(p.expected, " or ")
	}
	m += fmt.Sprintf("; remaining tokens: %s", in)

	panic(parse.NewSyntaxError(parse.PHASE_PARSER, tok.Span.Location(), m))
}

// miss records that what was expected at in and not found.
func (p *Parser) miss(in lexer.Stream, what string) {
	switch {
	case in.Offset() > p.farthest.Offset():
		p.farthest, p.expected = in, []string{what}
	case in.Offset() == p.farthest.Offset():
		for _, e := range p.expected {
			if e == what {
				return
			}
		}
		p.expected = append(p.expected, what)
	}
}

type production[T any] func(lexer.Stream) (lexer.Stream, T, bool)

// firstOf returns the result of the first alternative that matches in.
func firstOf[T any](in lexer.Stream, alts ...production[T]) (lexer.Stream, T, bool) {
	for _, alt := range alts {
		if rest, node, ok := alt(in); ok {
			return rest, node, true
		}
	}

	var zero T
	return in, zero, false
}

var expectations = map[lexer.TokenType]string{
	lexer.TOK_EOF:        "end of input",
	lexer.TOK_IDENTIFIER: "an identifier",
	lexer.TOK_INTEGER:    "an integer",
	lexer.TOK_PAREN_L:    "'('",
	lexer.TOK_PAREN_R:    "')'",
	lexer.TOK_BRACE_L:    "'{'",
	lexer.TOK_BRACE_R:    "'}'",
	lexer.TOK_EQ_EQ:      "'=='",
	lexer.TOK_ASSIGN:     "'='",
	lexer.TOK_SEMICOLON:  "';'",
	lexer.TOK_COMMA:      "','",
	lexer.TOK_STAR:       "'*'",
}

func (p *Parser) expect(in lexer.Stream, tt lexer.TokenType) (lexer.Stream, lexer.Token, bool) {
	tok := in.Peek()
	if !tok.Is(tt) {
		p.miss(in, expectations[tt])
		return in, tok, false
	}
	return in.Skip(1), tok, true
}

func (p *Parser) expectKeyword(in lexer.Stream, k lexer.Keyword, name string) (lexer.Stream, lexer.Token, bool) {
	tok := in.Peek()
	if !tok.IsKeyword(k) {
		p.miss(in, "'"+name+"'")
		return in, tok, false
	}
	return in.Skip(1), tok, true
}

func (p *Parser) identifier(in lexer.Stream) (lexer.Stream, *ast.IdentifierNode, bool) {
	rest, tok, ok := p.expect(in, lexer.TOK_IDENTIFIER)
	if !ok {
		return in, nil, false
	}
	return rest, ast.MakeIdentifierNode(tok), true
}

// statement returns the first statement production matching in
//
// Grammar:
//
//	statement       = function / variable / typedef / if / assignment
func (p *Parser) statement(in lexer.Stream) (lexer.Stream, ast.Statement, bool) {
	return firstOf[ast.Statement](in,
		p.functionDecl,
		p.varDecl,
		p.typedef,
		p.ifStatement,
		p.assignment,
	)
}

// functionDecl returns a FunctionDeclNode
//
// Grammar:
//
//	function        = identifier identifier "(" params ")" block
func (p *Parser) functionDecl(in lexer.Stream) (lexer.Stream, ast.Statement, bool) {
	rest, returnType, ok := p.identifier(in)
	if !ok {
		return in, nil, false
	}
	rest, name, ok := p.identifier(rest)
	if !ok {
		return in, nil, false
	}
	rest, _, ok = p.expect(rest, lexer.TOK_PAREN_L)
	if !ok {
		return in, nil, false
	}
	rest, params, ok := p.params(rest)
	if !ok {
		return in, nil, false
	}
	rest, _, ok = p.expect(rest, lexer.TOK_PAREN_R)
	if !ok {
		return in, nil, false
	}
	rest, body, ok := p.block(rest)
	if !ok {
		return in, nil, false
	}

	return rest, &ast.FunctionDeclNode{
		BaseNode:   ast.BaseNode{Token: returnType.Token},
		ReturnType: returnType,
		Name:       name,
		Params:     params,
		Body:       body,
	}, true
}

// params returns the parameter list of a function declaration
//
// Grammar:
//
//	params          = "" / "void" / param *( "," param )
func (p *Parser) params(in lexer.Stream) (lexer.Stream, []*ast.ParamNode, bool) {
	params := []*ast.ParamNode{}

	if in.Peek().Is(lexer.TOK_PAREN_R) {
		return in, params, true
	}
	if in.Len() > 1 && in.Peek().Lexeme() == "void" && in.At(1).Is(lexer.TOK_PAREN_R) {
		return in.Skip(1), params, true
	}

	rest, param, ok := p.param(in)
	if !ok {
		return in, nil, false
	}
	params = append(params, param)

	for {
		next, _, ok := p.expect(rest, lexer.TOK_COMMA)
		if !ok {
			return rest, params, true
		}
		if next, param, ok = p.param(next); !ok {
			return in, nil, false
		}
		params = append(params, param)
		rest = next
	}
}

// param returns a ParamNode
//
// Grammar:
//
//	param           = identifier declarator
func (p *Parser) param(in lexer.Stream) (lexer.Stream, *ast.ParamNode, bool) {
	rest, ty, ok := p.identifier(in)
	if !ok {
		return in, nil, false
	}
	rest, decl, ok := p.declarator(rest)
	if !ok {
		return in, nil, false
	}

	return rest, &ast.ParamNode{BaseNode: ast.BaseNode{Token: ty.Token}, Type: ty, Declarator: decl}, true
}

// declarator returns an IdentifierNode, or a PointerNode wrapping the
// declarator that follows the '*'
//
// Grammar:
//
//	declarator      = identifier / "*" declarator
func (p *Parser) declarator(in lexer.Stream) (lexer.Stream, ast.Declarator, bool) {
	if rest, star, ok := p.expect(in, lexer.TOK_STAR); ok {
		rest, inner, ok := p.declarator(rest)
		if !ok {
			return in, nil, false
		}
		return rest, &ast.PointerNode{BaseNode: ast.BaseNode{Token: star}, Inner: inner}, true
	}

	rest, name, ok := p.identifier(in)
	if !ok {
		return in, nil, false
	}
	return rest, name, true
}

// block returns the statements between a pair of braces
//
// Grammar:
//
//	block           = "{" *statement "}"
func (p *Parser) block(in lexer.Stream) (lexer.Stream, []ast.Statement, bool) {
	rest, _, ok := p.expect(in, lexer.TOK_BRACE_L)
	if !ok {
		return in, nil, false
	}

	stmts := []ast.Statement{}
	for {
		if next, _, ok := p.expect(rest, lexer.TOK_BRACE_R); ok {
			return next, stmts, true
		}

		next, stmt, ok := p.statement(rest)
		if !ok {
			return in, nil, false
		}
		stmts = append(stmts, stmt)
		rest = next
	}
}

// body returns a block, or a single statement as a one-element block
//
// Grammar:
//
//	body            = block / statement
func (p *Parser) body(in lexer.Stream) (lexer.Stream, []ast.Statement, bool) {
	if rest, stmts, ok := p.block(in); ok {
		return rest, stmts, true
	}

	rest, stmt, ok := p.statement(in)
	if !ok {
		return in, nil, false
	}
	return rest, []ast.Statement{stmt}, true
}

// varDecl returns a VarDeclNode
//
// Grammar:
//
//	variable        = identifier declarator [ "=" expression ] ";"
func (p *Parser) varDecl(in lexer.Stream) (lexer.Stream, ast.Statement, bool) {
	rest, ty, ok := p.identifier(in)
	if !ok {
		return in, nil, false
	}
	rest, decl, ok := p.declarator(rest)
	if !ok {
		return in, nil, false
	}

	v := ast.VarDeclNode{BaseNode: ast.BaseNode{Token: ty.Token}, Type: ty, Declarator: decl}

	if next, _, ok := p.expect(rest, lexer.TOK_ASSIGN); ok {
		if rest, v.Init, ok = p.expression(next); !ok {
			return in, nil, false
		}
	}

	rest, _, ok = p.expect(rest, lexer.TOK_SEMICOLON)
	if !ok {
		return in, nil, false
	}

	return rest, &v, true
}

// typedef returns a TypedefNode
//
// Grammar:
//
//	typedef         = "typedef" 2*identifier ";"
func (p *Parser) typedef(in lexer.Stream) (lexer.Stream, ast.Statement, bool) {
	rest, tok, ok := p.expectKeyword(in, lexer.KEYWORD_TYPEDEF, "typedef")
	if !ok {
		return in, nil, false
	}

	idents := []*ast.IdentifierNode{}
	for {
		next, id, ok := p.identifier(rest)
		if !ok {
			break
		}
		idents = append(idents, id)
		rest = next
	}

	if len(idents) < 2 {
		return in, nil, false
	}

	rest, _, ok = p.expect(rest, lexer.TOK_SEMICOLON)
	if !ok {
		return in, nil, false
	}

	last := len(idents) - 1
	return rest, &ast.TypedefNode{
		BaseNode: ast.BaseNode{Token: tok},
		Types:    idents[:last],
		Name:     idents[last],
	}, true
}

// ifStatement returns an IfNode
//
// Grammar:
//
//	if              = "if" "(" expression ")" body [ "else" body ]
func (p *Parser) ifStatement(in lexer.Stream) (lexer.Stream, ast.Statement, bool) {
	rest, tok, ok := p.expectKeyword(in, lexer.KEYWORD_IF, "if")
	if !ok {
		return in, nil, false
	}
	rest, _, ok = p.expect(rest, lexer.TOK_PAREN_L)
	if !ok {
		return in, nil, false
	}
	rest, cond, ok := p.expression(rest)
	if !ok {
		return in, nil, false
	}
	rest, _, ok = p.expect(rest, lexer.TOK_PAREN_R)
	if !ok {
		return in, nil, false
	}

	node := ast.IfNode{BaseNode: ast.BaseNode{Token: tok}, Condition: cond}
	if rest, node.Then, ok = p.body(rest); !ok {
		return in, nil, false
	}

	if next, _, ok := p.expectKeyword(rest, lexer.KEYWORD_ELSE, "else"); ok {
		if rest, node.Else, ok = p.body(next); !ok {
			return in, nil, false
		}
	}

	return rest, &node, true
}

// assignment returns an AssignmentNode
//
// Grammar:
//
//	assignment      = identifier "=" expression ";"
func (p *Parser) assignment(in lexer.Stream) (lexer.Stream, ast.Statement, bool) {
	rest, target, ok := p.identifier(in)
	if !ok {
		return in, nil, false
	}
	rest, _, ok = p.expect(rest, lexer.TOK_ASSIGN)
	if !ok {
		return in, nil, false
	}
	rest, val, ok := p.expression(rest)
	if !ok {
		return in, nil, false
	}
	rest, _, ok = p.expect(rest, lexer.TOK_SEMICOLON)
	if !ok {
		return in, nil, false
	}

	return rest, &ast.AssignmentNode{BaseNode: ast.BaseNode{Token: target.Token}, Target: target, Val: val}, true
}

// expression returns an EqualsNode, or a single value
//
// Grammar:
//
//	expression      = value "==" value / value
func (p *Parser) expression(in lexer.Stream) (lexer.Stream, ast.Expression, bool) {
	return firstOf[ast.Expression](in, p.equality, p.value)
}

func (p *Parser) equality(in lexer.Stream) (lexer.Stream, ast.Expression, bool) {
	rest, left, ok := p.value(in)
	if !ok {
		return in, nil, false
	}
	rest, op, ok := p.expect(rest, lexer.TOK_EQ_EQ)
	if !ok {
		return in, nil, false
	}
	rest, right, ok := p.value(rest)
	if !ok {
		return in, nil, false
	}

	return rest, &ast.EqualsNode{BaseNode: ast.BaseNode{Token: op}, Left: left, Right: right}, true
}

// value returns an IntegerNode or an IdentifierNode
//
// Grammar:
//
//	value           = integer / identifier
func (p *Parser) value(in lexer.Stream) (lexer.Stream, ast.Expression, bool) {
	if rest, tok, ok := p.expect(in, lexer.TOK_INTEGER); ok {
		return rest, ast.MakeIntegerNode(tok), true
	}

	rest, id, ok := p.identifier(in)
	if !ok {
		return in, nil, false
	}
	return rest, id, true
}

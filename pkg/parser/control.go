package parser

import (
	"fmt"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/lexer"
)

func (p *Parser) expectKeyword(res *parseResult, word string) bool {
	if !p.current.IsKeyword(word) {
		res.failure(syntaxError(p.current, fmt.Sprintf("Expected '%s'", word)))
		return false
	}
	p.consume(res)
	return true
}

// body parses what follows `then`: a NEWLINE-introduced statement list closed
// by `end` (block form), or a single inline statement.
func (p *Parser) body(res *parseResult) (ast.Node, bool, bool) {
	if p.current.Kind == lexer.NEWLINE {
		p.consume(res)
		statements := res.register(p.statements())
		if res.err != nil {
			return nil, true, false
		}
		if !p.expectKeyword(res, "end") {
			return nil, true, false
		}
		return statements, true, true
	}
	statement := res.register(p.statement())
	if res.err != nil {
		return nil, false, false
	}
	return statement, false, true
}

func (p *Parser) ifExpression() *parseResult {
	res := &parseResult{}
	start := p.current.Start
	chain := res.register(p.ifCases("if"))
	if res.err != nil {
		return res
	}
	return res.success(ast.WithSpan(chain, p.spanFrom(start)))
}

// ifCases parses one `if` or `elif` arm plus everything after it, returning
// an unspanned *ast.If holding the flattened cases and the optional else.
func (p *Parser) ifCases(keyword string) *parseResult {
	res := &parseResult{}

	if !p.expectKeyword(res, keyword) {
		return res
	}
	condition := res.register(p.expression())
	if res.err != nil {
		return res
	}
	if !p.expectKeyword(res, "then") {
		return res
	}

	var (
		cases    []*ast.IfCase
		elseCase *ast.ElseCase
	)

	if p.current.Kind == lexer.NEWLINE {
		p.consume(res)
		statements := res.register(p.statements())
		if res.err != nil {
			return res
		}
		cases = append(cases, &ast.IfCase{Condition: condition, Body: statements, Block: true})

		switch {
		case p.current.IsKeyword("end"):
			p.consume(res)
		case p.current.IsKeyword("elif"), p.current.IsKeyword("else"):
			rest := res.register(p.elifOrElse())
			if res.err != nil {
				return res
			}
			tail := rest.(*ast.If)
			cases = append(cases, tail.Cases...)
			elseCase = tail.Else
		default:
			return res.failure(syntaxError(p.current, "Expected 'end', 'elif' or 'else'"))
		}
		return res.success(ast.NewIf(cases, elseCase))
	}

	statement := res.register(p.statement())
	if res.err != nil {
		return res
	}
	cases = append(cases, &ast.IfCase{Condition: condition, Body: statement})

	rest := res.register(p.elifOrElse())
	if res.err != nil {
		return res
	}
	tail := rest.(*ast.If)
	cases = append(cases, tail.Cases...)
	return res.success(ast.NewIf(cases, tail.Else))
}

// elifOrElse parses an optional `elif` chain or `else` arm. It always yields
// an *ast.If, possibly empty.
func (p *Parser) elifOrElse() *parseResult {
	if p.current.IsKeyword("elif") {
		return p.ifCases("elif")
	}

	res := &parseResult{}
	if !p.current.IsKeyword("else") {
		return res.success(ast.NewIf(nil, nil))
	}
	p.consume(res)

	body, block, ok := p.body(res)
	if !ok {
		return res
	}
	return res.success(ast.NewIf(nil, &ast.ElseCase{Body: body, Block: block}))
}

func (p *Parser) forExpression() *parseResult {
	res := &parseResult{}
	start := p.current.Start

	if !p.expectKeyword(res, "for") {
		return res
	}
	if p.current.Kind != lexer.IDENTIFIER {
		return res.failure(syntaxError(p.current, "Expected identifier"))
	}
	variable := p.current.Value
	p.consume(res)

	if p.current.Kind != lexer.EQ {
		return res.failure(syntaxError(p.current, "Expected '='"))
	}
	p.consume(res)

	from := res.register(p.expression())
	if res.err != nil {
		return res
	}
	if !p.expectKeyword(res, "to") {
		return res
	}
	to := res.register(p.expression())
	if res.err != nil {
		return res
	}

	var step ast.Node
	if p.current.IsKeyword("step") {
		p.consume(res)
		step = res.register(p.expression())
		if res.err != nil {
			return res
		}
	}

	if !p.expectKeyword(res, "then") {
		return res
	}
	body, block, ok := p.body(res)
	if !ok {
		return res
	}
	return res.success(ast.WithSpan(ast.NewFor(variable, from, to, step, body, block), p.spanFrom(start)))
}

func (p *Parser) whileExpression() *parseResult {
	res := &parseResult{}
	start := p.current.Start

	if !p.expectKeyword(res, "while") {
		return res
	}
	condition := res.register(p.expression())
	if res.err != nil {
		return res
	}
	if !p.expectKeyword(res, "then") {
		return res
	}
	body, block, ok := p.body(res)
	if !ok {
		return res
	}
	return res.success(ast.WithSpan(ast.NewWhile(condition, body, block), p.spanFrom(start)))
}

func (p *Parser) functionDefinition() *parseResult {
	res := &parseResult{}
	start := p.current.Start

	if !p.expectKeyword(res, "fn") {
		return res
	}

	var name string
	if p.current.Kind == lexer.IDENTIFIER {
		name = p.current.Value
		p.consume(res)
		if p.current.Kind != lexer.LPAREN {
			return res.failure(syntaxError(p.current, "Expected '('"))
		}
	} else if p.current.Kind != lexer.LPAREN {
		return res.failure(syntaxError(p.current, "Expected identifier or '('"))
	}
	p.consume(res)

	var params []string
	if p.current.Kind == lexer.IDENTIFIER {
		params = append(params, p.current.Value)
		p.consume(res)
		for p.current.Kind == lexer.COMMA {
			p.consume(res)
			if p.current.Kind != lexer.IDENTIFIER {
				return res.failure(syntaxError(p.current, "Expected identifier"))
			}
			params = append(params, p.current.Value)
			p.consume(res)
		}
		if p.current.Kind != lexer.RPAREN {
			return res.failure(syntaxError(p.current, "Expected ',' or ')'"))
		}
	} else if p.current.Kind != lexer.RPAREN {
		return res.failure(syntaxError(p.current, "Expected identifier or ')'"))
	}
	p.consume(res)

	if p.current.Kind == lexer.ARROW {
		p.consume(res)
		body := res.register(p.expression())
		if res.err != nil {
			return res
		}
		return res.success(ast.WithSpan(ast.NewFunctionDef(name, params, body, true), p.spanFrom(start)))
	}

	if p.current.Kind != lexer.NEWLINE {
		return res.failure(syntaxError(p.current, "Expected '->' or NEWLINE"))
	}
	p.consume(res)

	body := res.register(p.statements())
	if res.err != nil {
		return res
	}
	if !p.expectKeyword(res, "end") {
		return res
	}
	return res.success(ast.WithSpan(ast.NewFunctionDef(name, params, body, false), p.spanFrom(start)))
}

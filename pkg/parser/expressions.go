package parser

import (
	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/lexer"
)

func (p *Parser) comparison() *parseResult {
	res := &parseResult{}

	if p.current.IsKeyword("not") {
		start := p.current.Start
		p.consume(res)
		operand := res.register(p.comparison())
		if res.err != nil {
			return res
		}
		return res.success(ast.WithSpan(ast.NewUnaryOp(ast.OpNot, operand), p.spanFrom(start)))
	}

	node := res.register(p.binaryOperation(p.arithmetic, comparisonOperators, nil))
	if res.err != nil {
		return res.failure(syntaxError(p.current, expectedOperand))
	}
	return res.success(node)
}

func (p *Parser) arithmetic() *parseResult {
	return p.binaryOperation(p.term, additiveOperators, nil)
}

func (p *Parser) term() *parseResult {
	return p.binaryOperation(p.factor, multiplicativeOperators, nil)
}

func (p *Parser) factor() *parseResult {
	res := &parseResult{}
	tok := p.current

	if tok.Kind == lexer.PLUS || tok.Kind == lexer.MINUS {
		p.consume(res)
		operand := res.register(p.factor())
		if res.err != nil {
			return res
		}
		op := ast.OpAdd
		if tok.Kind == lexer.MINUS {
			op = ast.OpSubtract
		}
		return res.success(ast.WithSpan(ast.NewUnaryOp(op, operand), p.spanFrom(tok.Start)))
	}

	return p.power()
}

func (p *Parser) power() *parseResult {
	return p.binaryOperation(p.call, powerOperators, p.factor)
}

// call parses an atom followed by any number of argument lists, so a call
// result can itself be called.
func (p *Parser) call() *parseResult {
	res := &parseResult{}
	node := res.register(p.atom())
	if res.err != nil {
		return res
	}

	for p.current.Kind == lexer.LPAREN {
		p.consume(res)
		var args []ast.Node

		if p.current.Kind == lexer.RPAREN {
			p.consume(res)
		} else {
			args = append(args, res.register(p.expression()))
			if res.err != nil {
				return res.failure(syntaxError(p.current, "Expected ')', 'let', 'if', 'for', 'while', 'fn', int, float, identifier, '+', '-', '(', '[' or 'not'"))
			}
			for p.current.Kind == lexer.COMMA {
				p.consume(res)
				args = append(args, res.register(p.expression()))
				if res.err != nil {
					return res
				}
			}
			if p.current.Kind != lexer.RPAREN {
				return res.failure(syntaxError(p.current, "Expected ',' or ')'"))
			}
			p.consume(res)
		}
		node = ast.WithSpan(ast.NewCall(node, args), p.spanFrom(node.Span().Start))
	}
	return res.success(node)
}

func (p *Parser) atom() *parseResult {
	res := &parseResult{}
	tok := p.current

	switch tok.Kind {
	case lexer.INT, lexer.FLOAT:
		p.consume(res)
		return res.success(ast.WithSpan(ast.NewNumberLiteral(tok.Number), tok.Span()))
	case lexer.STRING:
		p.consume(res)
		return res.success(ast.WithSpan(ast.NewStringLiteral(tok.Value), tok.Span()))
	case lexer.IDENTIFIER:
		p.consume(res)
		return res.success(ast.WithSpan(ast.NewVarAccess(tok.Value), tok.Span()))
	case lexer.LPAREN:
		p.consume(res)
		inner := res.register(p.expression())
		if res.err != nil {
			return res
		}
		if p.current.Kind != lexer.RPAREN {
			return res.failure(syntaxError(p.current, "Expected ')'"))
		}
		p.consume(res)
		return res.success(inner)
	case lexer.LSQUARE:
		return p.list()
	case lexer.KEYWORD:
		switch tok.Value {
		case "if":
			return p.ifExpression()
		case "for":
			return p.forExpression()
		case "while":
			return p.whileExpression()
		case "fn":
			return p.functionDefinition()
		}
	}
	return res.failure(syntaxError(tok, expectedAtom))
}

func (p *Parser) list() *parseResult {
	res := &parseResult{}
	start := p.current.Start
	var elements []ast.Node

	if p.current.Kind != lexer.LSQUARE {
		return res.failure(syntaxError(p.current, "Expected '['"))
	}
	p.consume(res)

	if p.current.Kind == lexer.RSQUARE {
		p.consume(res)
		return res.success(ast.WithSpan(ast.NewListLiteral(elements), p.spanFrom(start)))
	}

	elements = append(elements, res.register(p.expression()))
	if res.err != nil {
		return res.failure(syntaxError(p.current, "Expected ']', 'let', 'if', 'for', 'while', 'fn', int, float, identifier, '+', '-', '(', '[' or 'not'"))
	}
	for p.current.Kind == lexer.COMMA {
		p.consume(res)
		elements = append(elements, res.register(p.expression()))
		if res.err != nil {
			return res
		}
	}
	if p.current.Kind != lexer.RSQUARE {
		return res.failure(syntaxError(p.current, "Expected ',' or ']'"))
	}
	p.consume(res)
	return res.success(ast.WithSpan(ast.NewListLiteral(elements), p.spanFrom(start)))
}

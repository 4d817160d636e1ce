// Package parser builds the AST from a token stream with a recursive-descent,
// precedence-climbing parser and validates its structure before evaluation.
package parser

import (
	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/lexer"
)

const (
	expectedStatement  = "Expected 'return', 'continue', 'break', 'let', 'if', 'for', 'while', 'fn', int, float, identifier, '+', '-', '(', '[' or 'not'"
	expectedExpression = "Expected 'let', 'if', 'for', 'while', 'fn', int, float, identifier, '+', '-', '(', '[' or 'not'"
	expectedOperand    = "Expected int, float, identifier, '+', '-', '(', '[' or 'not'"
	expectedAtom       = "Expected int, float, identifier, '+', '-', '(', '[', 'if', 'for', 'while', 'fn'"
)

// Parser walks a token slice produced by the lexer. The slice must end with
// an EOF token.
type Parser struct {
	tokens  []lexer.Token
	index   int
	current lexer.Token
}

// New creates a parser positioned on the first token.
func New(tokens []lexer.Token) *Parser {
	p := &Parser{tokens: tokens, index: -1}
	p.advance()
	return p
}

// Parse turns a token stream into a program block. The whole stream must be
// consumed. Failures are *diagnostics.Error values.
func Parse(tokens []lexer.Token) (*ast.Block, error) {
	return New(tokens).Parse()
}

// ParseSource lexes and parses text in one step.
func ParseSource(source, text string) (*ast.Block, error) {
	tokens, err := lexer.Tokenize(source, text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func (p *Parser) Parse() (*ast.Block, error) {
	res := p.statements()
	if res.err == nil && p.current.Kind != lexer.EOF {
		if len(res.node.(*ast.Block).Statements) == 0 {
			res.failure(syntaxError(p.current, expectedStatement))
		} else {
			res.failure(syntaxError(p.current, "Token cannot appear after previous tokens"))
		}
	}
	if res.err != nil {
		return nil, res.err
	}
	return res.node.(*ast.Block), nil
}

func (p *Parser) advance() {
	p.index++
	p.update()
}

func (p *Parser) reverse(amount int) {
	p.index -= amount
	p.update()
}

func (p *Parser) update() {
	if p.index >= 0 && p.index < len(p.tokens) {
		p.current = p.tokens[p.index]
	}
}

// lastEnd is the end of the most recently consumed token.
func (p *Parser) lastEnd() ast.Position {
	if p.index > 0 && p.index <= len(p.tokens) {
		return p.tokens[p.index-1].End
	}
	return p.current.Start
}

func (p *Parser) spanFrom(start ast.Position) ast.Span {
	return ast.Span{Start: start, End: p.lastEnd()}
}

// consume records one token of progress and moves past it.
func (p *Parser) consume(res *parseResult) {
	res.registerAdvancement()
	p.advance()
}

// statements parses separator-delimited statements until an attempt fails
// without consuming anything, which marks the end of the list. An attempt
// that fails after making progress is a real syntax error.
func (p *Parser) statements() *parseResult {
	res := &parseResult{}
	start := p.current.Start
	var statements []ast.Node

	for {
		separators := 0
		for p.current.Kind == lexer.NEWLINE {
			p.consume(res)
			separators++
		}
		if separators == 0 && len(statements) > 0 {
			break
		}
		attempt := p.statement()
		if attempt.err != nil {
			if attempt.advances == 0 {
				p.reverse(attempt.advances)
				break
			}
			res.register(attempt)
			return res
		}
		statements = append(statements, res.register(attempt))
	}

	span := ast.Span{Start: start, End: p.lastEnd()}
	if len(statements) == 0 {
		span.End = start
	}
	return res.success(ast.WithSpan(ast.NewBlock(statements), span))
}

func (p *Parser) statement() *parseResult {
	res := &parseResult{}
	startTok := p.current

	switch {
	case startTok.IsKeyword("return"):
		p.consume(res)
		value := res.tryRegister(p.expression())
		if value == nil {
			p.reverse(res.toReverse)
		}
		return res.success(ast.WithSpan(ast.NewReturn(value), p.spanFrom(startTok.Start)))
	case startTok.IsKeyword("continue"):
		p.consume(res)
		return res.success(ast.WithSpan(ast.NewContinue(), startTok.Span()))
	case startTok.IsKeyword("break"):
		p.consume(res)
		return res.success(ast.WithSpan(ast.NewBreak(), startTok.Span()))
	}

	expr := res.register(p.expression())
	if res.err != nil {
		return res.failure(syntaxError(p.current, expectedStatement))
	}
	return res.success(expr)
}

func (p *Parser) expression() *parseResult {
	res := &parseResult{}

	if p.current.IsKeyword("let") {
		start := p.current.Start
		p.consume(res)

		if p.current.Kind != lexer.IDENTIFIER {
			return res.failure(syntaxError(p.current, "Expected identifier"))
		}
		name := p.current.Value
		p.consume(res)

		if p.current.Kind != lexer.EQ {
			return res.failure(syntaxError(p.current, "Expected '='"))
		}
		p.consume(res)

		value := res.register(p.expression())
		if res.err != nil {
			return res
		}
		return res.success(ast.WithSpan(ast.NewVarAssign(name, value), p.spanFrom(start)))
	}

	node := res.register(p.binaryOperation(p.comparison, logicalOperators, nil))
	if res.err != nil {
		return res.failure(syntaxError(p.current, expectedExpression))
	}
	return res.success(node)
}

// operatorSet maps token kinds and keywords to the operator they spell.
type operatorSet struct {
	kinds    map[lexer.Kind]ast.Operator
	keywords map[string]ast.Operator
}

func (s operatorSet) match(tok lexer.Token) (ast.Operator, bool) {
	if tok.Kind == lexer.KEYWORD {
		op, ok := s.keywords[tok.Value]
		return op, ok
	}
	op, ok := s.kinds[tok.Kind]
	return op, ok
}

var (
	logicalOperators = operatorSet{keywords: map[string]ast.Operator{
		"and": ast.OpAnd,
		"or":  ast.OpOr,
	}}
	comparisonOperators = operatorSet{kinds: map[lexer.Kind]ast.Operator{
		lexer.EE:  ast.OpEqual,
		lexer.NE:  ast.OpNotEqual,
		lexer.LT:  ast.OpLess,
		lexer.GT:  ast.OpGreater,
		lexer.LTE: ast.OpLessEq,
		lexer.GTE: ast.OpGreaterEq,
	}}
	additiveOperators = operatorSet{kinds: map[lexer.Kind]ast.Operator{
		lexer.PLUS:  ast.OpAdd,
		lexer.MINUS: ast.OpSubtract,
	}}
	multiplicativeOperators = operatorSet{kinds: map[lexer.Kind]ast.Operator{
		lexer.MUL: ast.OpMultiply,
		lexer.DIV: ast.OpDivide,
	}}
	powerOperators = operatorSet{kinds: map[lexer.Kind]ast.Operator{
		lexer.POW: ast.OpPower,
	}}
)

// binaryOperation left-folds `left (op right)*` into BinaryOp nodes. right
// defaults to left; the power rule passes the unary rule instead, which makes
// `^` right-associative and lets its operand carry a sign.
func (p *Parser) binaryOperation(left func() *parseResult, ops operatorSet, right func() *parseResult) *parseResult {
	if right == nil {
		right = left
	}
	res := &parseResult{}
	lhs := res.register(left())
	if res.err != nil {
		return res
	}

	for {
		op, ok := ops.match(p.current)
		if !ok {
			break
		}
		p.consume(res)
		rhs := res.register(right())
		if res.err != nil {
			return res
		}
		lhs = ast.WithSpan(ast.NewBinaryOp(lhs, op, rhs), ast.Cover(lhs.Span(), rhs.Span()))
	}
	return res.success(lhs)
}

// Package lexer turns source text into the token stream consumed by the parser.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
)

// Lexer scans a single source unit left to right without backtracking.
type Lexer struct {
	text string
	pos  ast.Position
	ch   byte
	done bool
}

// New prepares a lexer over text; source names the unit in diagnostics.
func New(source, text string) *Lexer {
	l := &Lexer{text: text, pos: ast.StartOf(source, text)}
	l.load()
	return l
}

// Tokenize is a convenience wrapper around New(...).Tokenize().
func Tokenize(source, text string) ([]Token, error) {
	return New(source, text).Tokenize()
}

func (l *Lexer) load() {
	if l.pos.Offset >= len(l.text) {
		l.ch = 0
		l.done = true
		return
	}
	l.ch = l.text[l.pos.Offset]
}

func (l *Lexer) advance() {
	if l.done {
		return
	}
	l.pos = l.pos.Advance(l.ch)
	l.load()
}

// Tokenize consumes the whole input. On success the slice ends with exactly
// one EOF token; on failure it returns a *diagnostics.Error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for !l.done {
		switch ch := l.ch; {
		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()
		case ch == '#':
			l.skipComment()
		case ch == '\n' || ch == ';':
			tokens = append(tokens, l.single(NEWLINE))
		case isDigit(ch):
			tokens = append(tokens, l.number())
		case isLetter(ch):
			tokens = append(tokens, l.identifier())
		case ch == '"':
			tok, err := l.str()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case ch == '+':
			tokens = append(tokens, l.single(PLUS))
		case ch == '-':
			tokens = append(tokens, l.twoChar(MINUS, '>', ARROW))
		case ch == '*':
			tokens = append(tokens, l.single(MUL))
		case ch == '/':
			tokens = append(tokens, l.single(DIV))
		case ch == '^':
			tokens = append(tokens, l.single(POW))
		case ch == '(':
			tokens = append(tokens, l.single(LPAREN))
		case ch == ')':
			tokens = append(tokens, l.single(RPAREN))
		case ch == '[':
			tokens = append(tokens, l.single(LSQUARE))
		case ch == ']':
			tokens = append(tokens, l.single(RSQUARE))
		case ch == ',':
			tokens = append(tokens, l.single(COMMA))
		case ch == '!':
			tok, err := l.notEquals()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case ch == '=':
			tokens = append(tokens, l.twoChar(EQ, '=', EE))
		case ch == '<':
			tokens = append(tokens, l.twoChar(LT, '=', LTE))
		case ch == '>':
			tokens = append(tokens, l.twoChar(GT, '=', GTE))
		default:
			start := l.pos
			r, size := utf8.DecodeRuneInString(l.text[l.pos.Offset:])
			for range size {
				l.advance()
			}
			return nil, diagnostics.Newf(diagnostics.IllegalCharacter, ast.Span{Start: start, End: l.pos}, "'%c'", r)
		}
	}
	eofEnd := l.pos.Advance(0)
	tokens = append(tokens, Token{Kind: EOF, Start: l.pos, End: eofEnd})
	return tokens, nil
}

func (l *Lexer) single(kind Kind) Token {
	start := l.pos
	l.advance()
	return Token{Kind: kind, Start: start, End: l.pos}
}

// twoChar emits long when the character after the current one is next,
// otherwise short.
func (l *Lexer) twoChar(short Kind, next byte, long Kind) Token {
	start := l.pos
	kind := short
	l.advance()
	if !l.done && l.ch == next {
		l.advance()
		kind = long
	}
	return Token{Kind: kind, Start: start, End: l.pos}
}

func (l *Lexer) notEquals() (Token, error) {
	start := l.pos
	l.advance()
	if !l.done && l.ch == '=' {
		l.advance()
		return Token{Kind: NE, Start: start, End: l.pos}, nil
	}
	l.advance()
	return Token{}, diagnostics.New(diagnostics.ExpectedCharacter, ast.Span{Start: start, End: l.pos}, "'=' (after '!')")
}

// number reads digits with at most one '.'; a second '.' ends the literal and
// is left for the next token.
func (l *Lexer) number() Token {
	start := l.pos
	var b strings.Builder
	dots := 0
	for !l.done && (isDigit(l.ch) || l.ch == '.') {
		if l.ch == '.' {
			if dots == 1 {
				break
			}
			dots++
		}
		b.WriteByte(l.ch)
		l.advance()
	}
	literal := b.String()
	kind := INT
	if dots > 0 {
		kind = FLOAT
	}
	value, _ := strconv.ParseFloat(literal, 64)
	return Token{Kind: kind, Value: literal, Number: value, Start: start, End: l.pos}
}

func (l *Lexer) identifier() Token {
	start := l.pos
	var b strings.Builder
	for !l.done && (isLetter(l.ch) || isDigit(l.ch)) {
		b.WriteByte(l.ch)
		l.advance()
	}
	word := b.String()
	kind := IDENTIFIER
	if _, ok := Keywords[word]; ok {
		kind = KEYWORD
	}
	return Token{Kind: kind, Value: word, Start: start, End: l.pos}
}

var escapes = map[byte]byte{
	'n': '\n',
	't': '\t',
}

func (l *Lexer) str() (Token, error) {
	start := l.pos
	var b strings.Builder
	l.advance()
	escaped := false
	for !l.done && (l.ch != '"' || escaped) {
		switch {
		case escaped:
			if repl, ok := escapes[l.ch]; ok {
				b.WriteByte(repl)
			} else {
				b.WriteByte(l.ch)
			}
			escaped = false
		case l.ch == '\\':
			escaped = true
		default:
			b.WriteByte(l.ch)
		}
		l.advance()
	}
	if l.done {
		return Token{}, diagnostics.New(diagnostics.ExpectedCharacter, ast.Span{Start: start, End: l.pos}, "'\"' (to close the string)")
	}
	l.advance()
	return Token{Kind: STRING, Value: b.String(), Start: start, End: l.pos}, nil
}

// skipComment stops before the newline so it still separates statements.
func (l *Lexer) skipComment() {
	for !l.done && l.ch != '\n' {
		l.advance()
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

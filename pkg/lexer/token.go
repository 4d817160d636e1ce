package lexer

import (
	"fmt"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
)

// Kind enumerates the token categories.
type Kind int

const (
	EOF Kind = iota
	NEWLINE
	INT
	FLOAT
	STRING
	IDENTIFIER
	KEYWORD

	PLUS
	MINUS
	MUL
	DIV
	POW
	LPAREN
	RPAREN
	LSQUARE
	RSQUARE
	COMMA
	ARROW

	EQ
	EE
	NE
	LT
	GT
	LTE
	GTE
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	NEWLINE:    "NEWLINE",
	INT:        "INT",
	FLOAT:      "FLOAT",
	STRING:     "STRING",
	IDENTIFIER: "IDENTIFIER",
	KEYWORD:    "KEYWORD",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	MUL:        "MUL",
	DIV:        "DIV",
	POW:        "POW",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LSQUARE:    "LSQUARE",
	RSQUARE:    "RSQUARE",
	COMMA:      "COMMA",
	ARROW:      "ARROW",
	EQ:         "EQ",
	EE:         "EE",
	NE:         "NE",
	LT:         "LT",
	GT:         "GT",
	LTE:        "LTE",
	GTE:        "GTE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_token_%d", int(k))
}

// Keywords is the fixed reserved-word set.
var Keywords = map[string]struct{}{
	"let":      {},
	"and":      {},
	"or":       {},
	"not":      {},
	"if":       {},
	"elif":     {},
	"else":     {},
	"for":      {},
	"to":       {},
	"step":     {},
	"while":    {},
	"then":     {},
	"fn":       {},
	"end":      {},
	"return":   {},
	"continue": {},
	"break":    {},
}

// Token is an immutable lexeme. Value holds the identifier, keyword or string
// text, or the literal spelling of a number; Number holds its parsed value.
type Token struct {
	Kind   Kind
	Value  string
	Number float64
	Start  ast.Position
	End    ast.Position
}

// Span returns the token's source range.
func (t Token) Span() ast.Span {
	return ast.Span{Start: t.Start, End: t.End}
}

// Matches reports whether the token has the given kind and value.
func (t Token) Matches(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Matches(KEYWORD, word)
}

func (t Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%s:%s", t.Kind, t.Value)
	}
	return t.Kind.String()
}

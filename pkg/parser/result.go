package parser

import (
	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/lexer"
)

// parseResult is what every grammar rule returns: a node or an error, plus
// the number of tokens the rule consumed. The counts drive two things: an
// error recorded by a rule that already made progress is never replaced by a
// later, less specific one, and a failed speculative attempt knows how far to
// rewind.
type parseResult struct {
	node ast.Node
	err  *diagnostics.Error

	lastAdvance int
	advances    int
	toReverse   int
}

func (r *parseResult) registerAdvancement() {
	r.lastAdvance = 1
	r.advances++
}

func (r *parseResult) register(sub *parseResult) ast.Node {
	r.lastAdvance = sub.advances
	r.advances += sub.advances
	if sub.err != nil {
		r.err = sub.err
	}
	return sub.node
}

// tryRegister registers sub only when it succeeded. On failure it records
// how many tokens sub consumed so the caller can rewind.
func (r *parseResult) tryRegister(sub *parseResult) ast.Node {
	if sub.err != nil {
		r.toReverse = sub.advances
		return nil
	}
	return r.register(sub)
}

func (r *parseResult) success(node ast.Node) *parseResult {
	r.node = node
	return r
}

// failure keeps an earlier error unless the most recent sub-rule consumed
// nothing, so the furthest-progress diagnostic wins.
func (r *parseResult) failure(err *diagnostics.Error) *parseResult {
	if r.err == nil || r.lastAdvance == 0 {
		r.err = err
	}
	return r
}

func syntaxError(tok lexer.Token, message string) *diagnostics.Error {
	return diagnostics.New(diagnostics.InvalidSyntax, tok.Span(), message)
}

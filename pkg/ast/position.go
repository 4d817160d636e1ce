package ast

// Position is an immutable snapshot of a cursor inside a source text.
// Line and Column are 0-based; Offset is a byte offset into Text.
type Position struct {
	Offset int
	Line   int
	Column int
	Source string
	Text   string
}

// StartOf returns the position of the first character of text.
func StartOf(source, text string) Position {
	return Position{Source: source, Text: text}
}

// Advance returns the position one character further along. ch is the
// character being stepped over; stepping over a newline starts a new line.
func (p Position) Advance(ch byte) Position {
	next := p
	next.Offset++
	next.Column++
	if ch == '\n' {
		next.Line++
		next.Column = 0
	}
	return next
}

// Span covers the half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}

package diagnostics

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
)

const continuationMarker = "..."

// Snippet reproduces the source line containing start and underlines the
// span with carets. Spans that cross a line boundary are underlined to the end
// of the first line and followed by a continuation marker. Tabs are dropped so
// the caret line stays aligned.
func Snippet(start, end ast.Position) string {
	text := start.Text
	if text == "" {
		return ""
	}
	startOffset := clamp(start.Offset, 0, len(text))
	lineStart := strings.LastIndexByte(text[:startOffset], '\n') + 1
	lineEnd := len(text)
	if idx := strings.IndexByte(text[lineStart:], '\n'); idx >= 0 {
		lineEnd = lineStart + idx
	}
	line := text[lineStart:lineEnd]

	startCol := clamp(startOffset-lineStart, 0, len(line))
	multiline := end.Line > start.Line
	endCol := len(line)
	if !multiline {
		endCol = clamp(end.Offset-lineStart, startCol, len(line))
	}

	pad := displayWidth(line[:startCol])
	carets := displayWidth(line[startCol:endCol])
	if carets < 1 {
		carets = 1
	}

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(line, "\t", ""))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(strings.Repeat("^", carets))
	if multiline {
		b.WriteString(continuationMarker)
	}
	return b.String()
}

// displayWidth counts terminal cells, treating East Asian wide and fullwidth
// runes as two cells and tabs as none.
func displayWidth(s string) int {
	cells := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r == '\t' {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cells += 2
		default:
			cells++
		}
	}
	return cells
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

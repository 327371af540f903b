package ast

import "github.com/alecthomas/participle/v2/lexer"

// Position represents a location in the source file. It is an alias for
// participle's lexer.Position so that any struct field named Pos of this
// type is populated automatically by the parser, without a grammar tag.
type Position = lexer.Position

// Span represents a range in the source file.
// Used to preserve original source text for formatting (e.g., expressions like "(100 + 50)").
type Span struct {
	Start int // Starting byte offset (inclusive)
	End   int // Ending byte offset (exclusive)
}

// IsZero returns true if this is an uninitialized span.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Text extracts the source text for this span (zero-copy slice).
// Returns empty string if span is invalid or zero.
func (s Span) Text(source []byte) string {
	if s.IsZero() || s.Start < 0 || s.End <= s.Start || s.End > len(source) {
		return ""
	}
	return string(source[s.Start:s.End])
}

package ast

// EscapeType identifies how a quoted string literal was escaped in the source file.
type EscapeType int

const (
	EscapeTypeUnknown EscapeType = iota // not parsed from source (constructed programmatically)
	EscapeTypeNone                      // no escape sequences present
	EscapeTypeCStyle                    // contains C-style escapes (\n, \t, \", \\)
)

// StringMetadata preserves the original quoted source text of a string literal, so the
// formatter can reproduce it byte-for-byte instead of re-escaping the logical value.
type StringMetadata struct {
	Original string // raw content between the quotes, exactly as it appeared in the source
	Escape   EscapeType
}

// HasOriginal reports whether original source text was captured during parsing.
func (m StringMetadata) HasOriginal() bool {
	return m.Escape != EscapeTypeUnknown
}

// QuotedContent returns the original source text wrapped in double quotes.
func (m StringMetadata) QuotedContent() string {
	return `"` + m.Original + `"`
}

// RawString is a free-text value taken from a quoted string literal (payee, narration,
// descriptions, option values, and the like). It carries both the logical value and,
// when available, enough information about the source text to round-trip it exactly.
type RawString struct {
	Value string
	StringMetadata
}

// NewRawString creates a RawString with no original-source metadata.
func NewRawString(value string) RawString {
	return RawString{Value: value}
}

// NewRawStringWithOriginal creates a RawString that also carries its original quoted
// source text, so the formatter can preserve the source's escape style.
func NewRawStringWithOriginal(value, original string, escape EscapeType) RawString {
	return RawString{Value: value, StringMetadata: StringMetadata{Original: original, Escape: escape}}
}

func (r RawString) String() string {
	return r.Value
}

// IsEmpty reports whether this is the zero value (no string was present).
func (r RawString) IsEmpty() bool {
	return r.Value == "" && r.Escape == EscapeTypeUnknown
}

// Capture implements participle's capture interface. The grammar's participle.Unquote("String")
// option has already stripped quotes and resolved escapes by the time this runs, so values[0]
// is the logical string value; the original quoted source text is not recoverable here.
func (r *RawString) Capture(values []string) error {
	*r = RawString{Value: values[0], StringMetadata: StringMetadata{Original: values[0], Escape: EscapeTypeNone}}
	return nil
}

package diag

import (
	"fmt"
	"strconv"
	"strings"
)

// LineColumn is a source position. Lines are 1-based, columns 0-based.
type LineColumn struct {
	Line   int
	Column int
}

// Span is a start/end pair of source positions.
type Span struct {
	Start LineColumn
	End   LineColumn
}

// To returns a span covering s through other.
func (s Span) To(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

// IsZero reports whether s is the default span.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// MarshalText encodes the span as `startLine:startCol-endLine:endCol`.
func (s Span) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Span) UnmarshalText(text []byte) error {
	parsed, err := ParseSpan(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSpan parses the textual span form produced by Span.String.
func ParseSpan(raw string) (Span, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return Span{}, fmt.Errorf("badly formed span %q", raw)
	}
	start, err := parseLineColumn(parts[0])
	if err != nil {
		return Span{}, fmt.Errorf("span %q start: %w", raw, err)
	}
	end, err := parseLineColumn(parts[1])
	if err != nil {
		return Span{}, fmt.Errorf("span %q end: %w", raw, err)
	}
	return Span{Start: start, End: end}, nil
}

func parseLineColumn(raw string) (LineColumn, error) {
	line, col, ok := strings.Cut(raw, ":")
	if !ok {
		return LineColumn{}, fmt.Errorf("missing column in %q", raw)
	}
	l, err := strconv.Atoi(line)
	if err != nil || l < 0 {
		return LineColumn{}, fmt.Errorf("badly formed line number %q", line)
	}
	c, err := strconv.Atoi(col)
	if err != nil || c < 0 {
		return LineColumn{}, fmt.Errorf("badly formed column number %q", col)
	}
	return LineColumn{Line: l, Column: c}, nil
}

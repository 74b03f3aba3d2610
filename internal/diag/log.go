package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes diagnostics for clearer handling and messaging.
type Kind string

const (
	ReadError             Kind = "ReadError"
	UnsupportedConstruct  Kind = "UnsupportedConstruct"
	MalformedAttribute    Kind = "MalformedAttribute"
	UnrenderableConstruct Kind = "UnrenderableConstruct"
	EncodeError           Kind = "EncodeError"
)

// Log is a single diagnostic record.
type Log struct {
	Span    Span
	Kind    Kind
	Message string
}

func (l Log) String() string {
	return fmt.Sprintf("LOG(%d:%d-%d:%d): %s",
		l.Span.Start.Line, l.Span.Start.Column,
		l.Span.End.Line, l.Span.End.Column,
		l.Message)
}

// Logs is an ordered, non-empty list of diagnostics. It is the error type
// returned by every scanning and rendering stage.
type Logs []Log

func (l Logs) Error() string {
	lines := make([]string, 0, len(l))
	for _, x := range l {
		lines = append(lines, x.String())
	}
	return strings.Join(lines, "\n")
}

// Errorf returns a Logs holding one diagnostic.
func Errorf(span Span, kind Kind, format string, args ...any) error {
	return Logs{{Span: span, Kind: kind, Message: fmt.Sprintf(format, args...)}}
}

// From lifts err into Logs. Foreign errors become one entry of the given kind
// with a default span.
func From(err error, kind Kind) Logs {
	if err == nil {
		return nil
	}
	var logs Logs
	if errors.As(err, &logs) {
		return logs
	}
	return Logs{{Kind: kind, Message: err.Error()}}
}

// Collector gathers diagnostics from several fallible steps, preserving order.
type Collector struct {
	logs Logs
}

// Add records err, if any. Foreign errors are recorded as UnsupportedConstruct.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.logs = append(c.logs, From(err, UnsupportedConstruct)...)
}

// Addf records a single diagnostic.
func (c *Collector) Addf(span Span, kind Kind, format string, args ...any) {
	c.logs = append(c.logs, Log{Span: span, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Len returns the number of diagnostics collected so far.
func (c *Collector) Len() int { return len(c.logs) }

// Err returns the collected diagnostics, or nil when there are none.
func (c *Collector) Err() error {
	if len(c.logs) == 0 {
		return nil
	}
	return c.logs
}

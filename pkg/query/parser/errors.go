package parser

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is wrapped by every error raised because the input ended
// in the middle of a production.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

type ErrorKind int

const (
	// KindSyntax covers tokens that cannot be reduced, including the
	// unexpected end of input.
	KindSyntax ErrorKind = iota
	// KindUnknownConnective is a boolean production whose connective is
	// neither "and" nor "or".
	KindUnknownConnective
	// KindUnsupportedValue is a known term given a value outside its
	// supported set.
	KindUnsupportedValue
	// KindBareOperator is a `key:` prefix with no valid argument.
	KindBareOperator
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindUnknownConnective:
		return "unknown connective"
	case KindUnsupportedValue:
		return "unsupported value"
	case KindBareOperator:
		return "bare operator"
	default:
		return "unknown"
	}
}

// Error is the single error type raised while compiling a search string.
type Error struct {
	Kind ErrorKind
	// Query is the complete search string.
	Query string
	// Offset is the byte offset where compilation stopped, -1 when unknown.
	Offset int
	// Remainder is the unconsumed input starting at Offset.
	Remainder string
	// EOF is set when the input ended mid-production.
	EOF bool
	// Term and Value name the offending term for value and operator errors.
	Term  string
	Value string
	// Detail optionally refines the message.
	Detail string
}

func (e *Error) Error() string {
	switch {
	case e.EOF:
		return fmt.Sprintf("syntax error: EOF in search string %q", e.Query)
	case e.Kind == KindUnknownConnective:
		return fmt.Sprintf("syntax error: boolean %q not recognized in search string %q (col %d)",
			e.Value, e.Query, e.Offset)
	case e.Kind == KindUnsupportedValue && e.Detail != "":
		return fmt.Sprintf("syntax error: %s:%s is not supported: %s", e.Term, e.Value, e.Detail)
	case e.Kind == KindUnsupportedValue:
		return fmt.Sprintf("syntax error: %s:%s is not supported", e.Term, e.Value)
	case e.Kind == KindBareOperator:
		return fmt.Sprintf("syntax error: operator %q has no argument in search string %q (col %d)",
			e.Term, e.Query, e.Offset)
	default:
		return fmt.Sprintf("syntax error at %q in search string %q (col %d)", e.Remainder, e.Query, e.Offset)
	}
}

func (e *Error) Unwrap() error {
	if e.EOF {
		return ErrUnexpectedEOF
	}

	return nil
}

func NewSyntaxError(query string, offset int) *Error {
	return &Error{
		Kind:      KindSyntax,
		Query:     query,
		Offset:    offset,
		Remainder: query[offset:],
	}
}

func NewEOFError(query string) *Error {
	return &Error{
		Kind:   KindSyntax,
		Query:  query,
		Offset: len(query),
		EOF:    true,
	}
}

func NewBareOperatorError(query string, operator string, offset int) *Error {
	return &Error{
		Kind:      KindBareOperator,
		Query:     query,
		Offset:    offset,
		Remainder: query[offset:],
		Term:      operator,
	}
}

// NewUnknownConnectiveError and NewUnsupportedValueError are raised by the
// translator, which does not see the source; Compile fills in Query.
func NewUnknownConnectiveError(connective string, offset int) *Error {
	return &Error{
		Kind:   KindUnknownConnective,
		Offset: offset,
		Value:  connective,
	}
}

func NewUnsupportedValueError(term, value string, offset int, detailFormat string, a ...any) *Error {
	detail := ""
	if detailFormat != "" {
		detail = fmt.Sprintf(detailFormat, a...)
	}

	return &Error{
		Kind:   KindUnsupportedValue,
		Offset: offset,
		Term:   term,
		Value:  value,
		Detail: detail,
	}
}

// WithQuery records the search string on an error raised without it and
// fills in the remainder.
func (e *Error) WithQuery(query string) *Error {
	e.Query = query
	if e.Offset >= 0 && e.Offset <= len(query) && e.Remainder == "" {
		e.Remainder = query[e.Offset:]
	}

	return e
}

package redcode

import (
	"fmt"
)

// Position identifies a location in Redcode source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseErrorKind categorizes a syntactic failure in the front end.
type ParseErrorKind int

const (
	ErrSyntax ParseErrorKind = iota
	ErrIncomplete
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// ParseError is returned by the lexer and line parser.
type ParseError struct {
	Pos     Position
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

func NewParseError(pos Position, kind ParseErrorKind, message string) *ParseError {
	return &ParseError{Pos: pos, Kind: kind, Message: message}
}

// EvaluateErrorKind categorizes a semantic failure during expression
// evaluation or resolution.
type EvaluateErrorKind int

const (
	ErrUndefinedLabel EvaluateErrorKind = iota
	ErrDuplicateLabelDefinition
	ErrDivideByZero
	ErrMultipleOrgs
	ErrDuplicateNameDefinition
	ErrDuplicateAuthorDefinition
	ErrDuplicateDateDefinition
	ErrDuplicateVersionDefinition
)

// EvaluateError is returned by the expression evaluator and the semantic
// resolver. Name carries the offending label or field name when relevant.
type EvaluateError struct {
	Kind EvaluateErrorKind
	Name string
}

func (e *EvaluateError) Error() string {
	switch e.Kind {
	case ErrUndefinedLabel:
		return fmt.Sprintf("undefined label: %s", e.Name)
	case ErrDuplicateLabelDefinition:
		return fmt.Sprintf("duplicate label definition: %s", e.Name)
	case ErrDivideByZero:
		return "divide by zero in expression"
	case ErrMultipleOrgs:
		return "multiple ORG statements"
	case ErrDuplicateNameDefinition:
		return "warrior defines name more than once"
	case ErrDuplicateAuthorDefinition:
		return "warrior defines author more than once"
	case ErrDuplicateDateDefinition:
		return "warrior defines date more than once"
	case ErrDuplicateVersionDefinition:
		return "warrior defines version more than once"
	default:
		return "evaluate error"
	}
}

func undefinedLabel(name string) *EvaluateError {
	return &EvaluateError{Kind: ErrUndefinedLabel, Name: name}
}

func duplicateLabel(name string) *EvaluateError {
	return &EvaluateError{Kind: ErrDuplicateLabelDefinition, Name: name}
}

var errDivideByZero = &EvaluateError{Kind: ErrDivideByZero}
var errMultipleOrgs = &EvaluateError{Kind: ErrMultipleOrgs}

package framing

import (
	"errors"
	"fmt"
)

// CompileError is returned by any stage that turns text into a snapshot:
// *LexicalError, *SyntaxError or *AnalysisError.
type CompileError interface {
	error
	compileError()
}

type LexicalError struct {
	Char   rune
	Offset int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("offset %d: invalid symbol '%c'", e.Offset, e.Char)
}

// SyntaxError reports the first token the parser could not accept. Token is
// nil when the input ended early, in which case Index equals the token count.
type SyntaxError struct {
	Token *Token
	Index int
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("premature end of program: %s", e.Msg)
	}

	return fmt.Sprintf("unexpected token \"%s\", ind = %d: %s", e.Token.Value, e.Index, e.Msg)
}

// Premature reports whether the error was caused by running out of tokens.
func (e *SyntaxError) Premature() bool {
	return e.Token == nil
}

type AnalysisError struct {
	Span Span
	Msg  string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("tokens [%d:%d]: analysis failed: %s", e.Span.Start, e.Span.End, e.Msg)
}

// ExecutionError is a runtime failure raised while executing a tree. Err is
// the underlying cause when there is one, such as ErrDivisionByZero.
type ExecutionError struct {
	Span Span
	Msg  string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tokens [%d:%d]: execution failed: %s", e.Span.Start, e.Span.End, e.Msg)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func (*LexicalError) compileError()  {}
func (*SyntaxError) compileError()   {}
func (*AnalysisError) compileError() {}

var ErrDivisionByZero = errors.New("division by zero")

package diagnostics

import (
	"fmt"

	"github.com/funvibe/semcore/internal/token"
)

type ErrorCode string

// Semantic analysis error codes.
const (
	ErrDuplicateDeclaration    ErrorCode = "R001"
	ErrUnresolvedName          ErrorCode = "R002"
	ErrCyclicReference         ErrorCode = "R003"
	ErrTypeMismatch            ErrorCode = "R004"
	ErrInvalidOperator         ErrorCode = "R005"
	ErrInvalidLvalue           ErrorCode = "R006"
	ErrArityMismatch           ErrorCode = "R007"
	ErrMissingFieldInitializer ErrorCode = "R008"
	ErrDoubleBinding           ErrorCode = "R009"
	ErrNotAType                ErrorCode = "R010"
	ErrNotAValue               ErrorCode = "R011"
	ErrOutOfBoundsIndex        ErrorCode = "R012"
	ErrUnimplementedFeature    ErrorCode = "R013"
	ErrInvalidDeclaration      ErrorCode = "R014"
	ErrInvalidContext          ErrorCode = "R015"
	ErrInternal                ErrorCode = "R099"
)

var errorMessages = map[ErrorCode]string{
	ErrDuplicateDeclaration:    "redeclaration of '%s' in the same scope",
	ErrUnresolvedName:          "undeclared name '%s'",
	ErrCyclicReference:         "cyclic reference to '%s'",
	ErrTypeMismatch:            "type mismatch: expected %s, got %s",
	ErrInvalidOperator:         "invalid operator: %s",
	ErrInvalidLvalue:           "invalid assignment target: %s",
	ErrArityMismatch:           "arity mismatch: %s expects %d, got %d",
	ErrMissingFieldInitializer: "missing initializer for field '%s' of '%s'",
	ErrDoubleBinding:           "'%s' is bound more than once",
	ErrNotAType:                "'%s' is not a type",
	ErrNotAValue:               "'%s' is not a value",
	ErrOutOfBoundsIndex:        "index %d out of bounds for %s",
	ErrUnimplementedFeature:    "not implemented: %s",
	ErrInvalidDeclaration:      "invalid declaration: %s",
	ErrInvalidContext:          "%s",
	ErrInternal:                "internal error: %s",
}

// Name returns the taxonomy name of the code.
func (c ErrorCode) Name() string {
	switch c {
	case ErrDuplicateDeclaration:
		return "DuplicateDeclaration"
	case ErrUnresolvedName:
		return "UnresolvedName"
	case ErrCyclicReference:
		return "CyclicReference"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrInvalidOperator:
		return "InvalidOperator"
	case ErrInvalidLvalue:
		return "InvalidLvalue"
	case ErrArityMismatch:
		return "ArityMismatch"
	case ErrMissingFieldInitializer:
		return "MissingFieldInitializer"
	case ErrDoubleBinding:
		return "DoubleBinding"
	case ErrNotAType:
		return "NotAType"
	case ErrNotAValue:
		return "NotAValue"
	case ErrOutOfBoundsIndex:
		return "OutOfBoundsIndex"
	case ErrUnimplementedFeature:
		return "UnimplementedFeature"
	case ErrInvalidDeclaration:
		return "InvalidDeclaration"
	case ErrInvalidContext:
		return "InvalidContext"
	case ErrInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// DiagnosticError is a single positioned semantic error.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: error [%s]: %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: error [%s]: %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// NewError formats the message template of code with args.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	template, ok := errorMessages[code]
	if !ok {
		template = "%v"
	}
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(template, args...),
	}
}

// Errorf builds a diagnostic with a free-form message.
func Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}

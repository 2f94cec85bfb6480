package symbols

import (
	"errors"
	"fmt"
)

type errorKind int

const (
	unknownType errorKind = iota + 1
	unknownVariable
	unknownFunction
	redeclared
)

// Sentinels for errors.Is. A symbolError matches the sentinel of its kind
// regardless of the name it carries.
var (
	ErrUnknownType     = symbolError{kind: unknownType}
	ErrUnknownVariable = symbolError{kind: unknownVariable}
	ErrUnknownFunction = symbolError{kind: unknownFunction}
	ErrRedeclared      = symbolError{kind: redeclared}
)

type symbolError struct {
	kind errorKind
	msg  string
}

func newSymbolError(kind errorKind, msg string) symbolError {
	return symbolError{kind: kind, msg: msg}
}

func newSymbolErrorF(kind errorKind, format string, args ...any) symbolError {
	return newSymbolError(kind, fmt.Sprintf(format, args...))
}

func (se symbolError) Error() string {
	if se.msg == "" {
		return fmt.Sprintf("symbol error: %s", se.kind)
	}
	return fmt.Sprintf("symbol error: %s", se.msg)
}

func (se symbolError) Is(target error) bool {
	var other symbolError
	if !errors.As(target, &other) {
		return false
	}
	if other.kind != se.kind {
		return false
	}
	return other.msg == "" || other.msg == se.msg
}

func (k errorKind) String() string {
	switch k {
	case unknownType:
		return "unknown type"
	case unknownVariable:
		return "unknown variable"
	case unknownFunction:
		return "unknown function"
	case redeclared:
		return "redeclared"
	default:
		return "unknown"
	}
}

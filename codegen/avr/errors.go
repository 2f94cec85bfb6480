package avr

import (
	"fmt"

	"github.com/pkg/errors"
)

type errorKind int

const (
	kindResolution errorKind = iota + 1
	kindRegisterExhausted
	kindUnsupportedBinaryOperation
	kindUnsupported
	kindFrameOverflow
)

// Sentinels for errors.Is, one per kind of generation failure.
var (
	// ErrResolution is reported for unknown types, variables and functions.
	ErrResolution = &genError{kind: kindResolution}
	// ErrRegisterExhausted is reported when a value cannot be placed.
	ErrRegisterExhausted = &genError{kind: kindRegisterExhausted}
	// ErrUnsupportedBinaryOperation is reported for recognized operators
	// without code generation.
	ErrUnsupportedBinaryOperation = &genError{kind: kindUnsupportedBinaryOperation}
	// ErrUnsupported is reported for declarations, statements and
	// expressions outside of the supported subset.
	ErrUnsupported = &genError{kind: kindUnsupported}
	// ErrFrameOverflow is reported when a local is out of reach of
	// the displaced addressing mode.
	ErrFrameOverflow = &genError{kind: kindFrameOverflow}
)

type genError struct {
	kind  errorKind
	msg   string
	cause error
}

func newError(kind errorKind, format string, args ...any) error {
	return errors.WithStack(&genError{kind: kind, msg: fmt.Sprintf(format, args...)})
}

// resolutionError wraps a symbol error so that it matches both
// ErrResolution and the sentinel of the symbols package.
func resolutionError(cause error) error {
	return errors.WithStack(&genError{kind: kindResolution, msg: cause.Error(), cause: cause})
}

func (e *genError) Error() string {
	if e.msg == "" {
		return e.kind.String()
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *genError) Unwrap() error {
	return e.cause
}

func (e *genError) Is(target error) bool {
	other, ok := target.(*genError)
	if !ok {
		return false
	}
	return other.kind == e.kind && other.msg == ""
}

func (k errorKind) String() string {
	switch k {
	case kindResolution:
		return "resolution error"
	case kindRegisterExhausted:
		return "ran out of registers"
	case kindUnsupportedBinaryOperation:
		return "unsupported binary operation"
	case kindUnsupported:
		return "unsupported"
	case kindFrameOverflow:
		return "frame overflow"
	default:
		return "code generation error"
	}
}

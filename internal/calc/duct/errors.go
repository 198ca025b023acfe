package duct

import "fmt"

// ErrorKind separates bad input from inputs that drive a formula into a
// division by zero or a non-finite result.
type ErrorKind int

const (
	InputValidation ErrorKind = iota + 1
	ArithmeticDegeneracy
)

func (k ErrorKind) String() string {
	switch k {
	case InputValidation:
		return "input validation"
	case ArithmeticDegeneracy:
		return "arithmetic degeneracy"
	default:
		return "unknown"
	}
}

// ValidationError is the only error the engine returns. Msg names the
// violated precondition and is shown to the user as-is.
type ValidationError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalidInput(format string, args ...any) error {
	return &ValidationError{Kind: InputValidation, Msg: fmt.Sprintf(format, args...)}
}

func degenerate(format string, args ...any) error {
	return &ValidationError{Kind: ArithmeticDegeneracy, Msg: fmt.Sprintf(format, args...)}
}

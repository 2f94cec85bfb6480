package avr

import (
	"github.com/utcq/soel/symbols"
)

// environment holds the state of the function being generated.
// Every function declaration uses a new environment, therefore
// locals can only be found within the function declaring them.
type environment struct {
	function *symbols.Function
	frame    *symbols.Frame

	// index of the first prologue instruction within the function label
	prologueAt int
	// set once a return statement was generated
	returned bool
}

func newEnvironment(fn *symbols.Function) *environment {
	return &environment{
		function: fn,
		frame:    symbols.NewFrame(),
	}
}

// declare registers a variable of the named type at the current stack offset.
func (e *environment) declare(name, typeName string) (symbols.Variable, error) {
	size, err := symbols.SizeOf(typeName)
	if err != nil {
		return symbols.Variable{}, resolutionError(err)
	}

	v := e.frame.Declare(name, size)
	if v.Last() > maxDisplacement {
		return symbols.Variable{}, newError(
			kindFrameOverflow,
			"'%s' at Y+%d exceeds the displacement limit of %d",
			name, v.Last(), maxDisplacement,
		)
	}
	return v, nil
}

// lookup returns the variable with the supplied name.
func (e *environment) lookup(name string) (symbols.Variable, error) {
	v, err := e.frame.Lookup(name)
	if err != nil {
		return symbols.Variable{}, resolutionError(err)
	}
	return v, nil
}

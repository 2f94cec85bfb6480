package symbols

// Variable is a stack allocated value of a function.
// It occupies the frame cells Offset+1 through Offset+Size,
// relative to the frame pointer.
type Variable struct {
	Name   string
	Size   int
	Offset int
}

// First returns the displacement of the variable's lowest byte.
func (v Variable) First() int {
	return v.Offset + 1
}

// Last returns the displacement of the variable's highest byte.
func (v Variable) Last() int {
	return v.Offset + v.Size
}

// Frame is the local variable table of one function. Offsets grow
// monotonically and are never reused. Shadowing is not supported,
// a lookup resolves to the first variable declared with the name.
type Frame struct {
	variables []Variable
	index     map[string]int
	offset    int
}

func NewFrame() *Frame {
	return &Frame{index: make(map[string]int)}
}

// Declare allocates size bytes at the current offset.
func (f *Frame) Declare(name string, size int) Variable {
	v := Variable{Name: name, Size: size, Offset: f.offset}
	if _, exists := f.index[name]; !exists {
		f.index[name] = len(f.variables)
	}
	f.variables = append(f.variables, v)
	f.offset += size
	return v
}

// Lookup returns the variable with the supplied name.
func (f *Frame) Lookup(name string) (Variable, error) {
	idx, ok := f.index[name]
	if !ok {
		return Variable{}, newSymbolErrorF(unknownVariable, "could not resolve variable '%s'", name)
	}
	return f.variables[idx], nil
}

// Size is the number of bytes allocated so far.
func (f *Frame) Size() int {
	return f.offset
}

// Variables returns all variables in declaration order.
func (f *Frame) Variables() []Variable {
	return f.variables
}

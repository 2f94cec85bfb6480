package symbols

// Function is the signature of a generated function.
type Function struct {
	Name       string
	Result     string
	Parameters []string
	// Label identifies the label the function's code is emitted under.
	Label int
}

// FunctionTable holds every function of a compilation unit in
// declaration order. Entries are never modified once declared.
type FunctionTable struct {
	functions []*Function
	index     map[string]*Function
}

func NewFunctionTable() *FunctionTable {
	return &FunctionTable{index: make(map[string]*Function)}
}

// Declare registers fn. Function names are unique within a table.
func (t *FunctionTable) Declare(fn Function) (*Function, error) {
	if _, exists := t.index[fn.Name]; exists {
		return nil, newSymbolErrorF(redeclared, "function '%s' redeclared", fn.Name)
	}
	entry := &fn
	t.functions = append(t.functions, entry)
	t.index[fn.Name] = entry
	return entry, nil
}

// Lookup resolves a function by exact name.
func (t *FunctionTable) Lookup(name string) (*Function, error) {
	fn, ok := t.index[name]
	if !ok {
		return nil, newSymbolErrorF(unknownFunction, "could not resolve function '%s'", name)
	}
	return fn, nil
}

// All returns the declared functions in declaration order.
func (t *FunctionTable) All() []*Function {
	return t.functions
}

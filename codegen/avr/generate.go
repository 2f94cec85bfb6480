package avr

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/utcq/soel/ast"
	"github.com/utcq/soel/pkg/ext"
	"github.com/utcq/soel/symbols"
)

type GeneratorOptions func(*Generator)

// WithTrace writes a trace of the generated nodes to out.
func WithTrace(out io.Writer) GeneratorOptions {
	return func(g *Generator) {
		g.tracer = newTracer(out)
	}
}

// WithGlobals exports additional symbols next to main.
func WithGlobals(names ...string) GeneratorOptions {
	return func(g *Generator) {
		g.globals = append(g.globals, names...)
	}
}

// Unit is the outcome of compiling an [*ast.File].
type Unit struct {
	Program   *Program
	Functions *symbols.FunctionTable
	// Frames maps every generated function to its local variables.
	Frames map[string]*symbols.Frame
	// Warnings lists calls which do not match the callee's signature.
	Warnings []string
}

func (u *Unit) String() string {
	return u.Program.String()
}

// Generate compiles file and writes the assembly to out.
// Nothing is written if compilation fails.
func Generate(file *ast.File, out io.Writer, opts ...GeneratorOptions) error {
	unit, err := Compile(file, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, unit.String())
	return err
}

// Compile generates the program for file. Generation stops at the
// first error, the returned Unit then holds the partial output and
// must not be used as a compiled artifact.
func Compile(file *ast.File, opts ...GeneratorOptions) (*Unit, error) {
	program := NewProgram()

	g := &Generator{
		asm:       newAVRWriter(program),
		program:   program,
		functions: symbols.NewFunctionTable(),
		frames:    make(map[string]*symbols.Frame),
		registers: newRegisterPool(),
		tracer:    dummyTracer{},
		globals:   []string{"main"},
	}

	for _, opt := range opts {
		opt(g)
	}

	var genErr error
	if err := ext.CatchPanic(func() { genErr = g.exec(file) }); err != nil {
		genErr = errors.Wrap(err, "internal code generator error")
	}

	unit := &Unit{
		Program:   program,
		Functions: g.functions,
		Frames:    g.frames,
		Warnings:  g.warnings,
	}
	return unit, genErr
}

type Generator struct {
	asm     pseudoASM
	program *Program
	tracer  trace

	globals  []string
	warnings []string

	// sections of the program
	data, text SectionID

	functions *symbols.FunctionTable
	frames    map[string]*symbols.Frame

	// env of the function being generated
	env *environment

	registers *RegisterPool
}

func (g *Generator) exec(file *ast.File) error {
	for _, name := range g.globals {
		g.program.NewGlobal(name)
	}

	g.data = g.program.CreateSection(".data")
	g.text = g.program.CreateSection(".text")
	g.asm.SelectSection(g.text)

	if err := g.declareFunctions(file); err != nil {
		return err
	}
	g.checkCalls(file)

	for _, declaration := range file.Declarations {
		switch d := declaration.(type) {
		case *ast.FuncDeclaration:
			if err := g.fnDeclaration(d); err != nil {
				return errors.Wrapf(err, "function '%s'", d.Name())
			}
		default:
			return newError(kindUnsupported, "top-level declaration %T '%s'", declaration, declaration.Name())
		}
	}

	return nil
}

// declareFunctions registers the signature and label of every function
// before any body is generated, so a function can be called by another
// function even if it is declared after the calling function.
func (g *Generator) declareFunctions(file *ast.File) error {
	for _, declaration := range file.Declarations {
		d, ok := declaration.(*ast.FuncDeclaration)
		if !ok {
			continue
		}

		fn, err := g.functions.Declare(symbols.Function{
			Name:       d.Name(),
			Result:     d.Result,
			Parameters: d.ParameterTypes(),
		})
		if err != nil {
			return resolutionError(err)
		}
		fn.Label = int(g.asm.CreateLabel(fn.Name))
	}
	return nil
}

// checkCalls warns about every call, at any depth, whose argument count
// differs from the parameters of the callee. Such calls are generated
// anyway, unknown callees are reported during generation.
func (g *Generator) checkCalls(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return n != nil
		}

		fn, err := g.functions.Lookup(call.Function.Name)
		if err != nil {
			return true
		}
		if len(call.Arguments) != len(fn.Parameters) {
			msg := fmt.Sprintf(
				"call %s passes %d arguments, %s declares %d parameters",
				call, len(call.Arguments), fn.Name, len(fn.Parameters),
			)
			glog.Warning(msg)
			g.warnings = append(g.warnings, msg)
		}
		return true
	})
}

// fnDeclaration generates a function. The stack frame has the
// following layout:
//
// HI	+---------------------------+
//	| return address		|
//	+---------------------------+
//	| saved Y (R28, R29)		|
//	+---------------------------+
//	| ...params			| Y+1 upwards, in declaration order
//	+---------------------------+
//	| ...locals			|
// LO	+---------------------------+ <- Y = SP
func (g *Generator) fnDeclaration(declaration *ast.FuncDeclaration) error {
	g.tracer.pre(declaration)
	defer g.tracer.post(declaration)

	fn, err := g.functions.Lookup(declaration.Name())
	if err != nil {
		return resolutionError(err)
	}

	glog.V(2).Infof("generating function %s", fn.Name)

	// begin new environment
	g.env = newEnvironment(fn)
	g.frames[fn.Name] = g.env.frame

	g.asm.SelectLabel(LabelID(fn.Label))

	g.env.prologueAt = g.asm.Position()
	g.asm.Prologue()

	if err := g.parameters(declaration.Parameters); err != nil {
		return err
	}

	if declaration.Body != nil {
		for _, statement := range declaration.Body.Statements {
			if err := g.statement(statement); err != nil {
				return err
			}
		}
	}

	frameSize := g.env.frame.Size()

	// discard the frame, each pop moves the stack pointer by one byte
	for i := 0; i < frameSize; i++ {
		g.asm.Pop(tmp)
	}

	// The size of the frame is only known now. The space is reserved
	// after the caller's frame pointer was saved (push R29) and
	// before Y is set to the stack pointer.
	g.asm.ReserveStack(g.env.prologueAt+1, frameSize)

	g.asm.Epilogue()

	glog.V(2).Infof("function %s uses a %d byte frame", fn.Name, frameSize)
	return nil
}

// parameters stores the incoming arguments into the frame. Arguments
// arrive in consecutive registers starting at argumentBase.
func (g *Generator) parameters(params []*ast.Param) error {
	reg := argumentBase
	for _, param := range params {
		v, err := g.env.declare(param.Name(), param.TypeName)
		if err != nil {
			return err
		}

		if int(reg)+v.Size > int(argumentLimit) {
			return newError(
				kindRegisterExhausted,
				"parameter '%s' does not fit the argument registers %s-%s",
				param.Name(), argumentBase, argumentLimit-1,
			)
		}

		for i := 0; i < v.Size; i++ {
			g.asm.StoreDisplaced(Y, v.First()+i, reg.Offset(i))
		}
		reg = reg.Offset(v.Size)
	}
	return nil
}

func (g *Generator) statement(statement ast.Statement) error {
	g.tracer.pre(statement)
	defer g.tracer.post(statement)

	// return emits no ret, a following statement would overwrite the result
	if g.env.returned {
		return newError(kindUnsupported, "statement after return: %s", statement)
	}

	switch s := statement.(type) {
	case *ast.VarDeclaration:
		return g.varDeclaration(s)
	case *ast.ReturnStatement:
		return g.returnStatement(s)
	case *ast.ExpressionStatement:
		// expression statements simply ignore the result of the expression
		result, err := g.expression(s.Expression, true, NoRegister)
		if err != nil {
			return err
		}
		g.registers.Release(result.handle)
		return nil
	default:
		return newError(kindUnsupported, "statement %T: %s", statement, statement)
	}
}

// varDeclaration allocates the variable in the frame, evaluates the
// initialization expression into the primary window and stores it.
func (g *Generator) varDeclaration(declaration *ast.VarDeclaration) error {
	v, err := g.env.declare(declaration.Name(), declaration.TypeName)
	if err != nil {
		return err
	}

	var result value
	if declaration.Value != nil {
		result, err = g.expression(declaration.Value, true, primaryWindow.base)
		if err != nil {
			return err
		}
		if err := g.widen(&result, v.Size); err != nil {
			return err
		}
	} else {
		// no initialization, the variable holds the zero value
		g.registers.Reset()
		result, err = g.destination(primaryWindow.base, v.Size)
		if err != nil {
			return err
		}
		for i := 0; i < v.Size; i++ {
			g.asm.Clear(result.base.Offset(i))
		}
	}

	for i := 0; i < v.Size; i++ {
		g.asm.StoreDisplaced(Y, v.First()+i, result.base.Offset(i))
	}
	g.registers.Release(result.handle)

	return nil
}

// returnStatement evaluates the expression into the primary window,
// which is where callers expect the result.
func (g *Generator) returnStatement(returnStatement *ast.ReturnStatement) error {
	g.env.returned = true

	if returnStatement.Value == nil {
		return nil
	}

	size, err := symbols.SizeOf(g.env.function.Result)
	if err != nil {
		return resolutionError(err)
	}

	result, err := g.expression(returnStatement.Value, true, returnRegister)
	if err != nil {
		return err
	}
	if err := g.widen(&result, size); err != nil {
		return err
	}
	g.registers.Release(result.handle)

	return nil
}

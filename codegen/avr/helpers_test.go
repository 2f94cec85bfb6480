package avr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/utcq/soel/ast"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func num(v int) *ast.NumberLiteral {
	return &ast.NumberLiteral{Value: v}
}

func infix(op string, left, right ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Operator: op, Left: left, Right: right}
}

func call(name string, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Function: ident(name), Arguments: args}
}

func decl(typeName, name string, v ast.Expression) *ast.VarDeclaration {
	return &ast.VarDeclaration{Identifier: ident(name), TypeName: typeName, Value: v}
}

func ret(v ast.Expression) *ast.ReturnStatement {
	return &ast.ReturnStatement{Value: v}
}

func param(typeName, name string) *ast.Param {
	return &ast.Param{Identifier: ident(name), TypeName: typeName}
}

func fn(result, name string, params []*ast.Param, body ...ast.Statement) *ast.FuncDeclaration {
	return &ast.FuncDeclaration{
		Identifier: ident(name),
		Parameters: params,
		Result:     result,
		Body:       &ast.Block{Statements: body},
	}
}

func file(declarations ...ast.Declaration) *ast.File {
	return &ast.File{Declarations: declarations}
}

// compile generates file and fails the test on error.
func compile(t *testing.T, f *ast.File) *Unit {
	t.Helper()
	unit, err := Compile(f)
	require.NoError(t, err)
	return unit
}

// body returns the instructions emitted for the function.
func body(t *testing.T, unit *Unit, name string) []string {
	t.Helper()
	fn, err := unit.Functions.Lookup(name)
	require.NoError(t, err)
	return unit.Program.Instructions(Cursor{Section: 1, Label: LabelID(fn.Label)})
}

// asmLines joins instructions the way they are rendered.
func asmLines(lines ...string) string {
	sb := &strings.Builder{}
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String()
}

func count(instructions []string, prefix string) int {
	n := 0
	for _, i := range instructions {
		if strings.HasPrefix(i, prefix) {
			n++
		}
	}
	return n
}

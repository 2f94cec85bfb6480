package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile() *File {
	return &File{
		Declarations: []Declaration{
			&FuncDeclaration{
				Identifier: &Identifier{Name: "add"},
				Parameters: []*Param{
					{Identifier: &Identifier{Name: "a"}, TypeName: "int"},
					{Identifier: &Identifier{Name: "b"}, TypeName: "int"},
				},
				Result: "int",
				Body: &Block{Statements: []Statement{
					&ReturnStatement{Value: &InfixExpression{
						Operator: OpAdd,
						Left:     &Identifier{Name: "a"},
						Right:    &Identifier{Name: "b"},
					}},
				}},
			},
			&FuncDeclaration{
				Identifier: &Identifier{Name: "main"},
				Result:     "int",
				Body: &Block{Statements: []Statement{
					&VarDeclaration{
						Identifier: &Identifier{Name: "x"},
						TypeName:   "char",
						Value:      &NumberLiteral{Value: 3},
					},
					&ReturnStatement{Value: &CallExpression{
						Function:  &Identifier{Name: "add"},
						Arguments: []Expression{&Identifier{Name: "x"}, &NumberLiteral{Value: 4}},
					}},
				}},
			},
		},
	}
}

func TestInspect_Order(t *testing.T) {
	var visited []string
	Inspect(sampleFile(), func(n Node) bool {
		if n == nil {
			return true
		}
		visited = append(visited, fmt.Sprintf("%T", n))
		return true
	})

	expected := []string{
		"*ast.File",
		"*ast.FuncDeclaration", "*ast.Identifier", "*ast.Param", "*ast.Param",
		"*ast.Block", "*ast.ReturnStatement", "*ast.InfixExpression", "*ast.Identifier", "*ast.Identifier",
		"*ast.FuncDeclaration", "*ast.Identifier",
		"*ast.Block", "*ast.VarDeclaration", "*ast.NumberLiteral",
		"*ast.ReturnStatement", "*ast.CallExpression", "*ast.Identifier", "*ast.Identifier", "*ast.NumberLiteral",
	}
	assert.Equal(t, expected, visited)
}

func TestInspect_SkipChildren(t *testing.T) {
	var funcs []string
	Inspect(sampleFile(), func(n Node) bool {
		if fn, ok := n.(*FuncDeclaration); ok {
			funcs = append(funcs, fn.Name())
			return false
		}
		return true
	})
	assert.Equal(t, []string{"add", "main"}, funcs)
}

func TestInspect_BalancedPostVisits(t *testing.T) {
	depth := 0
	maxDepth := 0
	Inspect(sampleFile(), func(n Node) bool {
		if n == nil {
			depth--
			return true
		}
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	assert.Equal(t, 0, depth)
	assert.Equal(t, 6, maxDepth)
}

func TestWalk_NilNodePanics(t *testing.T) {
	require.Panics(t, func() {
		Inspect(&Block{Statements: []Statement{nil}}, func(Node) bool { return true })
	})
}

func TestFile_String(t *testing.T) {
	expected := "int add(int a, int b) {\nreturn (a + b);\n}\n" +
		"int main() {\nchar x = 3;\nreturn add(x,4);\n}"
	assert.Equal(t, expected, sampleFile().String())
}

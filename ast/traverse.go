package ast

import "fmt"

// This is inspired by the go implementation of AST traversal.
// https://go.dev/src/go/ast/walk.go

type Visitor interface {
	Visit(node Node) Visitor
}

// Inspect traverses the tree depth-first. f is called for every node
// and, once all children of a node were visited, with nil.
// Returning false skips the children of the node.
func Inspect(root Node, f func(Node) bool) {
	Walk(root, inspector(f))
}

type inspector func(Node) bool

func (v inspector) Visit(node Node) Visitor {
	if v(node) {
		return v
	}
	return nil
}

func Walk(root Node, v Visitor) {
	walker{v: v}.walk(root)
}

type walker struct {
	v Visitor
}

func (w walker) walk(n Node) {
	if n == nil {
		panic(fmt.Errorf("walk received nil node"))
	}

	w.v = w.v.Visit(n)
	if w.v == nil {
		return
	}

	switch node := n.(type) {
	case *File:
		for _, d := range node.Declarations {
			w.walk(d)
		}

	// Statements

	case *Assignment:
		w.walk(node.Identifier)
		w.walk(node.Value)

	case *Block:
		for _, stmt := range node.Statements {
			w.walk(stmt)
		}

	case *IfStatement:
		w.walk(node.Condition)
		w.walk(node.Consequence)
		if node.Alternative != nil {
			w.walk(node.Alternative)
		}

	case *WhileStatement:
		w.walk(node.Condition)
		w.walk(node.Body)

	case *ForStatement:
		if node.Init != nil {
			w.walk(node.Init)
		}
		if node.Condition != nil {
			w.walk(node.Condition)
		}
		if node.Step != nil {
			w.walk(node.Step)
		}
		w.walk(node.Body)

	case *ReturnStatement:
		if node.Value != nil {
			w.walk(node.Value)
		}

	case *ExpressionStatement:
		w.walk(node.Expression)

	case *BreakStatement, *ContinueStatement: // leaf

	// Declarations

	case *VarDeclaration:
		if node.Value != nil {
			w.walk(node.Value)
		}

	case *FuncDeclaration:
		w.walk(node.Identifier)
		for _, param := range node.Parameters {
			w.walk(param)
		}
		w.walk(node.Body)

	case *Param: // leaf

	// Expressions

	case *Identifier: // leaf

	case *NumberLiteral: // leaf

	case *PrefixExpression:
		w.walk(node.Right)

	case *InfixExpression:
		w.walk(node.Left)
		w.walk(node.Right)

	case *CallExpression:
		w.walk(node.Function)
		for _, argument := range node.Arguments {
			w.walk(argument)
		}

	case *BlockExpression:
		for _, stmt := range node.Statements {
			w.walk(stmt)
		}

	default:
		panic(fmt.Errorf("unhandled node type in walker: %T", node))
	}

	w.v.Visit(nil)
}

package ast

import (
	"fmt"
	"strings"

	"github.com/utcq/soel/pkg/slices"
)

type Statement interface {
	Node
	// Prevent external implementation
	aStatement()
}

type statement struct{ node }

func (statement) aStatement() {}

type Block struct {
	statement
	Statements []Statement
}

func (b *Block) String() string {
	sb := &strings.Builder{}

	strs := slices.Map(b.Statements, func(s Statement) string {
		return s.String()
	})

	sb.WriteString("{\n")
	sb.WriteString(strings.Join(strs, ";\n"))
	if len(strs) > 0 {
		sb.WriteString(";\n")
	}
	sb.WriteString("}")

	return sb.String()
}

// Assignment to an already declared variable.
type Assignment struct {
	statement
	Identifier *Identifier
	Value      Expression
}

func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Identifier, a.Value)
}

type IfStatement struct {
	statement
	Condition   Expression
	Consequence *Block
	Alternative Statement
}

func (i *IfStatement) String() string {
	str := fmt.Sprintf("if %s %s ", i.Condition, i.Consequence)
	if i.Alternative != nil {
		str += fmt.Sprintf("else %s", i.Alternative)
	}
	return str
}

type WhileStatement struct {
	statement
	Condition Expression
	Body      *Block
}

func (w *WhileStatement) String() string {
	return fmt.Sprintf("while %s %s", w.Condition, w.Body.String())
}

type ForStatement struct {
	statement
	Init      Statement
	Condition Expression
	Step      Statement
	Body      *Block
}

func (f *ForStatement) String() string {
	str := "for "
	if f.Init != nil {
		str += f.Init.String()
	}
	str += "; "
	if f.Condition != nil {
		str += f.Condition.String()
	}
	str += "; "
	if f.Step != nil {
		str += f.Step.String()
	}
	str += " " + f.Body.String()
	return str
}

type ReturnStatement struct {
	statement
	Value Expression
}

func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", r.Value)
}

type BreakStatement struct{ statement }

func (*BreakStatement) String() string { return "break" }

type ContinueStatement struct{ statement }

func (*ContinueStatement) String() string { return "continue" }

// ExpressionStatement evaluates an expression and discards its value.
type ExpressionStatement struct {
	statement
	Expression Expression
}

func (e *ExpressionStatement) String() string {
	return e.Expression.String()
}

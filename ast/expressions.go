package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/utcq/soel/pkg/slices"
)

type Expression interface {
	Node
	aExpression()
}

type expression struct {
	node
}

func (expression) aExpression() {}

// Binary operators understood by InfixExpression.
const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
	OpPow = "**"
)

// Identifier [a-zA-Z][a-zA-Z0-9_]*
type Identifier struct {
	expression
	Name string
}

func (i *Identifier) String() string {
	return i.Name
}

// NumberLiteral is an integer constant as produced by the front end.
type NumberLiteral struct {
	expression
	Value int
}

func (l *NumberLiteral) String() string {
	return strconv.Itoa(l.Value)
}

// InfixExpression = Left Operator Right
type InfixExpression struct {
	expression
	Operator    string
	Left, Right Expression
}

func (ie *InfixExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", ie.Left, ie.Operator, ie.Right)
}

// PrefixExpression = Operator(Right)
type PrefixExpression struct {
	expression
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) String() string {
	return fmt.Sprintf("%s(%s)", pe.Operator, pe.Right)
}

// CallExpression = Function(Arguments...)
type CallExpression struct {
	expression
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) String() string {
	strs := slices.Map(ce.Arguments, func(e Expression) string {
		return e.String()
	})
	return fmt.Sprintf(
		"%s(%s)",
		ce.Function,
		strings.Join(strs, ","),
	)
}

// BlockExpression is a block used in value position.
type BlockExpression struct {
	expression
	Statements []Statement
}

func (be *BlockExpression) String() string {
	return (&Block{Statements: be.Statements}).String()
}

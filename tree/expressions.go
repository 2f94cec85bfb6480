package tree

import (
	"github.com/pkg/errors"

	"github.com/utcq/soel/ast"
)

var binaryOperators = map[string]string{
	"add": ast.OpAdd,
	"sub": ast.OpSub,
	"mul": ast.OpMul,
	"div": ast.OpDiv,
	"pow": ast.OpPow,
}

var expressionKeys = map[string]struct{}{
	"number": {}, "var": {}, "neg": {}, "call": {}, "block": {},
	"add": {}, "sub": {}, "mul": {}, "div": {}, "pow": {},
}

type expressionDoc struct {
	ast.Expression
}

type callDoc struct {
	Name string          `yaml:"name"`
	Args []expressionDoc `yaml:"args"`
}

func (e *expressionDoc) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var node map[string]raw
	if err := unmarshal(&node); err != nil {
		return err
	}

	key, value, err := single("expression", node)
	if err != nil {
		return err
	}

	switch key {
	case "number":
		var v int
		if err := value.decode(&v); err != nil {
			return err
		}
		e.Expression = &ast.NumberLiteral{Value: v}
	case "var":
		var name string
		if err := value.decode(&name); err != nil {
			return err
		}
		if name == "" {
			return errors.Wrap(ErrMalformed, "variable without name")
		}
		e.Expression = &ast.Identifier{Name: name}
	case "add", "sub", "mul", "div", "pow":
		var operands []expressionDoc
		if err := value.decode(&operands); err != nil {
			return err
		}
		if len(operands) != 2 {
			return errors.Wrapf(ErrMalformed, "'%s' takes two operands, got %d", key, len(operands))
		}
		e.Expression = &ast.InfixExpression{
			Operator: binaryOperators[key],
			Left:     operands[0].Expression,
			Right:    operands[1].Expression,
		}
	case "neg":
		var operand expressionDoc
		if err := value.decode(&operand); err != nil {
			return err
		}
		if operand.Expression == nil {
			return errors.Wrap(ErrMalformed, "'neg' without operand")
		}
		e.Expression = &ast.PrefixExpression{Operator: ast.OpSub, Right: operand.Expression}
	case "call":
		var v callDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		call := &ast.CallExpression{Function: &ast.Identifier{Name: v.Name}}
		for _, arg := range v.Args {
			call.Arguments = append(call.Arguments, arg.Expression)
		}
		e.Expression = call
	case "block":
		var v []statementDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		e.Expression = &ast.BlockExpression{Statements: statements(v)}
	default:
		return errors.Wrapf(ErrMalformed, "unknown expression '%s'", key)
	}
	return nil
}

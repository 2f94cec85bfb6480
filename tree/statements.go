package tree

import (
	"github.com/pkg/errors"

	"github.com/utcq/soel/ast"
)

type statementDoc struct {
	ast.Statement
}

func statements(docs []statementDoc) []ast.Statement {
	stmts := make([]ast.Statement, len(docs))
	for i, d := range docs {
		stmts[i] = d.Statement
	}
	return stmts
}

func block(docs []statementDoc) *ast.Block {
	return &ast.Block{Statements: statements(docs)}
}

type assignDoc struct {
	Name  string        `yaml:"name"`
	Value expressionDoc `yaml:"value"`
}

type ifDoc struct {
	Cond expressionDoc  `yaml:"cond"`
	Then []statementDoc `yaml:"then"`
	Else []statementDoc `yaml:"else"`
}

type whileDoc struct {
	Cond expressionDoc  `yaml:"cond"`
	Body []statementDoc `yaml:"body"`
}

type forDoc struct {
	Init *statementDoc  `yaml:"init"`
	Cond *expressionDoc `yaml:"cond"`
	Step *statementDoc  `yaml:"step"`
	Body []statementDoc `yaml:"body"`
}

func (s *statementDoc) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var scalar string
	if err := unmarshal(&scalar); err == nil {
		switch scalar {
		case "break":
			s.Statement = &ast.BreakStatement{}
		case "continue":
			s.Statement = &ast.ContinueStatement{}
		default:
			return errors.Wrapf(ErrMalformed, "unknown statement '%s'", scalar)
		}
		return nil
	}

	var node map[string]raw
	if err := unmarshal(&node); err != nil {
		return err
	}

	key, value, err := single("statement", node)
	if err != nil {
		return err
	}

	switch key {
	case "decl":
		var v varDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		s.Statement = v.declaration()
	case "return":
		var v *expressionDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		r := &ast.ReturnStatement{}
		if v != nil {
			r.Value = v.Expression
		}
		s.Statement = r
	case "expr":
		var v expressionDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		s.Statement = &ast.ExpressionStatement{Expression: v.Expression}
	case "assign":
		var v assignDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		s.Statement = &ast.Assignment{
			Identifier: &ast.Identifier{Name: v.Name},
			Value:      v.Value.Expression,
		}
	case "if":
		var v ifDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		stmt := &ast.IfStatement{Condition: v.Cond.Expression, Consequence: block(v.Then)}
		if v.Else != nil {
			stmt.Alternative = block(v.Else)
		}
		s.Statement = stmt
	case "while":
		var v whileDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		s.Statement = &ast.WhileStatement{Condition: v.Cond.Expression, Body: block(v.Body)}
	case "for":
		var v forDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		stmt := &ast.ForStatement{Body: block(v.Body)}
		if v.Init != nil {
			stmt.Init = v.Init.Statement
		}
		if v.Cond != nil {
			stmt.Condition = v.Cond.Expression
		}
		if v.Step != nil {
			stmt.Step = v.Step.Statement
		}
		s.Statement = stmt
	case "block":
		var v []statementDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		s.Statement = block(v)
	default:
		// a bare expression is an expression statement
		if _, ok := expressionKeys[key]; !ok {
			return errors.Wrapf(ErrMalformed, "unknown statement '%s'", key)
		}
		var v expressionDoc
		if err := unmarshal(&v); err != nil {
			return err
		}
		s.Statement = &ast.ExpressionStatement{Expression: v.Expression}
	}
	return nil
}

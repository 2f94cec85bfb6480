package tree

import (
	"github.com/pkg/errors"

	"github.com/utcq/soel/ast"
)

type declarationDoc struct {
	ast.Declaration
}

type paramDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type functionDoc struct {
	Name    string         `yaml:"name"`
	Returns string         `yaml:"returns"`
	Params  []paramDoc     `yaml:"params"`
	Body    []statementDoc `yaml:"body"`
}

type varDoc struct {
	Name  string         `yaml:"name"`
	Type  string         `yaml:"type"`
	Value *expressionDoc `yaml:"value"`
}

func (v varDoc) declaration() *ast.VarDeclaration {
	d := &ast.VarDeclaration{
		Identifier: &ast.Identifier{Name: v.Name},
		TypeName:   v.Type,
	}
	if v.Value != nil {
		d.Value = v.Value.Expression
	}
	return d
}

func (d *declarationDoc) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var node map[string]raw
	if err := unmarshal(&node); err != nil {
		return err
	}

	key, value, err := single("declaration", node)
	if err != nil {
		return err
	}

	switch key {
	case "function":
		var fn functionDoc
		if err := value.decode(&fn); err != nil {
			return err
		}
		decl := &ast.FuncDeclaration{
			Identifier: &ast.Identifier{Name: fn.Name},
			Result:     fn.Returns,
			Body:       &ast.Block{Statements: statements(fn.Body)},
		}
		for _, p := range fn.Params {
			decl.Parameters = append(decl.Parameters, &ast.Param{
				Identifier: &ast.Identifier{Name: p.Name},
				TypeName:   p.Type,
			})
		}
		d.Declaration = decl
	case "decl":
		var v varDoc
		if err := value.decode(&v); err != nil {
			return err
		}
		d.Declaration = v.declaration()
	default:
		return errors.Wrapf(ErrMalformed, "unknown declaration '%s'", key)
	}
	return nil
}

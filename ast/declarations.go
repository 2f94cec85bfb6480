package ast

import (
	"fmt"
	"strings"

	"github.com/utcq/soel/pkg/slices"
)

type Declaration interface {
	Node
	Name() string
	aDeclaration()
}

type declaration struct{}

func (declaration) aDeclaration() {}

// VarDeclaration = TypeName Name "=" Value
// It appears as a statement inside function bodies. At the
// top level it is a valid tree but not a supported declaration.
type VarDeclaration struct {
	statement
	declaration
	Identifier *Identifier
	TypeName   string
	Value      Expression
}

func (d *VarDeclaration) Name() string {
	return d.Identifier.Name
}

func (d *VarDeclaration) String() string {
	return fmt.Sprintf("%s %s = %s", d.TypeName, d.Identifier, d.Value)
}

// FuncDeclaration = Result Name "(" Parameters ")" Body
type FuncDeclaration struct {
	node
	declaration
	Identifier *Identifier
	Parameters []*Param
	Result     string
	Body       *Block
}

func (d *FuncDeclaration) Name() string {
	return d.Identifier.Name
}

// ParameterTypes returns the type names of the parameters in order.
func (d *FuncDeclaration) ParameterTypes() []string {
	return slices.Map(d.Parameters, func(p *Param) string {
		return p.TypeName
	})
}

func (d *FuncDeclaration) String() string {
	params := slices.Map(d.Parameters, func(p *Param) string {
		return p.String()
	})
	return fmt.Sprintf(
		"%s %s(%s) %s",
		d.Result,
		d.Identifier,
		strings.Join(params, ", "),
		d.Body,
	)
}

type Param struct {
	node
	declaration
	Identifier *Identifier
	TypeName   string
}

func (d *Param) Name() string {
	return d.Identifier.Name
}

func (d *Param) String() string {
	return fmt.Sprintf("%s %s", d.TypeName, d.Identifier)
}

// Package tree decodes tree documents produced by a front end into
// an [*ast.File]. A document is YAML (or JSON) of the form
//
//	declarations:
//	  - function:
//	      name: main
//	      returns: int
//	      params: [{name: a, type: int}]
//	      body:
//	        - decl: {name: x, type: int, value: {number: 10}}
//	        - return: {add: [{var: x}, {var: a}]}
//
// Every node is a mapping with exactly one key naming its kind.
package tree

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/utcq/soel/ast"
)

// ErrMalformed is reported for documents which do not describe a tree.
var ErrMalformed = errors.New("malformed tree")

type document struct {
	Declarations []declarationDoc `yaml:"declarations"`
}

// Decode reads a single tree document from r.
func Decode(r io.Reader) (*ast.File, error) {
	var doc document

	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrMalformed, "empty document")
		}
		return nil, errors.Wrap(err, "decoding tree")
	}

	file := &ast.File{}
	for _, d := range doc.Declarations {
		file.Declarations = append(file.Declarations, d.Declaration)
	}
	return file, nil
}

// raw defers decoding of a node until its kind is known.
type raw struct {
	unmarshal func(interface{}) error
}

func (r *raw) UnmarshalYAML(unmarshal func(interface{}) error) error {
	r.unmarshal = unmarshal
	return nil
}

// decode stores the node into v. Null nodes leave v untouched.
func (r raw) decode(v interface{}) error {
	if r.unmarshal == nil {
		return nil
	}
	return r.unmarshal(v)
}

// single returns the only entry of a node.
func single(kind string, node map[string]raw) (string, raw, error) {
	if len(node) != 1 {
		return "", raw{}, errors.Wrapf(ErrMalformed, "%s must have exactly one key, got %d", kind, len(node))
	}
	for k, v := range node {
		return k, v, nil
	}
	panic("unreachable")
}

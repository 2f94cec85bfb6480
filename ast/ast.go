package ast

import (
	"fmt"
	"strings"
)

// Node is implemented by every element of the tree.
// The set of nodes is closed, consumers dispatch over
// the concrete types with a type switch.
type Node interface {
	String() string

	// prevent external implementations
	aNode()
}

type node struct{}

func (*node) aNode() {}

// File is the root of a compilation unit and holds the
// top-level declarations in source order.
type File struct {
	node
	Declarations []Declaration
}

func (file *File) String() string {
	str := make([]string, len(file.Declarations))
	for i, d := range file.Declarations {
		str[i] = d.(fmt.Stringer).String()
	}
	return strings.Join(str, "\n")
}

package avr

import (
	"fmt"
	"io"
	"strings"

	"github.com/utcq/soel/ast"
	"github.com/utcq/soel/pkg/ext"
)

type trace interface {
	pre(ast.Node)
	post(ast.Node)
	info(string)
}

type tracer struct {
	nodes ext.Stack[string]
	out   io.Writer
}

func newTracer(out io.Writer) *tracer {
	return &tracer{out: out}
}

func (t *tracer) pre(node ast.Node) {
	t.nodes.Push(fmt.Sprintf("%T", node))
	_, _ = fmt.Fprintf(t.out, "%s> %s\n", strings.Repeat(" ", len(t.nodes)), t.nodes.Top())
}

func (t *tracer) post(node ast.Node) {
	name := fmt.Sprintf("%T", node)
	if top := t.nodes.Top(); top != name {
		panic(fmt.Errorf("trace closed %s while %s is open", name, top))
	}
	_, _ = fmt.Fprintf(t.out, "%s< %s\n", strings.Repeat(" ", len(t.nodes)), name)
	t.nodes.Pop()
}

func (t *tracer) info(msg string) {
	_, _ = fmt.Fprintf(t.out, "%s  %s\n", strings.Repeat(" ", len(t.nodes)), msg)
}

type dummyTracer struct{}

func (d dummyTracer) pre(node ast.Node) {}

func (d dummyTracer) post(node ast.Node) {}

func (d dummyTracer) info(_ string) {}

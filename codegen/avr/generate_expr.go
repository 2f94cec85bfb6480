package avr

import (
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/utcq/soel/ast"
	"github.com/utcq/soel/symbols"
)

// value is the outcome of an expression: width consecutive registers
// starting at base, low byte first.
type value struct {
	base   Register
	width  int
	handle Handle
}

// expression generates code computing expr. A root expression starts
// with all windows free. A target other than NoRegister forces the
// value into the registers starting at target.
func (g *Generator) expression(expr ast.Expression, root bool, target Register) (value, error) {
	g.tracer.pre(expr)
	defer g.tracer.post(expr)

	if root {
		g.registers.Reset()
	}

	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return g.numberLiteral(e, target)
	case *ast.Identifier:
		return g.identifier(e, target)
	case *ast.InfixExpression:
		return g.infixExpression(e, target)
	case *ast.PrefixExpression:
		return g.prefixExpression(e, target)
	case *ast.CallExpression:
		return g.callExpression(e, target)
	default:
		return value{}, newError(kindUnsupported, "expression %T: %s", expr, expr)
	}
}

// destination picks the registers of a width byte value.
func (g *Generator) destination(target Register, width int) (value, error) {
	if target == NoRegister {
		h, err := g.registers.Acquire(width)
		if err != nil {
			return value{}, err
		}
		return value{base: windows[h].base, width: width, handle: h}, nil
	}

	h, err := g.registers.Claim(target, width)
	if err != nil {
		return value{}, err
	}
	return value{base: target, width: width, handle: h}, nil
}

// place moves v to target unless it is already there.
func (g *Generator) place(v value, target Register) (value, error) {
	if target == NoRegister || target == v.base {
		return v, nil
	}

	g.registers.Release(v.handle)
	dst, err := g.destination(target, v.width)
	if err != nil {
		return value{}, err
	}

	glog.V(5).Infof("moving %d byte value from %s to %s", v.width, v.base, dst.base)

	// copy from the far end when moving upwards so overlapping
	// registers are read before they are overwritten
	if dst.base > v.base {
		for i := v.width - 1; i >= 0; i-- {
			g.asm.Move(dst.base.Offset(i), v.base.Offset(i))
		}
	} else {
		for i := 0; i < v.width; i++ {
			g.asm.Move(dst.base.Offset(i), v.base.Offset(i))
		}
	}
	return dst, nil
}

// widen sign extends v in place to width bytes.
func (g *Generator) widen(v *value, width int) error {
	if v.width >= width {
		return nil
	}

	capacity := int(R31) - int(v.base) + 1
	if v.handle != noHandle {
		capacity = windows[v.handle].size
	}
	if width > capacity {
		return newError(
			kindRegisterExhausted,
			"cannot widen the value in %s to %d bytes", v.base, width,
		)
	}

	glog.V(5).Infof("sign extending %s from %d to %d bytes", v.base, v.width, width)

	// the new bytes are all ones if the sign bit of the highest byte is set
	high := v.base.Offset(v.width - 1)
	ext := v.base.Offset(v.width)
	g.asm.Clear(ext)
	g.asm.SkipIfBitClear(high, 7)
	g.asm.Complement(ext)
	for i := v.width + 1; i < width; i++ {
		g.asm.Move(v.base.Offset(i), ext)
	}

	v.width = width
	g.registers.Resize(v.handle, width)
	return nil
}

// numberLiteral loads the 16 bit pattern of the literal, low byte first.
func (g *Generator) numberLiteral(lit *ast.NumberLiteral, target Register) (value, error) {
	// values are sign extended when widened, a literal above MaxInt16
	// would turn negative in a wider context
	if lit.Value < math.MinInt16 || lit.Value > math.MaxInt16 {
		return value{}, newError(kindUnsupported, "literal %d is not a signed 16 bit value", lit.Value)
	}

	dst, err := g.destination(target, 2)
	if err != nil {
		return value{}, err
	}

	glog.V(5).Infof("loading constant %d into %s", lit.Value, dst.base)

	g.asm.LoadImmediate(dst.base, lit.Value&0xff)
	g.asm.LoadImmediate(dst.base.Offset(1), (lit.Value>>8)&0xff)
	return dst, nil
}

func (g *Generator) identifier(ident *ast.Identifier, target Register) (value, error) {
	v, err := g.env.lookup(ident.Name)
	if err != nil {
		return value{}, err
	}

	dst, err := g.destination(target, v.Size)
	if err != nil {
		return value{}, err
	}

	glog.V(5).Infof("loading variable %s [Y+%d] into %s", v.Name, v.First(), dst.base)

	for i := 0; i < v.Size; i++ {
		g.asm.LoadDisplaced(dst.base.Offset(i), Y, v.First()+i)
	}
	return dst, nil
}

// infixExpression evaluates left and right into windows chosen by the
// allocator, combines them into the left window and frees the right one.
func (g *Generator) infixExpression(infix *ast.InfixExpression, target Register) (value, error) {
	switch infix.Operator {
	case ast.OpAdd, ast.OpSub:
	default:
		return value{}, newError(kindUnsupportedBinaryOperation, "operator '%s' in %s", infix.Operator, infix)
	}

	left, err := g.expression(infix.Left, false, NoRegister)
	if err != nil {
		return value{}, err
	}
	right, err := g.expression(infix.Right, false, NoRegister)
	if err != nil {
		return value{}, err
	}

	width := max(left.width, right.width)
	if err := g.widen(&left, width); err != nil {
		return value{}, err
	}
	if err := g.widen(&right, width); err != nil {
		return value{}, err
	}

	// the carry chain runs from the low to the high byte
	switch infix.Operator {
	case ast.OpAdd:
		g.asm.Add(left.base, right.base)
		for i := 1; i < width; i++ {
			g.asm.AddWithCarry(left.base.Offset(i), right.base.Offset(i))
		}
	case ast.OpSub:
		g.asm.Sub(left.base, right.base)
		for i := 1; i < width; i++ {
			g.asm.SubWithCarry(left.base.Offset(i), right.base.Offset(i))
		}
	}

	g.tracer.info(fmt.Sprintf("%s %s %s -> %s", left.base, infix.Operator, right.base, left.base))
	g.registers.Release(right.handle)

	return g.place(left, target)
}

// prefixExpression negates the operand using two's complement.
func (g *Generator) prefixExpression(prefix *ast.PrefixExpression, target Register) (value, error) {
	if prefix.Operator != ast.OpSub {
		return value{}, newError(kindUnsupported, "prefix operator '%s' in %s", prefix.Operator, prefix)
	}

	v, err := g.expression(prefix.Right, false, NoRegister)
	if err != nil {
		return value{}, err
	}

	for i := v.width - 1; i >= 1; i-- {
		g.asm.Complement(v.base.Offset(i))
	}
	g.asm.Negate(v.base)
	// subtracting 0xFF with borrow adds the pending one to the inverted bytes
	for i := 1; i < v.width; i++ {
		g.asm.SubImmediateWithCarry(v.base.Offset(i), 0xFF)
	}

	return g.place(v, target)
}

// callExpression generates a call. Arguments are passed in consecutive
// registers starting at argumentBase, the result is returned in the
// primary window. Every register may be clobbered by the callee, live
// windows and pending arguments of an enclosing call are pushed before
// and popped after the call.
func (g *Generator) callExpression(call *ast.CallExpression, target Register) (value, error) {
	fn, err := g.functions.Lookup(call.Function.Name)
	if err != nil {
		return value{}, resolutionError(err)
	}

	size, err := symbols.SizeOf(fn.Result)
	if err != nil {
		return value{}, resolutionError(err)
	}

	saved := g.registers.Suspend()
	preserved := saved.registers()
	for _, r := range preserved {
		g.asm.Push(r)
	}

	reg := argumentBase
	for idx, arg := range call.Arguments {
		if reg >= argumentLimit {
			return value{}, newError(kindRegisterExhausted, "argument %d of %s", idx, fn.Name)
		}

		v, err := g.expression(arg, true, reg)
		if err != nil {
			return value{}, err
		}
		if int(reg)+v.width > int(argumentLimit) {
			return value{}, newError(kindRegisterExhausted, "argument %d of %s", idx, fn.Name)
		}

		v, err = g.place(v, reg)
		if err != nil {
			return value{}, err
		}

		// the next root evaluation must not reuse the argument
		g.registers.Release(v.handle)
		g.registers.Reserve(reg, v.width)

		reg = reg.Offset(v.width)
	}

	g.asm.Call(fn.Name)

	// the arguments are consumed by the callee
	g.registers.Unreserve(argumentBase, int(reg-argumentBase))
	g.registers.Reset()
	g.registers.Restore(saved)

	result, err := g.destination(NoRegister, size)
	if err != nil {
		return value{}, err
	}
	if result.base != returnRegister {
		for i := 0; i < size; i++ {
			g.asm.Move(result.base.Offset(i), returnRegister.Offset(i))
		}
	}

	for i := len(preserved) - 1; i >= 0; i-- {
		g.asm.Pop(preserved[i])
	}

	glog.V(5).Infof("result of %s in %s", fn.Name, result.base)

	return g.place(result, target)
}

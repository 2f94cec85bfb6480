package avr

import "fmt"

// Register identifies one of the 32 one-byte registers of the
// register file or the Y frame pointer pair (R29:R28).
type Register int

const (
	R0 = Register(iota)
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	R16
	R17
	R18
	R19
	R20
	R21
	R22
	R23
	R24
	R25
	R26
	R27
	R28
	R29
	R30
	R31
	// Y is the frame pointer pair used as base of displaced loads and stores.
	Y
)

// NoRegister lets the allocator choose where a value is placed.
const NoRegister = Register(-1)

// Register have alias names to make them easier to use.
const (
	// scratch register, its content is never relied on
	tmp = R0
	// frame pointer, low and high byte
	yl = R28
	yh = R29
)

func (r Register) String() string {
	switch {
	case r == Y:
		return "Y"
	case r == NoRegister:
		return "<none>"
	case r >= R0 && r <= R31:
		return fmt.Sprintf("R%d", int(r))
	default:
		return fmt.Sprintf("Register(%d)", int(r))
	}
}

// Offset returns the register n places after r in file order.
// It is used to address the consecutive bytes of a multi byte value.
// Leaving the register file is a programming error.
func (r Register) Offset(n int) Register {
	if r < R0 || r > R31 || n < 0 || int(r)+n > int(R31) {
		panic(fmt.Errorf("register %s offset by %d leaves the register file", r, n))
	}
	return r + Register(n)
}

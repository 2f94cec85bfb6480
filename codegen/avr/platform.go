package avr

// I/O ports of the hardware stack pointer, low and high byte.
const (
	portSPL = 0x3D
	portSPH = 0x3E
)

// maxDisplacement is the largest offset reachable by ldd/std.
const maxDisplacement = 63

// Arguments are passed in consecutive registers starting at the
// tertiary window, the first register after the last argument
// byte must not exceed argumentLimit.
const (
	argumentBase  = R16
	argumentLimit = R24
)

// returnRegister holds the result of a function on return.
var returnRegister = primaryWindow.base

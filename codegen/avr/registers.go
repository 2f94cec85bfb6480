package avr

import (
	"fmt"
	"strings"

	"github.com/utcq/soel/pkg/slices"
)

type windowMask uint8

// Window is a fixed group of consecutive registers which holds at most
// one value at a time.
type Window struct {
	name string
	base Register
	size int
	mask windowMask
}

func (w Window) Base() Register { return w.base }
func (w Window) Size() int      { return w.size }
func (w Window) String() string { return w.name }

// covers reports whether any of the n registers starting at base is part of w.
func (w Window) covers(base Register, n int) bool {
	return int(base) < int(w.base)+w.size && int(w.base) < int(base)+n
}

// registers returns the mask of the physical registers of w.
func (w Window) registers() uint32 {
	return registerMask(w.base, w.size)
}

// The allocation windows in the order they are handed out.
var (
	primaryWindow   = Window{name: "primary", base: R24, size: 4, mask: 1 << 0}
	secondaryWindow = Window{name: "secondary", base: R18, size: 6, mask: 1 << 1}
	tertiaryWindow  = Window{name: "tertiary", base: R16, size: 2, mask: 1 << 2}

	windows = []Window{primaryWindow, secondaryWindow, tertiaryWindow}
)

// Handle refers to a window claimed from the RegisterPool.
type Handle int

// noHandle is carried by values which live outside a pool window.
const noHandle = Handle(-1)

// RegisterPool hands out the allocation windows and keeps track of
// registers holding call arguments which are not yet consumed.
type RegisterPool struct {
	used     windowMask
	widths   [3]int
	reserved uint32
}

func newRegisterPool() *RegisterPool {
	return &RegisterPool{}
}

// Acquire claims the first free window able to hold width bytes.
func (p *RegisterPool) Acquire(width int) (Handle, error) {
	for idx, w := range windows {
		if p.used&w.mask != 0 || p.reserved&w.registers() != 0 {
			continue
		}
		if width > w.size {
			continue
		}
		p.claim(Handle(idx), width)
		return Handle(idx), nil
	}
	return noHandle, newError(
		kindRegisterExhausted,
		"no free window for a %d byte value (in use: %s)", width, p,
	)
}

// Claim takes the window starting at base, if there is one, for a value
// which is placed there explicitly. Values placed outside of the windows
// get noHandle.
func (p *RegisterPool) Claim(base Register, width int) (Handle, error) {
	if p.reserved&registerMask(base, width) != 0 {
		return noHandle, newError(
			kindRegisterExhausted,
			"%s holds a pending call argument", base,
		)
	}
	for _, w := range windows {
		if p.used&w.mask != 0 && w.covers(base, width) {
			return noHandle, newError(
				kindRegisterExhausted,
				"%s window is already in use", w,
			)
		}
	}
	for idx, w := range windows {
		if w.base == base {
			p.claim(Handle(idx), width)
			return Handle(idx), nil
		}
	}
	return noHandle, nil
}

func (p *RegisterPool) claim(h Handle, width int) {
	p.used |= windows[h].mask
	p.widths[h] = width
}

// Resize records that the value held by h grew to width bytes.
func (p *RegisterPool) Resize(h Handle, width int) {
	if h == noHandle {
		return
	}
	p.mustBeUsed(h)
	p.widths[h] = width
}

// Release returns the window to the pool.
func (p *RegisterPool) Release(h Handle) {
	if h == noHandle {
		return
	}
	p.mustBeUsed(h)
	p.used &^= windows[h].mask
	p.widths[h] = 0
}

func (p *RegisterPool) mustBeUsed(h Handle) {
	if h < 0 || int(h) >= len(windows) {
		panic(fmt.Errorf("bad handle %d", h))
	}
	if p.used&windows[h].mask == 0 {
		panic(fmt.Errorf("bad release call: window '%s' is not in use", windows[h]))
	}
}

// Window returns the window behind h.
func (p *RegisterPool) Window(h Handle) Window {
	return windows[h]
}

// Reset frees every window. Pending call arguments stay reserved.
func (p *RegisterPool) Reset() {
	p.used = 0
	p.widths = [3]int{}
}

// Used reports the mask of the windows in use.
func (p *RegisterPool) Used() windowMask {
	return p.used
}

// InUse reports whether the window behind h holds a value.
func (p *RegisterPool) InUse(h Handle) bool {
	return p.used&windows[h].mask != 0
}

// Reserve marks n registers starting at base as holding a call argument.
func (p *RegisterPool) Reserve(base Register, n int) {
	mask := registerMask(base, n)
	if p.reserved&mask != 0 {
		panic(fmt.Errorf("bad reserve call: %s+%d overlaps a reserved register", base, n))
	}
	p.reserved |= mask
}

// Unreserve releases registers previously reserved with Reserve.
func (p *RegisterPool) Unreserve(base Register, n int) {
	p.reserved &^= registerMask(base, n)
}

// liveValue is a value held by a window.
type liveValue struct {
	handle Handle
	width  int
}

// savedState captures what a call has to preserve on the stack.
type savedState struct {
	values   []liveValue
	reserved uint32
}

// Suspend frees all windows and reservations and returns what was held.
// The caller is responsible for preserving the register contents.
func (p *RegisterPool) Suspend() savedState {
	var s savedState
	for idx, w := range windows {
		if p.used&w.mask != 0 {
			s.values = append(s.values, liveValue{handle: Handle(idx), width: p.widths[idx]})
		}
	}
	s.reserved = p.reserved
	p.Reset()
	p.reserved = 0
	return s
}

// Restore marks the windows and reservations of s as held again.
func (p *RegisterPool) Restore(s savedState) {
	for _, v := range s.values {
		if p.used&windows[v.handle].mask != 0 {
			panic(fmt.Errorf("bad restore call: window '%s' is in use", windows[v.handle]))
		}
		p.claim(v.handle, v.width)
	}
	p.reserved |= s.reserved
}

func (p *RegisterPool) String() string {
	used := slices.Filter(windows, func(w Window) bool {
		return p.used&w.mask != 0
	})
	if len(used) == 0 {
		return "none"
	}
	return strings.Join(slices.Map(used, Window.String), ", ")
}

// registerMask returns a mask with one bit per register in [base, base+n).
func registerMask(base Register, n int) uint32 {
	var mask uint32
	for i := 0; i < n; i++ {
		mask |= 1 << uint(base.Offset(i))
	}
	return mask
}

// registers lists the registers held by s, window values first.
func (s savedState) registers() []Register {
	var regs []Register
	for _, v := range s.values {
		w := windows[v.handle]
		for i := 0; i < v.width; i++ {
			regs = append(regs, w.base.Offset(i))
		}
	}
	for r := R0; r <= R31; r++ {
		if s.reserved&(1<<uint(r)) != 0 {
			regs = append(regs, r)
		}
	}
	return regs
}

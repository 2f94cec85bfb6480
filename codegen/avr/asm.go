package avr

import (
	"fmt"
	"strings"
)

// SectionID refers to a section created by a Program.
type SectionID int

// LabelID refers to a label within a section of a Program.
type LabelID int

// Cursor is a position within a Program where instructions go.
type Cursor struct {
	Section SectionID
	Label   LabelID
}

type label struct {
	name         string
	instructions []string
}

type section struct {
	name   string
	labels []*label
}

// Program is the textual assembly program being built. It holds the
// global symbols and the ordered sections, labels and instructions.
// Handles are only produced by the Program itself, referencing a
// handle it did not hand out is a programming error and panics.
type Program struct {
	globals  []string
	sections []*section
}

func NewProgram() *Program {
	return &Program{}
}

// NewGlobal exports a symbol.
func (p *Program) NewGlobal(name string) {
	p.globals = append(p.globals, name)
}

func (p *Program) CreateSection(name string) SectionID {
	p.sections = append(p.sections, &section{name: name})
	return SectionID(len(p.sections) - 1)
}

// CreateLabel appends a new, empty label to the section.
func (p *Program) CreateLabel(s SectionID, name string) LabelID {
	sec := p.section(s)
	sec.labels = append(sec.labels, &label{name: name})
	return LabelID(len(sec.labels) - 1)
}

// Append adds an instruction to the end of the label at c.
func (p *Program) Append(c Cursor, instruction string) {
	l := p.label(c)
	l.instructions = append(l.instructions, instruction)
}

// Insert places an instruction at index within the label at c,
// shifting the following instructions back.
func (p *Program) Insert(c Cursor, index int, instruction string) {
	l := p.label(c)
	if index < 0 || index > len(l.instructions) {
		panic(fmt.Errorf("instruction index %d out of range [0, %d] in label '%s'", index, len(l.instructions), l.name))
	}
	l.instructions = append(l.instructions, "")
	copy(l.instructions[index+1:], l.instructions[index:])
	l.instructions[index] = instruction
}

// AppendAfter places an instruction right after the one at index.
func (p *Program) AppendAfter(c Cursor, index int, instruction string) {
	p.Insert(c, index+1, instruction)
}

// Instructions returns a copy of the instructions of the label at c.
func (p *Program) Instructions(c Cursor) []string {
	l := p.label(c)
	return append([]string(nil), l.instructions...)
}

// Len reports the number of instructions of the label at c.
func (p *Program) Len(c Cursor) int {
	return len(p.label(c).instructions)
}

// ValidSection panics if s was not created by p.
func (p *Program) ValidSection(s SectionID) {
	p.section(s)
}

// ValidCursor panics if c does not refer to an existing label.
func (p *Program) ValidCursor(c Cursor) {
	p.label(c)
}

func (p *Program) section(s SectionID) *section {
	if s < 0 || int(s) >= len(p.sections) {
		panic(fmt.Errorf("section %d out of range, %d sections exist", s, len(p.sections)))
	}
	return p.sections[s]
}

func (p *Program) label(c Cursor) *label {
	sec := p.section(c.Section)
	if c.Label < 0 || int(c.Label) >= len(sec.labels) {
		panic(fmt.Errorf("label %d out of range, section '%s' has %d labels", c.Label, sec.name, len(sec.labels)))
	}
	return sec.labels[c.Label]
}

// String renders the program as assembly text.
func (p *Program) String() string {
	sb := &strings.Builder{}

	for _, global := range p.globals {
		sb.WriteString(fmt.Sprintf(".global %s\n", global))
	}

	for _, sec := range p.sections {
		sb.WriteString(fmt.Sprintf(".section %s\n", sec.name))
		for _, l := range sec.labels {
			sb.WriteString(fmt.Sprintf("%s:\n", l.name))
			for _, instruction := range l.instructions {
				sb.WriteString(fmt.Sprintf("    %s\n", instruction))
			}
		}
	}

	return sb.String()
}

// pseudoASM provides the AVR instructions used during code generation.
// Instructions are emitted at the selected label.
type pseudoASM interface {
	// SelectSection moves the cursor to a section. A label of that
	// section must be selected before emitting.
	SelectSection(s SectionID)
	// CreateLabel creates a label in the selected section.
	CreateLabel(name string) LabelID
	SelectLabel(l LabelID)
	// Position returns the number of instructions in the selected label.
	Position() int
	// InsertAfter places raw text after the instruction at index.
	InsertAfter(index int, instruction string)

	// stack related operations

	Push(src Register)
	Pop(dst Register)

	// In reads an I/O port into dst.
	In(dst Register, port int)
	// LoadImmediate loads a byte into dst.
	LoadImmediate(dst Register, value int)
	// StoreDisplaced stores src to the address base + offset.
	StoreDisplaced(base Register, offset int, src Register)
	// LoadDisplaced loads the byte at base + offset into dst.
	LoadDisplaced(dst, base Register, offset int)
	Move(dst, src Register)

	// byte arithmetic, the result is stored in dst

	Add(dst, src Register)
	AddWithCarry(dst, src Register)
	Sub(dst, src Register)
	SubWithCarry(dst, src Register)
	SubImmediateWithCarry(dst Register, value int)
	Complement(dst Register)
	Negate(dst Register)
	Clear(dst Register)
	// SkipIfBitClear skips the next instruction if bit of r is cleared.
	SkipIfBitClear(r Register, bit int)

	// control flow

	Call(label string)
	Return()

	// ReserveStack grows the stack by n bytes, placing the
	// instructions after the one at index.
	ReserveStack(index, n int)

	Prologue()
	Epilogue()

	String() string
}

var _ pseudoASM = (*avrWriter)(nil)

type avrWriter struct {
	program *Program
	cursor  Cursor
}

func newAVRWriter(p *Program) *avrWriter {
	return &avrWriter{program: p, cursor: Cursor{Section: -1, Label: -1}}
}

// emit instruction into the selected label
func (w *avrWriter) emit(s string) {
	w.program.Append(w.cursor, s)
}

func (w *avrWriter) SelectSection(s SectionID) {
	w.program.ValidSection(s)
	w.cursor = Cursor{Section: s, Label: -1}
}

func (w *avrWriter) CreateLabel(name string) LabelID {
	return w.program.CreateLabel(w.cursor.Section, name)
}

func (w *avrWriter) SelectLabel(l LabelID) {
	c := Cursor{Section: w.cursor.Section, Label: l}
	w.program.ValidCursor(c)
	w.cursor = c
}

func (w *avrWriter) Position() int {
	return w.program.Len(w.cursor)
}

func (w *avrWriter) InsertAfter(index int, instruction string) {
	w.program.AppendAfter(w.cursor, index, instruction)
}

func (w *avrWriter) Push(src Register) {
	w.emit(fmt.Sprintf("push %s", src))
}

func (w *avrWriter) Pop(dst Register) {
	w.emit(fmt.Sprintf("pop %s", dst))
}

func (w *avrWriter) In(dst Register, port int) {
	w.emit(fmt.Sprintf("in %s, %d", dst, port))
}

func (w *avrWriter) LoadImmediate(dst Register, value int) {
	w.emit(fmt.Sprintf("ldi %s, %d", dst, value&0xff))
}

func (w *avrWriter) StoreDisplaced(base Register, offset int, src Register) {
	w.emit(fmt.Sprintf("std %s+%d, %s", base, offset, src))
}

func (w *avrWriter) LoadDisplaced(dst, base Register, offset int) {
	w.emit(fmt.Sprintf("ldd %s, %s+%d", dst, base, offset))
}

func (w *avrWriter) Move(dst, src Register) {
	w.emit(fmt.Sprintf("mov %s, %s", dst, src))
}

func (w *avrWriter) Add(dst, src Register) {
	w.emit(fmt.Sprintf("add %s, %s", dst, src))
}

func (w *avrWriter) AddWithCarry(dst, src Register) {
	w.emit(fmt.Sprintf("adc %s, %s", dst, src))
}

func (w *avrWriter) Sub(dst, src Register) {
	w.emit(fmt.Sprintf("sub %s, %s", dst, src))
}

func (w *avrWriter) SubWithCarry(dst, src Register) {
	w.emit(fmt.Sprintf("sbc %s, %s", dst, src))
}

func (w *avrWriter) SubImmediateWithCarry(dst Register, value int) {
	w.emit(fmt.Sprintf("sbci %s, %d", dst, value&0xff))
}

func (w *avrWriter) Complement(dst Register) {
	w.emit(fmt.Sprintf("com %s", dst))
}

func (w *avrWriter) Negate(dst Register) {
	w.emit(fmt.Sprintf("neg %s", dst))
}

func (w *avrWriter) Clear(dst Register) {
	w.emit(fmt.Sprintf("clr %s", dst))
}

func (w *avrWriter) SkipIfBitClear(r Register, bit int) {
	w.emit(fmt.Sprintf("sbrc %s, %d", r, bit))
}

func (w *avrWriter) Call(label string) {
	w.emit(fmt.Sprintf("rcall %s", label))
}

// ReserveStack uses "rcall .+0" to grow the stack by two bytes at once,
// the pushed return address is never popped by a return. An odd byte
// is pushed from the scratch register.
func (w *avrWriter) ReserveStack(index, n int) {
	at := index
	for i := 0; i < n/2; i++ {
		w.InsertAfter(at, "rcall .+0")
		at++
	}
	if n%2 == 1 {
		w.InsertAfter(at, fmt.Sprintf("push %s", tmp))
	}
}

func (w *avrWriter) Return() {
	w.emit("ret")
}

// Prologue saves the caller's frame pointer and points Y at the
// current top of the stack.
func (w *avrWriter) Prologue() {
	w.Push(yl)
	w.Push(yh)
	w.In(yl, portSPL)
	w.In(yh, portSPH)
}

// Epilogue restores the caller's frame pointer and returns.
func (w *avrWriter) Epilogue() {
	w.Pop(yh)
	w.Pop(yl)
	w.Return()
}

func (w *avrWriter) String() string {
	return w.program.String()
}

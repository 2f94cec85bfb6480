package avr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_String(t *testing.T) {
	p := NewProgram()
	p.NewGlobal("main")
	p.CreateSection(".data")
	text := p.CreateSection(".text")

	main := Cursor{Section: text, Label: p.CreateLabel(text, "main")}
	p.Append(main, "ldi R24, 1")
	p.Append(main, "ret")

	expected := asmLines(
		".global main",
		".section .data",
		".section .text",
		"main:",
		"    ldi R24, 1",
		"    ret",
	)
	assert.Equal(t, expected, p.String())
	assert.Equal(t, expected, p.String())
}

func TestProgram_Insert(t *testing.T) {
	cases := []struct {
		name     string
		apply    func(p *Program, c Cursor)
		expected []string
	}{
		{
			name:     "insert front",
			apply:    func(p *Program, c Cursor) { p.Insert(c, 0, "x") },
			expected: []string{"x", "a", "b", "c"},
		},
		{
			name:     "insert end",
			apply:    func(p *Program, c Cursor) { p.Insert(c, 3, "x") },
			expected: []string{"a", "b", "c", "x"},
		},
		{
			name:     "append after",
			apply:    func(p *Program, c Cursor) { p.AppendAfter(c, 0, "x") },
			expected: []string{"a", "x", "b", "c"},
		},
		{
			name: "append after twice",
			apply: func(p *Program, c Cursor) {
				p.AppendAfter(c, 1, "x")
				p.AppendAfter(c, 2, "y")
			},
			expected: []string{"a", "b", "x", "y", "c"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			p := NewProgram()
			s := p.CreateSection(".text")
			c := Cursor{Section: s, Label: p.CreateLabel(s, "f")}
			for _, i := range []string{"a", "b", "c"} {
				p.Append(c, i)
			}

			tc.apply(p, c)
			assert.Equal(t, tc.expected, p.Instructions(c))
			assert.Equal(t, len(tc.expected), p.Len(c))
		})
	}
}

func TestProgram_BadHandles(t *testing.T) {
	p := NewProgram()
	s := p.CreateSection(".text")
	c := Cursor{Section: s, Label: p.CreateLabel(s, "f")}

	assert.Panics(t, func() { p.Insert(c, 1, "x") })
	assert.Panics(t, func() { p.Append(Cursor{Section: s, Label: 1}, "x") })
	assert.Panics(t, func() { p.CreateLabel(SectionID(3), "g") })
	assert.Panics(t, func() { p.ValidSection(-1) })
}

func TestWriter_ReserveStack(t *testing.T) {
	cases := []struct {
		size     int
		expected []string
	}{
		{size: 0, expected: []string{"push R28", "push R29", "in R28, 61", "in R29, 62"}},
		{size: 1, expected: []string{"push R28", "push R29", "push R0", "in R28, 61", "in R29, 62"}},
		{size: 2, expected: []string{"push R28", "push R29", "rcall .+0", "in R28, 61", "in R29, 62"}},
		{
			size:     5,
			expected: []string{"push R28", "push R29", "rcall .+0", "rcall .+0", "push R0", "in R28, 61", "in R29, 62"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run("", func(t *testing.T) {
			p := NewProgram()
			w := newAVRWriter(p)
			s := p.CreateSection(".text")
			w.SelectSection(s)
			l := w.CreateLabel("f")
			w.SelectLabel(l)

			at := w.Position()
			w.Prologue()
			w.ReserveStack(at+1, tc.size)

			require.Equal(t, tc.expected, p.Instructions(Cursor{Section: s, Label: l}))
		})
	}
}

func TestWriter_Formats(t *testing.T) {
	p := NewProgram()
	w := newAVRWriter(p)
	s := p.CreateSection(".text")
	w.SelectSection(s)
	l := w.CreateLabel("f")
	w.SelectLabel(l)

	w.LoadImmediate(R24, -1)
	w.StoreDisplaced(Y, 3, R25)
	w.LoadDisplaced(R18, Y, 4)
	w.Move(R16, R24)
	w.SubImmediateWithCarry(R25, 0xFF)
	w.SkipIfBitClear(R25, 7)
	w.Call("f")

	assert.Equal(t, []string{
		"ldi R24, 255",
		"std Y+3, R25",
		"ldd R18, Y+4",
		"mov R16, R24",
		"sbci R25, 255",
		"sbrc R25, 7",
		"rcall f",
	}, p.Instructions(Cursor{Section: s, Label: l}))
}

func TestWriter_EmitWithoutLabel(t *testing.T) {
	p := NewProgram()
	w := newAVRWriter(p)
	w.SelectSection(p.CreateSection(".text"))
	assert.Panics(t, func() { w.Return() })
}

package avr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPool_AcquireOrder(t *testing.T) {
	cases := []struct {
		widths   []int
		expected []Register
	}{
		{widths: []int{2, 2, 2}, expected: []Register{R24, R18, R16}},
		{widths: []int{4, 4}, expected: []Register{R24, R18}},
		{widths: []int{1, 1, 1}, expected: []Register{R24, R18, R16}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run("", func(t *testing.T) {
			pool := newRegisterPool()
			for i, width := range tc.widths {
				h, err := pool.Acquire(width)
				require.NoError(t, err)
				assert.Equal(t, tc.expected[i], pool.Window(h).Base())
			}
		})
	}
}

func TestRegisterPool_Exhausted(t *testing.T) {
	pool := newRegisterPool()
	for i := 0; i < 3; i++ {
		_, err := pool.Acquire(2)
		require.NoError(t, err)
	}

	_, err := pool.Acquire(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRegisterExhausted))

	// a long value never fits the tertiary window
	pool.Reset()
	_, err = pool.Acquire(4)
	require.NoError(t, err)
	_, err = pool.Acquire(4)
	require.NoError(t, err)
	_, err = pool.Acquire(4)
	assert.True(t, errors.Is(err, ErrRegisterExhausted))
}

func TestRegisterPool_BinaryPlacement(t *testing.T) {
	pool := newRegisterPool()

	left, err := pool.Acquire(2)
	require.NoError(t, err)
	right, err := pool.Acquire(2)
	require.NoError(t, err)
	pool.Release(right)
	assert.Equal(t, primaryWindow.mask, pool.Used())

	// {P,S,T} -> S frees T
	right, err = pool.Acquire(2)
	require.NoError(t, err)
	third, err := pool.Acquire(2)
	require.NoError(t, err)
	pool.Release(third)
	assert.Equal(t, primaryWindow.mask|secondaryWindow.mask, pool.Used())
	assert.True(t, pool.InUse(left))
	assert.True(t, pool.InUse(right))
}

func TestRegisterPool_DoubleRelease(t *testing.T) {
	pool := newRegisterPool()
	h, err := pool.Acquire(2)
	require.NoError(t, err)
	pool.Release(h)
	assert.Panics(t, func() { pool.Release(h) })
	assert.NotPanics(t, func() { pool.Release(noHandle) })
}

func TestRegisterPool_Claim(t *testing.T) {
	pool := newRegisterPool()

	h, err := pool.Claim(R24, 2)
	require.NoError(t, err)
	assert.Equal(t, primaryWindow, pool.Window(h))

	_, err = pool.Claim(R24, 2)
	assert.True(t, errors.Is(err, ErrRegisterExhausted))

	h, err = pool.Claim(R20, 2)
	require.NoError(t, err)
	assert.Equal(t, noHandle, h)
}

func TestRegisterPool_Reserve(t *testing.T) {
	pool := newRegisterPool()
	pool.Reserve(R16, 4)

	// R18 and R19 overlap the secondary window
	h, err := pool.Acquire(2)
	require.NoError(t, err)
	assert.Equal(t, R24, pool.Window(h).Base())
	_, err = pool.Acquire(2)
	assert.True(t, errors.Is(err, ErrRegisterExhausted))

	_, err = pool.Claim(R18, 2)
	assert.True(t, errors.Is(err, ErrRegisterExhausted))

	assert.Panics(t, func() { pool.Reserve(R17, 1) })

	pool.Unreserve(R16, 4)
	_, err = pool.Claim(R18, 2)
	assert.NoError(t, err)
}

func TestRegisterPool_SuspendRestore(t *testing.T) {
	pool := newRegisterPool()
	_, err := pool.Acquire(4)
	require.NoError(t, err)
	pool.Reserve(R16, 2)

	saved := pool.Suspend()
	assert.Equal(t, windowMask(0), pool.Used())
	assert.Equal(t, []Register{R24, R25, R26, R27, R16, R17}, saved.registers())

	h, err := pool.Claim(R16, 2)
	require.NoError(t, err)
	pool.Release(h)

	pool.Restore(saved)
	assert.Equal(t, primaryWindow.mask, pool.Used())
	assert.Panics(t, func() { pool.Reserve(R16, 1) })
	assert.Panics(t, func() { pool.Restore(saved) })
}

func TestRegisterPool_String(t *testing.T) {
	pool := newRegisterPool()
	assert.Equal(t, "none", pool.String())
	_, _ = pool.Acquire(2)
	_, _ = pool.Acquire(2)
	assert.Equal(t, "primary, secondary", pool.String())
}

func TestRegisterPool_ClaimInsideUsedWindow(t *testing.T) {
	pool := newRegisterPool()
	_, err := pool.Claim(R18, 2)
	require.NoError(t, err)

	_, err = pool.Claim(R20, 2)
	assert.True(t, errors.Is(err, ErrRegisterExhausted))

	// a long argument at R16 spills into the secondary window
	_, err = pool.Claim(R16, 4)
	assert.True(t, errors.Is(err, ErrRegisterExhausted))
}

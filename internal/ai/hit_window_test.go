package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitWindowClosedDoesNothing(t *testing.T) {
	w := NewHitWindow(10)
	target := newFakeTarget(1, 0, 0, 0)

	hit, err := w.Poll(target, 0.5, 2)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, target.damage.calls)
}

func TestHitWindowIdempotentPerWindow(t *testing.T) {
	w := NewHitWindow(10)
	target := newFakeTarget(1, 0, 0, 0)

	w.Open()
	for range 50 {
		_, err := w.Poll(target, 1, 2)
		require.NoError(t, err)
	}
	w.Close()

	assert.Equal(t, []int32{10}, target.damage.calls, "one hit per window")

	w.Open()
	hit, err := w.Poll(target, 1, 2)
	require.NoError(t, err)
	assert.True(t, hit, "reopening clears the already-hit set")
	assert.Equal(t, []int32{10, 10}, target.damage.calls)
}

func TestHitWindowOutOfRange(t *testing.T) {
	w := NewHitWindow(10)
	target := newFakeTarget(1, 0, 0, 0)
	w.Open()

	hit, _ := w.Poll(target, 2, 2)
	assert.False(t, hit, "range check is strict")
	assert.False(t, w.AlreadyHit(1), "a miss does not consume the window")

	hit, _ = w.Poll(target, 1.99, 2)
	assert.True(t, hit)
}

func TestHitWindowTargetWithoutHealth(t *testing.T) {
	w := NewHitWindow(10)
	target := newFakeTarget(1, 0, 0, 0)
	target.noHealth = true
	w.Open()

	hit, err := w.Poll(target, 1, 2)
	assert.False(t, hit)
	assert.ErrorIs(t, err, ErrTargetHasNoHealth)

	hit, err = w.Poll(target, 1, 2)
	assert.False(t, hit)
	assert.NoError(t, err, "configuration error is reported once per window")
}

func TestHitWindowCloseWhenClosed(t *testing.T) {
	w := NewHitWindow(10)
	w.Close()
	assert.False(t, w.IsOpen())
	w.Open()
	assert.True(t, w.IsOpen())
	w.Close()
	w.Close()
	assert.False(t, w.IsOpen())
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	changes []int32
	deaths  int
}

func (r *recordingListener) HealthChanged(_ uint32, current, _ int32) {
	r.changes = append(r.changes, current)
}

func (r *recordingListener) Died(uint32) {
	r.deaths++
}

func TestHealthSubscribePushesCurrentValue(t *testing.T) {
	h := NewHealth(7, 100)
	l := &recordingListener{}

	h.Subscribe(l)

	assert.Equal(t, []int32{100}, l.changes)
	assert.Equal(t, 0, l.deaths)
}

func TestHealthClampAndDeathOnce(t *testing.T) {
	h := NewHealth(7, 100)
	h.Restore(5)
	l := &recordingListener{}
	h.Subscribe(l)
	l.changes = nil

	h.TakeDamage(10)

	assert.Equal(t, int32(0), h.Current())
	assert.True(t, h.IsDead())
	assert.Equal(t, []int32{0}, l.changes, "sink notified exactly once")
	assert.Equal(t, 1, l.deaths)

	h.TakeDamage(10)
	h.TakeDamage(50)
	assert.Equal(t, int32(0), h.Current())
	assert.Equal(t, []int32{0}, l.changes, "dead health ignores damage")
	assert.Equal(t, 1, l.deaths)
}

func TestHealthNeverNegative(t *testing.T) {
	amounts := [][]int32{
		{1, 2, 3},
		{99, 1, 1},
		{150},
		{33, 33, 33, 33},
		{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
	}

	for _, seq := range amounts {
		h := NewHealth(1, 100)
		l := &recordingListener{}
		h.Subscribe(l)

		var total int32
		for _, n := range seq {
			h.TakeDamage(n)
			total += n
			require.GreaterOrEqual(t, h.Current(), int32(0))
			require.LessOrEqual(t, h.Current(), h.Max())
		}

		if total >= 100 {
			assert.True(t, h.IsDead())
			assert.Equal(t, 1, l.deaths, "seq %v", seq)
		} else {
			assert.False(t, h.IsDead())
			assert.Equal(t, 100-total, h.Current())
			assert.Equal(t, 0, l.deaths)
		}
	}
}

func TestHealthIgnoresNonPositiveDamage(t *testing.T) {
	h := NewHealth(1, 50)
	h.TakeDamage(0)
	h.TakeDamage(-20)
	assert.Equal(t, int32(50), h.Current())
}

func TestHealthRestore(t *testing.T) {
	h := NewHealth(1, 50)

	h.Restore(80)
	assert.Equal(t, int32(50), h.Current(), "restore clamps to max")

	l := &recordingListener{}
	h.Subscribe(l)
	h.Restore(0)
	assert.True(t, h.IsDead())
	assert.Equal(t, 0, l.deaths, "restoring a dead snapshot does not re-fire death")

	h.TakeDamage(5)
	assert.Equal(t, 0, l.deaths)
}

func TestNewHealthMinimumMax(t *testing.T) {
	h := NewHealth(1, 0)
	assert.Equal(t, int32(1), h.Max())
	assert.Equal(t, int32(1), h.Current())
}

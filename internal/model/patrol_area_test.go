package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fractionRandom maps a scripted sequence of fractions in [0,1) onto the requested range.
type fractionRandom struct {
	seq []float64
	i   int
}

func (r *fractionRandom) Range(min, max float64) float64 {
	f := r.seq[r.i%len(r.seq)]
	r.i++
	return min + f*(max-min)
}

func TestRectPatrolAreaRandomPoint(t *testing.T) {
	area := NewRectPatrolArea(NewVec3(10, 2, -4), 20, 8)
	rng := &fractionRandom{seq: []float64{0, 0.5, 0.999, 0.25}}

	p := area.RandomPoint(rng)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 2.0, p.Y, 1e-9, "rectangle samples keep the anchor height")
	assert.InDelta(t, -4.0, p.Z, 1e-9)

	p = area.RandomPoint(rng)
	assert.InDelta(t, 19.98, p.X, 1e-9)
	assert.InDelta(t, -6.0, p.Z, 1e-9)

	assert.True(t, area.Contains(p))
	assert.Equal(t, rectSampleRadius, area.SampleRadius())
	assert.Equal(t, PatrolRect, area.Shape())
}

func TestSpherePatrolAreaRandomPoint(t *testing.T) {
	area := NewSpherePatrolArea(NewVec3(0, 0, 0), 10)
	// first triple (0.999, 0.999, 0.999) -> (≈1, ≈1, ≈1) is rejected, second is accepted
	rng := &fractionRandom{seq: []float64{0.999, 0.999, 0.999, 0.75, 0.5, 0.25}}

	p := area.RandomPoint(rng)
	assert.InDelta(t, 5.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
	assert.InDelta(t, -5.0, p.Z, 1e-9)
	assert.True(t, area.Contains(p))
	assert.Equal(t, 10.0, area.SampleRadius())
}

func TestRandomInUnitSphereFallsBackToOrigin(t *testing.T) {
	rng := &fractionRandom{seq: []float64{0.999}}
	assert.True(t, RandomInUnitSphere(rng).IsZero())
}

func TestPatrolAreaContains(t *testing.T) {
	rect := NewRectPatrolArea(NewVec3(0, 0, 0), 4, 4)
	assert.True(t, rect.Contains(NewVec3(1, 100, -1)), "rectangle ignores height")
	assert.False(t, rect.Contains(NewVec3(3, 0, 0)))

	sphere := NewSpherePatrolArea(NewVec3(0, 0, 0), 2)
	assert.True(t, sphere.Contains(NewVec3(0, 1.5, 0)))
	assert.False(t, sphere.Contains(NewVec3(0, 2.5, 0)))
}

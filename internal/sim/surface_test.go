package sim

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcai/internal/model"
)

func testSurface() *NavSurface {
	walkable := orb.Bound{Min: orb.Point{-20, -20}, Max: orb.Point{20, 20}}
	pillar := orb.Ring{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}
	return NewNavSurface(walkable, 0, pillar)
}

func TestNavSurfaceWalkable(t *testing.T) {
	s := testSurface()

	tests := []struct {
		name string
		p    model.Vec3
		want bool
	}{
		{"open ground", model.NewVec3(0, 0, 0), true},
		{"inside obstacle", model.NewVec3(3, 0, 3), false},
		{"outside bound", model.NewVec3(30, 0, 0), false},
		{"height ignored", model.NewVec3(-5, 100, -5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Walkable(tt.p))
		})
	}
}

func TestNavSurfaceOnSurface(t *testing.T) {
	s := testSurface()

	assert.True(t, s.OnSurface(model.NewVec3(0, 0.3, 0)))
	assert.False(t, s.OnSurface(model.NewVec3(0, 2, 0)), "airborne")
	assert.False(t, s.OnSurface(model.NewVec3(3, 0, 3)), "inside obstacle")
}

func TestNavSurfaceSamplePointNear(t *testing.T) {
	s := testSurface()

	p, ok := s.SamplePointNear(model.NewVec3(1, 0, -1), 5)
	require.True(t, ok)
	assert.Equal(t, model.NewVec3(1, 0, -1), p)

	p, ok = s.SamplePointNear(model.NewVec3(25, 0, 0), 10)
	require.True(t, ok)
	assert.Equal(t, model.NewVec3(20, 0, 0), p, "clamped onto the edge")

	_, ok = s.SamplePointNear(model.NewVec3(25, 0, 0), 3)
	assert.False(t, ok, "nearest ground is out of radius")

	_, ok = s.SamplePointNear(model.NewVec3(0, 0, 0), 0)
	assert.False(t, ok)
}

func TestNavSurfaceSampleAroundObstacle(t *testing.T) {
	s := testSurface()
	center := model.NewVec3(3, 0, 3)

	p, ok := s.SamplePointNear(center, 5)
	require.True(t, ok)
	assert.True(t, s.Walkable(p))
	assert.LessOrEqual(t, p.Distance(center), 5.0)
	assert.InDelta(t, 1.25, p.Distance(center), 1e-9, "closest sample ring outside the pillar")
}

func TestNavSurfaceSampleHighPoint(t *testing.T) {
	s := testSurface()

	p, ok := s.SamplePointNear(model.NewVec3(-3, 4, -3), 5)
	require.True(t, ok)
	assert.Equal(t, 0.0, p.Y, "samples lie on the ground")

	_, ok = s.SamplePointNear(model.NewVec3(-3, 8, -3), 5)
	assert.False(t, ok)
}

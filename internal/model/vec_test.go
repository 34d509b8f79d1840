package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"same point", NewVec3(1, 2, 3), NewVec3(1, 2, 3), 0},
		{"ground plane", NewVec3(0, 0, 0), NewVec3(3, 0, 4), 5},
		{"vertical counts", NewVec3(0, 0, 0), NewVec3(0, 10, 0), 10},
		{"all axes", NewVec3(1, 1, 1), NewVec3(3, 3, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), 1e-9)
			assert.InDelta(t, tt.want*tt.want, tt.a.DistanceSquared(tt.b), 1e-9)
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-9)
	assert.InDelta(t, 0.6, n.Y, 1e-9)

	assert.True(t, Vec3{}.Normalize().IsZero(), "zero vector stays zero")
}

func TestVec3Flat(t *testing.T) {
	v := NewVec3(1, 7, -2)
	f := v.Flat()

	assert.Equal(t, NewVec3(1, 0, -2), f)
	assert.Equal(t, 7.0, v.Y, "original is not mutated")
	assert.Equal(t, NewVec3(1, 5, -2), v.WithY(5))
}

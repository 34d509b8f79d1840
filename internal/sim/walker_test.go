package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/npcai/internal/model"
)

type point struct{ p model.Vec3 }

func (m *point) Position() model.Vec3     { return m.p }
func (m *point) SetPosition(p model.Vec3) { m.p = p }

func TestWalkerLoopsWaypoints(t *testing.T) {
	m := &point{}
	w := NewWalker(m, 5, []model.Vec3{
		model.NewVec3(0, 0, 0),
		model.NewVec3(10, 0, 0),
		model.NewVec3(10, 0, 10),
	})

	w.Advance(1)
	assert.Equal(t, model.NewVec3(5, 0, 0), m.p)

	w.Advance(1)
	assert.Equal(t, model.NewVec3(10, 0, 0), m.p)

	w.Advance(1)
	assert.Equal(t, model.NewVec3(10, 0, 5), m.p)

	next, ok := w.Next()
	assert.True(t, ok)
	assert.Equal(t, model.NewVec3(10, 0, 10), next)
}

func TestWalkerCarriesLeftover(t *testing.T) {
	m := &point{}
	w := NewWalker(m, 4, []model.Vec3{
		model.NewVec3(2, 0, 0),
		model.NewVec3(2, 0, 10),
	})

	w.Advance(1)
	assert.Equal(t, model.NewVec3(2, 0, 2), m.p)
}

func TestWalkerIdle(t *testing.T) {
	m := &point{p: model.NewVec3(1, 1, 1)}
	w := NewWalker(m, 5, nil)

	w.Advance(1)
	assert.Equal(t, model.NewVec3(1, 1, 1), m.p)
	_, ok := w.Next()
	assert.False(t, ok)
}

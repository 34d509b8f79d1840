package world

import (
	"sync"

	"github.com/udisondev/npcai/internal/ai"
	"github.com/udisondev/npcai/internal/model"
)

// Entity is a tagged object placed in the world: the player, an agent body.
// Position is written by the simulation goroutine and read by viewers.
type Entity struct {
	objectID uint32
	name     string
	tag      string

	mu  sync.RWMutex
	pos model.Vec3

	health *model.Health
}

// NewEntity creates an entity at pos.
func NewEntity(objectID uint32, name, tag string, pos model.Vec3) *Entity {
	return &Entity{
		objectID: objectID,
		name:     name,
		tag:      tag,
		pos:      pos,
	}
}

func (e *Entity) ObjectID() uint32 { return e.objectID }
func (e *Entity) Name() string     { return e.name }
func (e *Entity) Tag() string      { return e.tag }

// Position returns the current position.
func (e *Entity) Position() model.Vec3 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pos
}

// SetPosition moves the entity.
func (e *Entity) SetPosition(p model.Vec3) {
	e.mu.Lock()
	e.pos = p
	e.mu.Unlock()
}

// AttachHealth gives the entity a health component.
func (e *Entity) AttachHealth(h *model.Health) {
	e.health = h
}

// Health returns the health component (nil if none).
func (e *Entity) Health() *model.Health {
	return e.health
}

// Damageable returns the health component as a damage sink, or nil.
func (e *Entity) Damageable() ai.Damageable {
	if e.health == nil {
		return nil
	}
	return e.health
}

var _ ai.Target = (*Entity)(nil)

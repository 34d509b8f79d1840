package world

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/npcai/internal/ai"
)

// ErrDuplicateObject is returned when an object ID is already registered.
var ErrDuplicateObject = errors.New("object already in world")

// World is the registry of entities, indexed by object ID and tag.
type World struct {
	objects sync.Map // map[uint32]*Entity keyed by objectID
	count   atomic.Int32

	tagMu sync.RWMutex
	byTag map[string][]uint32 // registration order
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{byTag: make(map[string][]uint32)}
}

// AddEntity registers e.
func (w *World) AddEntity(e *Entity) error {
	if _, loaded := w.objects.LoadOrStore(e.ObjectID(), e); loaded {
		return fmt.Errorf("adding %s (objectID %d): %w", e.Name(), e.ObjectID(), ErrDuplicateObject)
	}
	w.count.Add(1)

	if e.Tag() != "" {
		w.tagMu.Lock()
		w.byTag[e.Tag()] = append(w.byTag[e.Tag()], e.ObjectID())
		w.tagMu.Unlock()
	}
	return nil
}

// RemoveEntity unregisters the entity with objectID.
func (w *World) RemoveEntity(objectID uint32) {
	value, ok := w.objects.LoadAndDelete(objectID)
	if !ok {
		return
	}
	w.count.Add(-1)

	e := value.(*Entity)
	if e.Tag() == "" {
		return
	}
	w.tagMu.Lock()
	ids := slices.DeleteFunc(w.byTag[e.Tag()], func(id uint32) bool { return id == objectID })
	if len(ids) == 0 {
		delete(w.byTag, e.Tag())
	} else {
		w.byTag[e.Tag()] = ids
	}
	w.tagMu.Unlock()
}

// GetEntity returns the entity with objectID.
func (w *World) GetEntity(objectID uint32) (*Entity, bool) {
	value, ok := w.objects.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*Entity), true
}

// FindByTag returns the first registered entity with tag.
func (w *World) FindByTag(tag string) (ai.Target, bool) {
	w.tagMu.RLock()
	ids := w.byTag[tag]
	w.tagMu.RUnlock()

	for _, id := range ids {
		if e, ok := w.GetEntity(id); ok {
			return e, true
		}
	}
	return nil, false
}

// EntitiesByTag returns all entities with tag in registration order.
func (w *World) EntitiesByTag(tag string) []*Entity {
	w.tagMu.RLock()
	ids := slices.Clone(w.byTag[tag])
	w.tagMu.RUnlock()

	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.GetEntity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// ForEach calls fn for every entity until fn returns false.
func (w *World) ForEach(fn func(e *Entity) bool) {
	w.objects.Range(func(_, value any) bool {
		return fn(value.(*Entity))
	})
}

// ObjectCount returns the number of registered entities.
func (w *World) ObjectCount() int {
	return int(w.count.Load())
}

var _ ai.TargetLookup = (*World)(nil)

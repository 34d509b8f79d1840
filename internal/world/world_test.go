package world

import (
	"errors"
	"testing"

	"github.com/udisondev/npcai/internal/model"
)

func TestWorld_AddGetRemove(t *testing.T) {
	w := NewWorld()
	e := NewEntity(1, "Hero", "Player", model.NewVec3(1, 0, 2))

	if err := w.AddEntity(e); err != nil {
		t.Fatalf("AddEntity() error = %v", err)
	}
	if w.ObjectCount() != 1 {
		t.Errorf("ObjectCount() = %d, want 1", w.ObjectCount())
	}

	got, ok := w.GetEntity(1)
	if !ok || got != e {
		t.Fatalf("GetEntity(1) = %v, %v; want entity", got, ok)
	}

	if err := w.AddEntity(e); !errors.Is(err, ErrDuplicateObject) {
		t.Errorf("AddEntity(duplicate) error = %v, want ErrDuplicateObject", err)
	}

	w.RemoveEntity(1)
	w.RemoveEntity(1)
	if w.ObjectCount() != 0 {
		t.Errorf("ObjectCount() after RemoveEntity() = %d, want 0", w.ObjectCount())
	}
	if _, ok := w.FindByTag("Player"); ok {
		t.Error("FindByTag() after RemoveEntity() should fail")
	}
}

func TestWorld_FindByTag(t *testing.T) {
	w := NewWorld()
	first := NewEntity(1, "Hero", "Player", model.Vec3{})
	second := NewEntity(2, "Twin", "Player", model.Vec3{})
	other := NewEntity(3, "Orc", "Enemy", model.Vec3{})

	for _, e := range []*Entity{first, second, other} {
		if err := w.AddEntity(e); err != nil {
			t.Fatalf("AddEntity(%s) error = %v", e.Name(), err)
		}
	}

	target, ok := w.FindByTag("Player")
	if !ok {
		t.Fatal("FindByTag(Player) not found")
	}
	if target.ObjectID() != 1 {
		t.Errorf("FindByTag(Player) = %d, want first registered (1)", target.ObjectID())
	}

	if _, ok := w.FindByTag("Missing"); ok {
		t.Error("FindByTag(Missing) should fail")
	}

	players := w.EntitiesByTag("Player")
	if len(players) != 2 {
		t.Errorf("EntitiesByTag(Player) len = %d, want 2", len(players))
	}

	w.RemoveEntity(1)
	target, ok = w.FindByTag("Player")
	if !ok || target.ObjectID() != 2 {
		t.Errorf("FindByTag(Player) after removal = %v, %v; want 2", target, ok)
	}
}

func TestWorld_ForEach(t *testing.T) {
	w := NewWorld()
	for i := range 5 {
		if err := w.AddEntity(NewEntity(uint32(i+1), "e", "", model.Vec3{})); err != nil {
			t.Fatal(err)
		}
	}

	seen := 0
	w.ForEach(func(*Entity) bool {
		seen++
		return true
	})
	if seen != 5 {
		t.Errorf("ForEach visited %d, want 5", seen)
	}
}

func TestEntity_Damageable(t *testing.T) {
	e := NewEntity(1, "Hero", "Player", model.Vec3{})
	if e.Damageable() != nil {
		t.Error("Damageable() without health should be nil")
	}

	h := model.NewHealth(1, 100)
	e.AttachHealth(h)
	e.Damageable().TakeDamage(30)

	if h.Current() != 70 {
		t.Errorf("Current() = %d, want 70", h.Current())
	}
}

func TestEntity_Position(t *testing.T) {
	e := NewEntity(1, "Hero", "Player", model.NewVec3(1, 2, 3))
	e.SetPosition(model.NewVec3(4, 5, 6))

	if got := e.Position(); got != model.NewVec3(4, 5, 6) {
		t.Errorf("Position() = %v, want (4, 5, 6)", got)
	}
}

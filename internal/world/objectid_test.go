package world

import (
	"sync"
	"testing"
)

func TestObjectIDGenerator_Ranges(t *testing.T) {
	gen := NewObjectIDGenerator()

	player := gen.NextPlayerID()
	agent := gen.NextAgentID()

	if player != PlayerIDBase+1 {
		t.Errorf("NextPlayerID() = %#x, want %#x", player, PlayerIDBase+1)
	}
	if !IsAgentID(agent) {
		t.Errorf("IsAgentID(%#x) = false", agent)
	}
	if IsAgentID(player) {
		t.Errorf("IsAgentID(%#x) = true for a player", player)
	}
}

func TestObjectIDGenerator_Concurrent(t *testing.T) {
	gen := NewObjectIDGenerator()

	var mu sync.Mutex
	seen := make(map[uint32]struct{}, 1000)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := gen.NextAgentID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 1000 {
		t.Errorf("unique IDs = %d, want 1000", len(seen))
	}
}

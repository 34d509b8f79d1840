package world

import "sync/atomic"

// ObjectIDGenerator hands out unique object IDs for world entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: Agents
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextAgentID  atomic.Uint32
}

// Range starts.
const (
	PlayerIDBase uint32 = 0x10000000
	AgentIDBase  uint32 = 0x20000000
)

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(PlayerIDBase)
	gen.nextAgentID.Store(AgentIDBase)
	return gen
}

// NextPlayerID returns the next player object ID. Thread-safe.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextAgentID returns the next agent object ID. Thread-safe.
func (g *ObjectIDGenerator) NextAgentID() uint32 {
	return g.nextAgentID.Add(1)
}

// IsAgentID reports whether id belongs to the agent range.
func IsAgentID(id uint32) bool {
	return id > AgentIDBase && id < AgentIDBase+0x10000000
}

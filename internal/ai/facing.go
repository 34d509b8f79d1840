package ai

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/npcai/internal/model"
)

// minLookLengthSq below which a look direction is treated as degenerate.
const minLookLengthSq = 1e-12

// Facing turns an agent toward a point on the ground plane.
// Rotation is decoupled from locomotion speed: each step blends the current
// heading toward the look direction by rate*dt along the shortest arc.
type Facing struct {
	rate float64
}

// NewFacing creates a facing controller with the given blend rate (per second).
func NewFacing(rate float64) *Facing {
	return &Facing{rate: rate}
}

// SetRate updates the blend rate.
func (f *Facing) SetRate(rate float64) {
	f.rate = rate
}

// Step returns the yaw after one blend step from yaw toward the horizontal
// direction from → to. Returns false if the direction is degenerate
// (target straight above/below or at the agent position).
func (f *Facing) Step(yaw float64, from, to model.Vec3, dt float64) (float64, bool) {
	look := cp.Vector{X: to.X - from.X, Y: to.Z - from.Z}
	if look.LengthSq() < minLookLengthSq {
		return yaw, false
	}
	look = look.Normalize()

	current := cp.ForAngle(yaw)
	delta := math.Atan2(current.Cross(look), current.Dot(look))

	t := dt * f.rate
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}

	return current.Rotate(cp.ForAngle(delta * t)).ToAngle(), true
}

// FaceTarget rotates the locomotion's yaw one step toward target.
func (f *Facing) FaceTarget(loco Locomotion, target model.Vec3, dt float64) {
	yaw, ok := f.Step(loco.Yaw(), loco.Position(), target, dt)
	if !ok {
		return
	}
	loco.SetYaw(yaw)
}

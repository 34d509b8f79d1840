package sim

import "github.com/udisondev/npcai/internal/model"

// Mover is anything with a settable position.
type Mover interface {
	Position() model.Vec3
	SetPosition(p model.Vec3)
}

// Walker moves a Mover through a looped list of waypoints at constant speed.
// It stands in for the player when running headless.
type Walker struct {
	mover     Mover
	speed     float64
	waypoints []model.Vec3
	idx       int
}

// NewWalker creates a walker. With no waypoints the mover never moves.
func NewWalker(mover Mover, speed float64, waypoints []model.Vec3) *Walker {
	return &Walker{
		mover:     mover,
		speed:     speed,
		waypoints: waypoints,
	}
}

// Next returns the waypoint being walked to.
func (w *Walker) Next() (model.Vec3, bool) {
	if len(w.waypoints) == 0 {
		return model.Vec3{}, false
	}
	return w.waypoints[w.idx], true
}

// Advance moves the mover for dt seconds, carrying leftover distance over
// reached waypoints.
func (w *Walker) Advance(dt float64) {
	if len(w.waypoints) == 0 || w.speed <= 0 || dt <= 0 {
		return
	}

	budget := w.speed * dt
	pos := w.mover.Position()
	// bounded so that coincident waypoints cannot spin forever
	for range len(w.waypoints) + 1 {
		to := w.waypoints[w.idx].Sub(pos)
		dist := to.Length()
		if dist > budget {
			pos = pos.Add(to.Scale(budget / dist))
			break
		}
		pos = w.waypoints[w.idx]
		budget -= dist
		w.idx = (w.idx + 1) % len(w.waypoints)
		if budget <= 0 {
			break
		}
	}
	w.mover.SetPosition(pos)
}

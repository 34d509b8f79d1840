package sim

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/udisondev/npcai/internal/model"
)

const (
	// surfaceHeightTolerance is how far above or below the ground an agent may
	// be and still count as standing on the surface.
	surfaceHeightTolerance = 0.5

	sampleRings  = 8
	sampleAngles = 16
)

// NavSurface is a flat walkable ground: a rectangle on the XZ plane at
// height groundY, minus obstacle polygons.
type NavSurface struct {
	walkable  orb.Bound
	obstacles []orb.Ring
	groundY   float64
}

// NewNavSurface creates a surface. Obstacle rings are in XZ coordinates.
func NewNavSurface(walkable orb.Bound, groundY float64, obstacles ...orb.Ring) *NavSurface {
	return &NavSurface{
		walkable:  walkable,
		obstacles: obstacles,
		groundY:   groundY,
	}
}

// Bound returns the walkable rectangle.
func (s *NavSurface) Bound() orb.Bound { return s.walkable }

// Obstacles returns the obstacle rings.
func (s *NavSurface) Obstacles() []orb.Ring { return s.obstacles }

// GroundY returns the ground height.
func (s *NavSurface) GroundY() float64 { return s.groundY }

// Walkable reports whether the ground projection of p is walkable.
func (s *NavSurface) Walkable(p model.Vec3) bool {
	pt := orb.Point{p.X, p.Z}
	if !s.walkable.Contains(pt) {
		return false
	}
	for _, r := range s.obstacles {
		if planar.RingContains(r, pt) {
			return false
		}
	}
	return true
}

// OnSurface reports whether an agent at p stands on the surface.
func (s *NavSurface) OnSurface(p model.Vec3) bool {
	return math.Abs(p.Y-s.groundY) <= surfaceHeightTolerance && s.Walkable(p)
}

// SamplePointNear returns the walkable ground point closest to center found
// within radius. The search clamps center onto the walkable rectangle and,
// if that lands in an obstacle, samples concentric rings around it.
func (s *NavSurface) SamplePointNear(center model.Vec3, radius float64) (model.Vec3, bool) {
	if radius <= 0 {
		return model.Vec3{}, false
	}

	base := model.Vec3{
		X: clamp(center.X, s.walkable.Min.X(), s.walkable.Max.X()),
		Y: s.groundY,
		Z: clamp(center.Z, s.walkable.Min.Y(), s.walkable.Max.Y()),
	}
	if s.Walkable(base) && base.Distance(center) <= radius {
		return base, true
	}

	best, bestDist, found := model.Vec3{}, math.Inf(1), false
	step := radius / sampleRings
	for ring := 1; ring <= sampleRings; ring++ {
		r := step * float64(ring)
		for a := range sampleAngles {
			angle := 2 * math.Pi * float64(a) / sampleAngles
			p := model.Vec3{
				X: base.X + r*math.Cos(angle),
				Y: s.groundY,
				Z: base.Z + r*math.Sin(angle),
			}
			if !s.Walkable(p) {
				continue
			}
			if d := p.Distance(center); d <= radius && d < bestDist {
				best, bestDist, found = p, d, true
			}
		}
		if found {
			return best, true
		}
	}
	return model.Vec3{}, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

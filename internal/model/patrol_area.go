package model

import (
	"github.com/paulmach/orb"
)

// Random is a source of uniform floats.
// Injected everywhere randomness is needed so tests can fix the sequence.
type Random interface {
	// Range returns a uniform float in [min, max).
	Range(min, max float64) float64
}

// PatrolShape selects how a patrol area is sampled.
type PatrolShape int32

const (
	// PatrolRect samples uniformly inside a ground-plane rectangle.
	PatrolRect PatrolShape = iota
	// PatrolSphere samples uniformly inside a sphere.
	PatrolSphere
)

// String returns human-readable shape name
func (s PatrolShape) String() string {
	switch s {
	case PatrolRect:
		return "rect"
	case PatrolSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// rectSampleRadius is how far from a rectangle sample the navigation
// surface is searched for a valid point.
const rectSampleRadius = 5.0

// PatrolArea is the region an agent picks patrol destinations from.
// Immutable after spawn: the anchor is either a configured point or the spawn position.
type PatrolArea struct {
	center Vec3
	shape  PatrolShape
	bound  orb.Bound // ground-plane extent (X, Z) for PatrolRect
	radius float64   // PatrolSphere only
}

// NewRectPatrolArea creates a rectangular area of sizeX × sizeZ centered on center.
func NewRectPatrolArea(center Vec3, sizeX, sizeZ float64) PatrolArea {
	hx, hz := sizeX/2, sizeZ/2
	return PatrolArea{
		center: center,
		shape:  PatrolRect,
		bound: orb.Bound{
			Min: orb.Point{center.X - hx, center.Z - hz},
			Max: orb.Point{center.X + hx, center.Z + hz},
		},
	}
}

// NewSpherePatrolArea creates a spherical area of the given radius around center.
func NewSpherePatrolArea(center Vec3, radius float64) PatrolArea {
	return PatrolArea{
		center: center,
		shape:  PatrolSphere,
		bound: orb.Bound{
			Min: orb.Point{center.X - radius, center.Z - radius},
			Max: orb.Point{center.X + radius, center.Z + radius},
		},
		radius: radius,
	}
}

// Center returns the anchor point.
func (a PatrolArea) Center() Vec3 { return a.center }

// Shape returns the sampling shape.
func (a PatrolArea) Shape() PatrolShape { return a.shape }

// Bound returns the ground-plane bounding box of the area.
func (a PatrolArea) Bound() orb.Bound { return a.bound }

// Radius returns the sphere radius (0 for rectangles).
func (a PatrolArea) Radius() float64 { return a.radius }

// SampleRadius is the search radius to pass to the navigation sample query
// for points produced by RandomPoint.
func (a PatrolArea) SampleRadius() float64 {
	if a.shape == PatrolSphere {
		return a.radius
	}
	return rectSampleRadius
}

// RandomPoint returns a uniformly distributed raw candidate inside the area.
// The point is not guaranteed to be navigable.
func (a PatrolArea) RandomPoint(rng Random) Vec3 {
	if a.shape == PatrolSphere {
		return a.center.Add(RandomInUnitSphere(rng).Scale(a.radius))
	}
	return Vec3{
		X: rng.Range(a.bound.Min.X(), a.bound.Max.X()),
		Y: a.center.Y,
		Z: rng.Range(a.bound.Min.Y(), a.bound.Max.Y()),
	}
}

// Contains reports whether p lies inside the area.
// Rectangles ignore height; spheres use full 3D distance.
func (a PatrolArea) Contains(p Vec3) bool {
	if a.shape == PatrolSphere {
		return a.center.DistanceSquared(p) <= a.radius*a.radius
	}
	return a.bound.Contains(orb.Point{p.X, p.Z})
}

// maxUnitSphereAttempts bounds rejection sampling; the acceptance rate is ~52%.
const maxUnitSphereAttempts = 32

// RandomInUnitSphere returns a point inside the unit sphere by rejection sampling.
// Falls back to the origin if the source keeps producing points outside.
func RandomInUnitSphere(rng Random) Vec3 {
	for range maxUnitSphereAttempts {
		p := Vec3{X: rng.Range(-1, 1), Y: rng.Range(-1, 1), Z: rng.Range(-1, 1)}
		if p.LengthSquared() <= 1 {
			return p
		}
	}
	return Vec3{}
}

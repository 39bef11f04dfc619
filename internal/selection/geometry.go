package selection

import (
	"errors"
	"math"
)

// Point is a position on the interaction surface.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp blends a toward b by t.
func Lerp(a, b Point, t float64) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Geometry holds the spatial constants of the continuous strategy.
type Geometry struct {
	// Center is the lock zone center Z.
	Center Point

	// LockRadius is the commit radius: releases strictly inside it lock.
	LockRadius float64

	// RestRadius is the radius of the circle tokens rest on.
	RestRadius float64

	// InfluenceRadius is the distance from Z at which other tokens stop
	// reacting to a drag.
	InfluenceRadius float64

	// StartAngle is the angle of the first token on the rest circle, in radians.
	StartAngle float64

	// Width and Height bound the interaction surface.
	Width, Height float64
}

// DefaultGeometry returns the reference 1280x700 field.
func DefaultGeometry() Geometry {
	return Geometry{
		Center:          Point{X: 640, Y: 350},
		LockRadius:      100,
		RestRadius:      200,
		InfluenceRadius: 350,
		StartAngle:      -math.Pi / 2,
		Width:           1280,
		Height:          700,
	}
}

// Validate checks that radii are positive.
func (g Geometry) Validate() error {
	if g.LockRadius <= 0 || g.RestRadius <= 0 || g.InfluenceRadius <= 0 {
		return errors.New("geometry radii must be positive")
	}
	if g.Width <= 0 || g.Height <= 0 {
		return errors.New("geometry bounds must be positive")
	}
	return nil
}

// Factor is the interpolation factor for a drag at p: 1 at the zone center,
// falling linearly to 0 at InfluenceRadius and beyond.
func (g Geometry) Factor(p Point) float64 {
	return Clamp(1-Distance(p, g.Center)/g.InfluenceRadius, 0, 1)
}

// InLockZone reports whether a release at p commits a lock.
func (g Geometry) InLockZone(p Point) bool {
	return Distance(p, g.Center) < g.LockRadius
}

// RestPositions spaces n tokens evenly on the rest circle.
func (g Geometry) RestPositions(n int) []Point {
	out := make([]Point, n)
	for i := range out {
		angle := g.StartAngle + float64(i)*2*math.Pi/float64(n)
		out[i] = Point{
			X: g.Center.X + math.Cos(angle)*g.RestRadius,
			Y: g.Center.Y + math.Sin(angle)*g.RestRadius,
		}
	}
	return out
}

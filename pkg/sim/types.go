package sim

import "math"

// Pos2D defines the position in 2D, in millimeters.
type Pos2D struct {
	X, Y float64
}

// Size2D defines the rectangular size in 2D.
type Size2D struct {
	CX, CY float64
}

// Rect defines an axis aligned rectangle, Pos2D is the min corner.
type Rect struct {
	Pos2D
	Size2D
}

// Pose2D defines the pose in 2D.
type Pose2D struct {
	Pos2D
	Orientation Angle
}

// Angle is the common representation of angle in radians,
// normalized to (-Pi, Pi].
type Angle float64

// AngleFromDegrees creates Angle from degrees.
func AngleFromDegrees(d float64) Angle {
	return AngleFromRadians(d * math.Pi / 180)
}

// AngleFromRadians creates Angle from radians.
func AngleFromRadians(r float64) Angle {
	r = math.Remainder(r, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return Angle(r)
}

// AddRadians adds radians to current angle.
func (a Angle) AddRadians(r float64) Angle {
	return AngleFromRadians(float64(a) + r)
}

// Radians gets angle in radians.
func (a Angle) Radians() float64 {
	return float64(a)
}

// Degrees gets angle in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 180 / math.Pi
}

// Project projects distance into X and Y.
func (a Angle) Project(dist float64) Pos2D {
	return Pos2D{X: dist * math.Cos(float64(a)), Y: dist * math.Sin(float64(a))}
}

// Add is a helper to add Pos2D.
func (p Pos2D) Add(p1 Pos2D) Pos2D {
	return Pos2D{X: p.X + p1.X, Y: p.Y + p1.Y}
}

// Max is the max corner.
func (r Rect) Max() Pos2D {
	return Pos2D{X: r.X + r.CX, Y: r.Y + r.CY}
}

// Contains tests if p is inside r.
func (r Rect) Contains(p Pos2D) bool {
	max := r.Max()
	return p.X >= r.X && p.X <= max.X && p.Y >= r.Y && p.Y <= max.Y
}

// RayHit casts a ray from p in direction a and returns the distances
// where it enters and exits r. ok is false if the ray misses r.
func (r Rect) RayHit(p Pos2D, a Angle) (enter, exit float64, ok bool) {
	dir := a.Project(1)
	enter, exit = math.Inf(-1), math.Inf(1)
	max := r.Max()
	slabs := [2][3]float64{
		{p.X, r.X, max.X},
		{p.Y, r.Y, max.Y},
	}
	for i, d := range []float64{dir.X, dir.Y} {
		origin, lo, hi := slabs[i][0], slabs[i][1], slabs[i][2]
		if math.Abs(d) < 1e-12 {
			if origin < lo || origin > hi {
				return 0, 0, false
			}
			continue
		}
		t0, t1 := (lo-origin)/d, (hi-origin)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		enter, exit = math.Max(enter, t0), math.Min(exit, t1)
	}
	if enter > exit || exit < 0 {
		return 0, 0, false
	}
	return enter, exit, true
}

package geom

import "math"

// AABB is an axis-aligned bounding box. An AABB is empty when any
// component of Min exceeds the corresponding component of Max; the
// zero value is not empty (it is the degenerate box at the origin), so
// EmptyAABB must be used to construct an empty box explicitly.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns the canonical empty box: Min set above Max so that
// Extend on an empty box always adopts the first point or box given to
// it.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// CubeFromCenter returns a cube AABB centered at c with the given half
// side length.
func CubeFromCenter(c Vec3, halfSide float32) AABB {
	h := Vec3{halfSide, halfSide, halfSide}
	return AABB{Min: c.Sub(h), Max: c.Add(h)}
}

// IsEmpty reports whether the box is empty.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExtendPoint returns the smallest box containing b and p.
func (b AABB) ExtendPoint(p Vec3) AABB {
	if b.IsEmpty() {
		return AABB{Min: p, Max: p}
	}
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Extend returns the smallest box containing b and o.
func (b AABB) Extend(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Contains reports whether p lies within the box (inclusive).
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the center point of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box's edge lengths along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsAABB reports whether o lies entirely within b (inclusive).
func (b AABB) ContainsAABB(o AABB) bool {
	return b.Min.X <= o.Min.X && o.Max.X <= b.Max.X &&
		b.Min.Y <= o.Min.Y && o.Max.Y <= b.Max.Y &&
		b.Min.Z <= o.Min.Z && o.Max.Z <= b.Max.Z
}

// PointDistance returns the distance from p to the nearest point on or
// in the box; zero if p lies inside.
func (b AABB) PointDistance(p Vec3) float32 {
	closest := Vec3{
		clampf(p.X, b.Min.X, b.Max.X),
		clampf(p.Y, b.Min.Y, b.Max.Y),
		clampf(p.Z, b.Min.Z, b.Max.Z),
	}
	return p.Distance(closest)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

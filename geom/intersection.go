package geom

import "math"

// TriangleRay tests a ray against the triangle (a, b, c). The face
// normal is computed with an un-normalized cross product, matching a
// single-sided, winding-dependent test: the ray must approach from the
// side the triangle's winding order (a, b, c right-hand rule) faces,
// and maxDepth (if non-nil) caps how far along the ray a hit is
// accepted. Returns the hit distance along the ray and whether a hit
// occurred.
func TriangleRay(a, b, c Vec3, r Ray, maxDepth *float32) (depth float32, ok bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	denom := n.Dot(r.Dir)
	if denom >= 0 {
		// Ray direction does not oppose the face normal: back side or
		// parallel, no hit.
		return 0, false
	}

	d := -n.Dot(a)
	t := -(n.Dot(r.Pos) + d) / denom
	if t < 0 {
		return 0, false
	}
	if maxDepth != nil && t > *maxDepth {
		return 0, false
	}

	p := r.At(t)

	// Inside test: p must lie on the same side of each edge as the
	// opposite vertex, using the same (un-normalized) face normal for
	// all three checks.
	if n.Dot(b.Sub(a).Cross(p.Sub(a))) < 0 {
		return 0, false
	}
	if n.Dot(c.Sub(b).Cross(p.Sub(b))) < 0 {
		return 0, false
	}
	if n.Dot(a.Sub(c).Cross(p.Sub(c))) < 0 {
		return 0, false
	}

	return t, true
}

// PlaneRay tests a ray against an infinite plane, capping the hit
// distance at maxDepth (if non-nil) and rejecting hits behind the ray
// origin.
func PlaneRay(p Plane, r Ray, maxDepth *float32) (depth float32, ok bool) {
	t, hit := p.RayIntersection(r)
	if !hit || t < 0 {
		return 0, false
	}
	if maxDepth != nil && t > *maxDepth {
		return 0, false
	}
	return t, true
}

// AABBRay tests a ray against an axis-aligned box using the slab
// method. maxDepth (if non-nil) caps the accepted hit distance.
func AABBRay(b AABB, r Ray, maxDepth *float32) (depth float32, ok bool) {
	tMin := float32(0)
	tMax := float32(math.Inf(1))
	if maxDepth != nil {
		tMax = *maxDepth
	}

	for axis := 0; axis < 3; axis++ {
		origin, dir, lo, hi := axisComponents(axis, r, b)
		if dir == 0 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}
		invDir := 1 / dir
		t0 := (lo - origin) * invDir
		t1 := (hi - origin) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func axisComponents(axis int, r Ray, b AABB) (origin, dir, lo, hi float32) {
	switch axis {
	case 0:
		return r.Pos.X, r.Dir.X, b.Min.X, b.Max.X
	case 1:
		return r.Pos.Y, r.Dir.Y, b.Min.Y, b.Max.Y
	default:
		return r.Pos.Z, r.Dir.Z, b.Min.Z, b.Max.Z
	}
}

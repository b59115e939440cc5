package geom

import "testing"

func TestTriangleRayHitsCenter(t *testing.T) {
	a := V3(-1, -1, 0)
	b := V3(1, -1, 0)
	c := V3(0, 1, 0)
	// Winding (a,b,c) has normal pointing toward +Z; approach from +Z.
	r := NewRay(V3(0, -0.3, 5), V3(0, 0, -1))
	depth, ok := TriangleRay(a, b, c, r, nil)
	if !ok {
		t.Fatal("expected hit")
	}
	if abs32(depth-5) > 1e-4 {
		t.Errorf("depth = %v, want 5", depth)
	}
}

func TestTriangleRayMissesOutside(t *testing.T) {
	a := V3(-1, -1, 0)
	b := V3(1, -1, 0)
	c := V3(0, 1, 0)
	r := NewRay(V3(5, 5, 5), V3(0, 0, -1))
	if _, ok := TriangleRay(a, b, c, r, nil); ok {
		t.Fatal("expected miss")
	}
}

func TestTriangleRayRespectsMaxDepth(t *testing.T) {
	a := V3(-1, -1, 0)
	b := V3(1, -1, 0)
	c := V3(0, 1, 0)
	r := NewRay(V3(0, -0.3, 5), V3(0, 0, -1))
	maxDepth := float32(2)
	if _, ok := TriangleRay(a, b, c, r, &maxDepth); ok {
		t.Fatal("expected miss beyond maxDepth")
	}
}

func TestTriangleRayHitsAtOrigin(t *testing.T) {
	a := V3(-1, -1, 0)
	b := V3(1, -1, 0)
	c := V3(0, 1, 0)
	// Ray origin lies exactly on the triangle's plane (t == 0): must
	// count as a hit, not a miss.
	r := NewRay(V3(0, -0.3, 0), V3(0, 0, -1))
	depth, ok := TriangleRay(a, b, c, r, nil)
	if !ok {
		t.Fatal("expected a hit for a ray originating on the triangle")
	}
	if depth != 0 {
		t.Errorf("depth = %v, want 0", depth)
	}
}

func TestPlaneRayHitsAtOrigin(t *testing.T) {
	p := PlaneFromNormalAndPoint(V3(0, 0, 1), V3(0, 0, 0))
	r := NewRay(V3(0, 0, 0), V3(0, 0, -1))
	depth, ok := PlaneRay(p, r, nil)
	if !ok {
		t.Fatal("expected a hit for a ray originating on the plane")
	}
	if depth != 0 {
		t.Errorf("depth = %v, want 0", depth)
	}
}

func TestAABBRaySlabTest(t *testing.T) {
	box := AABB{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	r := NewRay(V3(0, 0, 5), V3(0, 0, -1))
	depth, ok := AABBRay(box, r, nil)
	if !ok {
		t.Fatal("expected hit")
	}
	if abs32(depth-4) > 1e-4 {
		t.Errorf("depth = %v, want 4", depth)
	}
}

func TestAABBRayMiss(t *testing.T) {
	box := AABB{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	r := NewRay(V3(5, 5, 5), V3(0, 0, -1))
	if _, ok := AABBRay(box, r, nil); ok {
		t.Fatal("expected miss")
	}
}

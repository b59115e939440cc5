package geom

import "testing"

func TestVec3Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"unit x", V3(1, 0, 0), V3(1, 0, 0)},
		{"scaled x", V3(5, 0, 0), V3(1, 0, 0)},
		{"zero", V3(0, 0, 0), V3(0, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if !approxVec3(got, tc.want, 1e-5) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVec3Cross(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	z := V3(0, 0, 1)
	if got := x.Cross(y); !approxVec3(got, z, 1e-6) {
		t.Errorf("x cross y = %v, want %v", got, z)
	}
}

func TestVec3Distance(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(3, 4, 0)
	if got := a.Distance(b); abs32(got-5) > 1e-5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func approxVec3(a, b Vec3, eps float32) bool {
	return abs32(a.X-b.X) <= eps && abs32(a.Y-b.Y) <= eps && abs32(a.Z-b.Z) <= eps
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

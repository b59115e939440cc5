package geom

import "testing"

func TestProjectPosNoYFlip(t *testing.T) {
	const width, height = 200.0, 100.0
	proj := Identity4()

	cases := []struct {
		name  string
		p     Vec3
		wantX float32
		wantY float32
		wantZ float32
	}{
		{"center", V3(0, 0, 0), width / 2, height / 2, 0.5},
		{"ndc top-left (-1,-1)", V3(-1, -1, -1), 0, 0, 0},
		{"ndc bottom-right (1,1)", V3(1, 1, 1), width, height, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProjectPos(proj, tc.p, width, height)
			if abs32(got.X-tc.wantX) > 1e-4 || abs32(got.Y-tc.wantY) > 1e-4 || abs32(got.Z-tc.wantZ) > 1e-4 {
				t.Errorf("ProjectPos(%v) = %+v, want (%v, %v, %v)", tc.p, got, tc.wantX, tc.wantY, tc.wantZ)
			}
		})
	}
}

package cull

import (
	"math"
	"testing"

	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/scene"
)

func quadScene() *scene.Scene {
	mesh := scene.Mesh{
		Vertices: []geom.Vec3{
			geom.V3(-1, -1, 0),
			geom.V3(1, -1, 0),
			geom.V3(1, 1, 0),
			geom.V3(-1, 1, 0),
		},
		Triangles: []scene.Triangle{{0, 1, 2}, {0, 2, 3}},
	}
	return &scene.Scene{
		Meshes:  []scene.Mesh{mesh},
		Objects: []scene.Object{{MeshIndex: 0, Transform: geom.Identity3x4()}},
	}
}

func TestRasterizerTesterSeesFrontFacingQuad(t *testing.T) {
	s := quadScene()
	is := &IdentityScene{Scene: s}
	if err := is.BuildAccelerationStructures(nil); err != nil {
		t.Fatalf("BuildAccelerationStructures: %v", err)
	}

	tester, err := NewRasterizerTester(is, 64)
	if err != nil {
		t.Fatalf("NewRasterizerTester: %v", err)
	}

	// Camera at world (0, 0, 5) looking toward the origin: the view
	// matrix maps world points into camera space, so it translates by
	// the negated camera position.
	view := geom.Identity4()
	view[14] = -5
	proj := perspective(float32(math.Pi)/3, 1, 0.1, 100)

	result, err := tester.ComputeVisibility(view, proj)
	if err != nil {
		t.Fatalf("ComputeVisibility: %v", err)
	}
	if len(result.Visibility) != 1 {
		t.Fatalf("expected 1 visibility entry, got %d", len(result.Visibility))
	}
	if result.Visibility[0].Coverage <= 0 {
		t.Errorf("expected positive coverage for a front-facing quad, got %v", result.Visibility[0].Coverage)
	}
	if result.Stats.NumTriangles != 2 {
		t.Errorf("expected 2 triangles processed, got %d", result.Stats.NumTriangles)
	}
}

func perspective(fovy, aspect, near, far float32) geom.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	nf := 1 / (near - far)
	return geom.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

package occ

import (
	"testing"

	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/scene"
	"github.com/sraesch/raycasting-occlusion/stats"
	"github.com/sraesch/raycasting-occlusion/visibility"
)

// stubScene is a trivial IndexedScene used to exercise the executor
// without depending on a concrete engine package.
type stubScene struct{ built bool }

func (s *stubScene) BuildAccelerationStructures(progress ProgressCallback) error {
	s.built = true
	if progress != nil {
		progress(1, 1, 100, "stub")
	}
	return nil
}

type stubTester struct{ coverage float32 }

func (t *stubTester) Name() string { return "stub_occ" }

func (t *stubTester) ComputeVisibility(view, proj geom.Mat4) (Result, error) {
	return Result{
		Visibility: visibility.Visibility{},
		Stats:      EngineStats{NumTriangles: 3, NumVolumeTests: 5},
	}, nil
}

func TestExecutorRunAccumulatesStatsAcrossViews(t *testing.T) {
	setup := Setup{
		Name:      "stub_occ",
		FrameSize: 16,
		BuildScene: func(s *scene.Scene) (IndexedScene, error) {
			return &stubScene{}, nil
		},
		NewTester: func(is IndexedScene) (Tester, error) {
			if _, ok := is.(*stubScene); !ok {
				t.Fatal("NewTester received the wrong IndexedScene type")
			}
			return &stubTester{}, nil
		},
	}

	exec := &Executor{
		Scene:  &scene.Scene{},
		Setups: []Setup{setup},
		Views: []View{
			{ViewMatrix: geom.Identity4(), ProjectionMatrix: geom.Identity4()},
			{ViewMatrix: geom.Identity4(), ProjectionMatrix: geom.Identity4()},
		},
	}

	root := stats.NewRoot()
	if err := exec.Run(root); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if exec.TotalStats.NumTriangles != 6 {
		t.Errorf("NumTriangles = %d, want 6 (2 views x 3)", exec.TotalStats.NumTriangles)
	}
	if exec.TotalStats.NumVolumeTests != 10 {
		t.Errorf("NumVolumeTests = %d, want 10 (2 views x 5)", exec.TotalStats.NumVolumeTests)
	}

	node := root.Child("stub_occ")
	if node.String() == "" {
		t.Error("expected non-empty stats subtree for stub_occ")
	}
}

func TestExecutorRunPropagatesBuildSceneError(t *testing.T) {
	wantErr := &buildError{}
	setup := Setup{
		Name: "broken",
		BuildScene: func(s *scene.Scene) (IndexedScene, error) {
			return nil, wantErr
		},
		NewTester: func(is IndexedScene) (Tester, error) {
			t.Fatal("NewTester should not be called when BuildScene fails")
			return nil, nil
		},
	}

	exec := &Executor{Scene: &scene.Scene{}, Setups: []Setup{setup}}
	if err := exec.Run(stats.NewRoot()); err == nil {
		t.Fatal("expected an error, got nil")
	}
}

type buildError struct{}

func (e *buildError) Error() string { return "build failed" }

// Package occ defines the engine-agnostic occlusion-tester contract and
// the executor that drives a set of engines across a set of views.
package occ

import (
	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/rasterizer"
	"github.com/sraesch/raycasting-occlusion/scene"
	"github.com/sraesch/raycasting-occlusion/visibility"
)

// ProgressCallback reports incremental progress of a long-running
// scene-preparation step: current/total units of work, a percentage in
// [0, 100], and a short stage name.
type ProgressCallback func(current, total int, percent float32, stage string)

// IndexedScene is a scene that has been prepared (acceleration
// structures built, if any) for a specific engine.
type IndexedScene interface {
	BuildAccelerationStructures(progress ProgressCallback) error
}

// EngineStats carries per-run counters an engine reports alongside its
// visibility result, summed into Executor.TotalStats by the executor.
type EngineStats struct {
	NumTriangles   int
	NumVolumeTests int
}

// Result is the outcome of one ComputeVisibility call.
type Result struct {
	Visibility visibility.Visibility
	Frame      *rasterizer.Frame // the view's ID buffer; the executor writes it only when frame export is on
	Stats      EngineStats
}

// Tester is the engine-agnostic occlusion-testing contract: given a
// view and projection matrix, compute which objects are visible and
// how much of the frame each covers.
type Tester interface {
	Name() string
	ComputeVisibility(view, proj geom.Mat4) (Result, error)
}

// Setup binds one engine's scene-preparation and tester construction
// functions so the executor can drive it without depending on any
// concrete engine package.
type Setup struct {
	Name       string
	FrameSize  int
	BuildScene func(*scene.Scene) (IndexedScene, error)
	NewTester  func(is IndexedScene) (Tester, error)
}

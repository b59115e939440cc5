// Package cull implements the rasterizer-based occlusion engine: it
// projects every object's triangles through the view-projection
// matrix and rasterizes them into a shared depth/ID buffer, then
// aggregates the ID buffer into per-object visibility.
package cull

import (
	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/occ"
	"github.com/sraesch/raycasting-occlusion/rasterizer"
	"github.com/sraesch/raycasting-occlusion/scene"
	"github.com/sraesch/raycasting-occlusion/visibility"
)

// IdentityScene is the rasterizer's IndexedScene: the rasterizer needs
// no acceleration structure, so preparing the scene is a no-op beyond
// reporting completion.
type IdentityScene struct {
	Scene *scene.Scene
}

// BuildAccelerationStructures is a passthrough: the rasterizer visits
// every object's triangles directly and needs no precomputed index.
func (s *IdentityScene) BuildAccelerationStructures(progress occ.ProgressCallback) error {
	if progress != nil {
		progress(1, 1, 100, "rasterizer_occ")
	}
	return nil
}

// RasterizerTester is the rasterizer occlusion engine.
type RasterizerTester struct {
	scene *scene.Scene
	size  int
}

// NewRasterizerTester constructs a rasterizer tester sized to a
// frameSize x frameSize square buffer.
func NewRasterizerTester(is *IdentityScene, frameSize int) (*RasterizerTester, error) {
	return &RasterizerTester{scene: is.Scene, size: frameSize}, nil
}

// Name returns the engine's identifier.
func (t *RasterizerTester) Name() string { return "rasterizer_occ" }

// ComputeVisibility rasterizes every object's triangles under the
// given view and projection, then aggregates the resulting ID buffer.
func (t *RasterizerTester) ComputeVisibility(view, proj geom.Mat4) (occ.Result, error) {
	r := rasterizer.New[uint32](t.size, t.size)

	viewProj := proj.Mul(view)
	width := float32(t.size)
	height := float32(t.size)

	numTriangles := 0
	for objectID, obj := range t.scene.Objects {
		mesh := t.scene.MeshFor(obj)
		modelTransform := obj.Transform.ToMat4()
		mvp := viewProj.Mul(modelTransform)

		for _, tri := range mesh.Triangles {
			v0 := geom.ProjectPos(mvp, mesh.Vertices[tri.A], width, height)
			v1 := geom.ProjectPos(mvp, mesh.Vertices[tri.B], width, height)
			v2 := geom.ProjectPos(mvp, mesh.Vertices[tri.C], width, height)

			r.Rasterize(uint32(objectID),
				rasterizer.ScreenVertex{X: v0.X, Y: v0.Y, Z: v0.Z},
				rasterizer.ScreenVertex{X: v1.X, Y: v1.Y, Z: v1.Z},
				rasterizer.ScreenVertex{X: v2.X, Y: v2.Y, Z: v2.Z},
			)
			numTriangles++
		}
	}

	frame := rasterizer.GetFrame(r)
	vis := visibility.FromIDBuffer(frame.ID, len(t.scene.Objects))

	return occ.Result{
		Visibility: vis,
		Frame:      frame,
		Stats:      occ.EngineStats{NumTriangles: numTriangles},
	}, nil
}

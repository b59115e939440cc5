package raycast

import (
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/occ"
	"github.com/sraesch/raycasting-occlusion/rasterizer"
	"github.com/sraesch/raycasting-occlusion/scene"
	"github.com/sraesch/raycasting-occlusion/visibility"
)

const emptyID uint32 = 0xFFFFFFFF

// NaiveRaycasterTester is the naive per-triangle raycaster occlusion
// engine.
type NaiveRaycasterTester struct {
	scene      *scene.Scene
	volumes    []geom.AABB
	size       int
	numThreads int
}

// NewNaiveRaycasterTester constructs a raycaster tester sized to a
// frameSize x frameSize square buffer, fanning its scanline work out
// across numThreads goroutines (at least 1).
func NewNaiveRaycasterTester(vs *VolumeScene, frameSize, numThreads int) (*NaiveRaycasterTester, error) {
	if numThreads < 1 {
		numThreads = 1
	}
	return &NaiveRaycasterTester{
		scene:      vs.Scene,
		volumes:    vs.Volumes,
		size:       frameSize,
		numThreads: numThreads,
	}, nil
}

// Name returns the engine's identifier.
func (t *NaiveRaycasterTester) Name() string { return "naive_raycaster_occ" }

// ComputeVisibility casts one primary ray per pixel, pre-screening each
// object via its world AABB before testing its triangles exhaustively,
// and aggregates the resulting ID buffer.
//
// A non-invertible view or projection matrix is logged and treated as
// an empty frame rather than propagated as an error, matching the
// policy that the raycaster's own math degrades silently; only load
// and executor boundaries return errors.
func (t *NaiveRaycasterTester) ComputeVisibility(view, proj geom.Mat4) (occ.Result, error) {
	viewProj := proj.Mul(view)
	invViewProj, ok := viewProj.Inverse()
	invView, okView := view.Inverse()
	if !ok || !okView {
		slog.Warn("naive raycaster: non-invertible view/projection matrix, returning empty frame")
		empty := rasterizer.NewEmptyFrame(t.size, t.size, false)
		return occ.Result{
			Visibility: visibility.FromIDBuffer(empty.ID, len(t.scene.Objects)),
			Frame:      empty,
		}, nil
	}
	cameraPos := invView.Translation()

	size := t.size
	idBuffer := make([]uint32, size*size)
	for i := range idBuffer {
		idBuffer[i] = emptyID
	}

	var numTriangles int64
	var numVolumeTests int64

	rowsPerWorker := (size + t.numThreads - 1) / t.numThreads
	var g errgroup.Group
	for w := 0; w < t.numThreads; w++ {
		yStart := w * rowsPerWorker
		yEnd := min(yStart+rowsPerWorker, size)
		if yStart >= yEnd {
			continue
		}
		g.Go(func() error {
			tris, vols := t.castRows(yStart, yEnd, invViewProj, cameraPos, idBuffer)
			atomic.AddInt64(&numTriangles, tris)
			atomic.AddInt64(&numVolumeTests, vols)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	frame := rasterizer.NewEmptyFrame(size, size, false)
	copy(frame.ID, idBuffer)

	vis := visibility.FromIDBuffer(idBuffer, len(t.scene.Objects))
	return occ.Result{
		Visibility: vis,
		Frame:      frame,
		Stats: occ.EngineStats{
			NumTriangles:   int(numTriangles),
			NumVolumeTests: int(numVolumeTests),
		},
	}, nil
}

func (t *NaiveRaycasterTester) castRows(yStart, yEnd int, invViewProj geom.Mat4, cameraPos geom.Vec3, idBuffer []uint32) (numTriangles, numVolumeTests int64) {
	size := t.size
	for y := yStart; y < yEnd; y++ {
		for x := 0; x < size; x++ {
			ray := t.primaryRay(x, y, invViewProj, cameraPos)

			var nearestDepth float32
			nearestID := emptyID
			hasHit := false

			for objectID, obj := range t.scene.Objects {
				numVolumeTests++
				var maxDepth *float32
				if hasHit {
					maxDepth = &nearestDepth
				}
				if _, ok := geom.AABBRay(t.volumes[objectID], ray, maxDepth); !ok {
					continue
				}

				mesh := t.scene.MeshFor(obj)
				for _, tri := range mesh.Triangles {
					numTriangles++
					a := obj.Transform.TransformPoint(mesh.Vertices[tri.A])
					b := obj.Transform.TransformPoint(mesh.Vertices[tri.B])
					c := obj.Transform.TransformPoint(mesh.Vertices[tri.C])

					if hasHit {
						maxDepth = &nearestDepth
					}
					depth, ok := geom.TriangleRay(a, b, c, ray, maxDepth)
					if !ok {
						continue
					}
					hasHit = true
					nearestDepth = depth
					nearestID = uint32(objectID)
				}
			}

			idBuffer[y*size+x] = nearestID
		}
	}
	return numTriangles, numVolumeTests
}

// primaryRay unprojects the pixel center (x, y) through the inverse
// view-projection matrix to build the ray from the camera through that
// pixel.
func (t *NaiveRaycasterTester) primaryRay(x, y int, invViewProj geom.Mat4, cameraPos geom.Vec3) geom.Ray {
	size := float32(t.size)
	ndcX := (float32(x)+0.5)/size*2 - 1
	ndcY := (float32(y)+0.5)/size*2 - 1

	far := invViewProj.MulVec4(geom.V4(ndcX, ndcY, 1, 1)).PerspectiveDivide()
	dir := far.Sub(cameraPos)
	return geom.NewRay(cameraPos, dir)
}

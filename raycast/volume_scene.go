// Package raycast implements the naive raycaster occlusion engine: one
// primary ray per pixel, pre-screened against each object's
// world-space AABB, then tested exhaustively against every triangle of
// objects whose AABB the ray hits.
package raycast

import (
	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/occ"
	"github.com/sraesch/raycasting-occlusion/scene"
)

// VolumeScene is the raycaster's IndexedScene: the underlying scene
// plus one world-space AABB per object, computed during acceleration
// structure construction.
type VolumeScene struct {
	Scene   *scene.Scene
	Volumes []geom.AABB
}

// BuildAccelerationStructures computes each object's world-space AABB,
// reporting progress only when the integer percentage complete
// changes (matching the source benchmark's update-throttling
// convention, to avoid flooding the callback for large scenes), plus
// one final report at completion.
func (s *VolumeScene) BuildAccelerationStructures(progress occ.ProgressCallback) error {
	n := len(s.Scene.Objects)
	s.Volumes = make([]geom.AABB, n)

	lastPercent := -1
	for i, obj := range s.Scene.Objects {
		s.Volumes[i] = s.Scene.WorldAABB(obj)

		if progress != nil && n > 0 {
			percent := float32(i+1) / float32(n) * 100
			if int(percent) != lastPercent {
				lastPercent = int(percent)
				progress(i+1, n, percent, "naive_raycaster_occ")
			}
		}
	}
	if progress != nil {
		progress(n, n, 100, "naive_raycaster_occ")
	}
	return nil
}

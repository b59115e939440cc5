package scene

import "github.com/sraesch/raycasting-occlusion/geom"

// WorldAABB computes the world-space bounding box of one object by
// transforming every vertex of its mesh through the object's
// transform.
func (s *Scene) WorldAABB(obj Object) geom.AABB {
	mesh := s.MeshFor(obj)
	box := geom.EmptyAABB()
	for _, v := range mesh.Vertices {
		box = box.ExtendPoint(obj.Transform.TransformPoint(v))
	}
	return box
}

// WorldAABBs computes the world-space bounding box of every object in
// the scene, in object-ID order.
func (s *Scene) WorldAABBs() []geom.AABB {
	boxes := make([]geom.AABB, len(s.Objects))
	for i, obj := range s.Objects {
		boxes[i] = s.WorldAABB(obj)
	}
	return boxes
}

// Package scene defines the geometry data model shared by every
// occlusion-testing engine: meshes of triangles, objects that place a
// mesh instance in the world via an affine transform, and scenes that
// collect objects addressed by ordinal ID.
package scene

import (
	"fmt"

	"github.com/sraesch/raycasting-occlusion/geom"
)

// Triangle is a triple of vertex indices into a Mesh's Vertices slice.
type Triangle struct {
	A, B, C uint32
}

// Mesh is a triangle mesh: a flat vertex buffer and triangle index
// triples referencing it.
type Mesh struct {
	Vertices  []geom.Vec3
	Triangles []Triangle
}

// IsValid reports whether every triangle index references a vertex
// within bounds.
func (m *Mesh) IsValid() bool {
	n := uint32(len(m.Vertices))
	for _, tri := range m.Triangles {
		if tri.A >= n || tri.B >= n || tri.C >= n {
			return false
		}
	}
	return true
}

// Object places an instance of a mesh in world space.
type Object struct {
	MeshIndex uint32
	Transform geom.Mat3x4
}

// Scene is a collection of meshes and the objects instancing them.
// Object IDs are the object's ordinal position in Objects.
type Scene struct {
	Meshes  []Mesh
	Objects []Object
}

// IsValid reports whether every mesh is valid and every object
// references a mesh within bounds.
func (s *Scene) IsValid() bool {
	for i := range s.Meshes {
		if !s.Meshes[i].IsValid() {
			return false
		}
	}
	n := uint32(len(s.Meshes))
	for _, obj := range s.Objects {
		if obj.MeshIndex >= n {
			return false
		}
	}
	return true
}

// NumObjects returns the number of objects in the scene.
func (s *Scene) NumObjects() int {
	return len(s.Objects)
}

// MeshFor returns the mesh instanced by the given object.
func (s *Scene) MeshFor(obj Object) *Mesh {
	return &s.Meshes[obj.MeshIndex]
}

// Validate returns an error describing the first validity violation
// found, or nil if the scene is valid.
func (s *Scene) Validate() error {
	for i := range s.Meshes {
		n := uint32(len(s.Meshes[i].Vertices))
		for j, tri := range s.Meshes[i].Triangles {
			if tri.A >= n || tri.B >= n || tri.C >= n {
				return fmt.Errorf("mesh %d triangle %d references out-of-bounds vertex", i, j)
			}
		}
	}
	n := uint32(len(s.Meshes))
	for i, obj := range s.Objects {
		if obj.MeshIndex >= n {
			return fmt.Errorf("object %d references out-of-bounds mesh %d", i, obj.MeshIndex)
		}
	}
	return nil
}

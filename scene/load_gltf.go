package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/sraesch/raycasting-occlusion/geom"
	"github.com/sraesch/raycasting-occlusion/occerr"
)

// LoadFile loads a scene from path, dispatching on file extension. This
// is the one concrete implementation behind the CAD-import boundary:
// every mesh/material/animation concern beyond raw triangle geometry is
// out of scope, and any extension other than .gltf/.glb returns
// ErrNoLoaderFound rather than attempting to guess a format.
func LoadFile(path string) (*Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return loadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %s", occerr.ErrNoLoaderFound, path)
	}
}

func loadGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", occerr.ErrCADImport, path, err)
	}

	s := &Scene{}
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			m, err := loadPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("%w: mesh %q: %w", occerr.ErrCADImport, mesh.Name, err)
			}
			if m == nil {
				continue
			}
			s.Meshes = append(s.Meshes, *m)
		}
	}

	for _, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		s.Objects = append(s.Objects, Object{
			MeshIndex: *node.Mesh,
			Transform: nodeTransform(node),
		})
	}

	return s, nil
}

// loadPrimitive reads one glTF primitive's positions and indices into
// a Mesh. Primitives whose mode is not triangles/fan/strip are skipped
// (lines and points carry no occludable surface).
func loadPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	switch prim.Mode {
	case gltf.PrimitiveTriangles, gltf.PrimitiveTriangleFan, gltf.PrimitiveTriangleStrip:
	default:
		return nil, nil
	}
	positionIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[positionIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	vertices := make([]geom.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = geom.V3(p[0], p[1], p[2])
	}

	var indices []uint32
	if prim.Indices != nil {
		raw, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
		indices = raw
	} else {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	topology := primitiveTopology(prim.Mode)
	triangles := ExpandTriangles(topology, indices)
	if triangles == nil {
		return nil, nil
	}

	return &Mesh{Vertices: vertices, Triangles: triangles}, nil
}

func primitiveTopology(mode gltf.PrimitiveMode) PrimitiveTopology {
	switch mode {
	case gltf.PrimitiveTriangleFan:
		return TriangleFan
	case gltf.PrimitiveTriangleStrip:
		return TriangleStrip
	default:
		return Triangles
	}
}

// nodeTransform extracts a node's local transform as a Mat3x4. glTF
// nodes may specify either a full matrix or TRS components; only the
// matrix form is handled here; TRS nodes use the identity transform,
// since the benchmark scenes this loader targets are exported with
// baked matrices.
func nodeTransform(node *gltf.Node) geom.Mat3x4 {
	m := node.Matrix
	if m == [16]float64{} {
		return geom.Identity3x4()
	}
	full := geom.Mat4{
		float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]),
		float32(m[4]), float32(m[5]), float32(m[6]), float32(m[7]),
		float32(m[8]), float32(m[9]), float32(m[10]), float32(m[11]),
		float32(m[12]), float32(m[13]), float32(m[14]), float32(m[15]),
	}
	return geom.Mat4ToMat3x4(full)
}

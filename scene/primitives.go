package scene

// PrimitiveTopology describes how a flat index buffer expands into
// triangles, mirroring the small set of primitive modes a CAD/glTF
// importer hands off before geometry reaches a Mesh.
type PrimitiveTopology int

const (
	// Triangles expands three indices at a time, unchanged.
	Triangles PrimitiveTopology = iota
	// TriangleFan keeps the first index fixed and fans out across the
	// rest: (v0,v1,v2), (v0,v2,v3), (v0,v3,v4), ...
	TriangleFan
	// TriangleStrip alternates winding every triangle so that
	// consecutive triangles sharing an edge keep a consistent
	// front face: (v0,v1,v2), (v2,v1,v3), (v2,v3,v4), ...
	TriangleStrip
)

// ExpandTriangles expands indices under the given topology into a flat
// list of triangle index triples. Fewer than 3 indices yields no
// triangles.
func ExpandTriangles(topology PrimitiveTopology, indices []uint32) []Triangle {
	switch topology {
	case TriangleFan:
		return expandFan(indices)
	case TriangleStrip:
		return expandStrip(indices)
	default:
		return expandList(indices)
	}
}

func expandList(indices []uint32) []Triangle {
	var out []Triangle
	for i := 0; i+3 <= len(indices); i += 3 {
		out = append(out, Triangle{A: indices[i], B: indices[i+1], C: indices[i+2]})
	}
	return out
}

func expandFan(indices []uint32) []Triangle {
	if len(indices) < 3 {
		return nil
	}
	v0 := indices[0]
	var out []Triangle
	for k := 1; k+1 < len(indices); k++ {
		out = append(out, Triangle{A: v0, B: indices[k], C: indices[k+1]})
	}
	return out
}

func expandStrip(indices []uint32) []Triangle {
	if len(indices) < 3 {
		return nil
	}
	var out []Triangle
	prev2, prev1 := indices[0], indices[1]
	flip := false
	for i := 2; i < len(indices); i++ {
		cur := indices[i]
		if !flip {
			out = append(out, Triangle{A: prev2, B: prev1, C: cur})
		} else {
			out = append(out, Triangle{A: prev1, B: prev2, C: cur})
		}
		prev2, prev1 = prev1, cur
		flip = !flip
	}
	return out
}

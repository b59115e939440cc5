package scene

import (
	"reflect"
	"testing"
)

func TestExpandTrianglesList(t *testing.T) {
	got := ExpandTriangles(Triangles, []uint32{0, 1, 2, 3, 4, 5})
	want := []Triangle{{0, 1, 2}, {3, 4, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandTrianglesFan(t *testing.T) {
	got := ExpandTriangles(TriangleFan, []uint32{0, 1, 2, 3, 4})
	want := []Triangle{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandTrianglesStrip(t *testing.T) {
	got := ExpandTriangles(TriangleStrip, []uint32{0, 1, 2, 3, 4})
	want := []Triangle{{0, 1, 2}, {2, 1, 3}, {2, 3, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandTrianglesTooFewIndices(t *testing.T) {
	for _, topo := range []PrimitiveTopology{Triangles, TriangleFan, TriangleStrip} {
		if got := ExpandTriangles(topo, []uint32{0, 1}); got != nil {
			t.Errorf("topology %v: expected no triangles, got %v", topo, got)
		}
	}
}

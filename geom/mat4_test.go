package geom

import "testing"

func TestMat4InverseIdentity(t *testing.T) {
	inv, ok := Identity4().Inverse()
	if !ok {
		t.Fatal("identity should be invertible")
	}
	if inv != Identity4() {
		t.Errorf("inverse of identity = %v, want identity", inv)
	}
}

func TestMat4InverseSingular(t *testing.T) {
	var zero Mat4
	_, ok := zero.Inverse()
	if ok {
		t.Fatal("zero matrix should not be invertible")
	}
}

func TestMat3x4RoundTrip(t *testing.T) {
	m := Mat3x4{
		1, 0, 0, 5,
		0, 1, 0, 6,
		0, 0, 1, 7,
	}
	back := Mat4ToMat3x4(m.ToMat4())
	if back != m {
		t.Errorf("round trip = %v, want %v", back, m)
	}
}

func TestMat3x4TransformPoint(t *testing.T) {
	m := Mat3x4{
		1, 0, 0, 5,
		0, 1, 0, 6,
		0, 0, 1, 7,
	}
	got := m.TransformPoint(V3(1, 2, 3))
	want := V3(6, 8, 10)
	if got != want {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

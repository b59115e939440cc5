package rasterizer

import (
	"bytes"
	"strings"
	"testing"
)

func sampleFrame() *Frame {
	f := NewEmptyFrame(2, 2, true)
	f.ID[0] = 5
	f.Depth[0] = 0.1
	f.ID[3] = 6
	f.Depth[3] = 0.9
	return f
}

func TestFrameBinaryRoundTrip(t *testing.T) {
	f := sampleFrame()
	var buf bytes.Buffer
	if err := f.WriteBinary(&buf); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	got, err := ReadBinaryFrame(&buf)
	if err != nil {
		t.Fatalf("ReadBinaryFrame: %v", err)
	}
	if got.Width != f.Width || got.Height != f.Height || got.HasDepth != f.HasDepth {
		t.Fatalf("shape mismatch: got %+v, want %+v", got, f)
	}
	for i := range f.ID {
		if got.ID[i] != f.ID[i] {
			t.Errorf("id[%d] = %d, want %d", i, got.ID[i], f.ID[i])
		}
		if got.Depth[i] != f.Depth[i] {
			t.Errorf("depth[%d] = %v, want %v", i, got.Depth[i], f.Depth[i])
		}
	}
}

func TestFramePGMAllEmptyFallsBackToMidGray(t *testing.T) {
	f := NewEmptyFrame(2, 2, true)
	var buf bytes.Buffer
	if err := f.WritePGM(&buf); err != nil {
		t.Fatalf("WritePGM: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "P2\n2 2\n255\n") {
		t.Fatalf("unexpected PGM header: %q", out)
	}
	if !strings.Contains(out, "128") {
		t.Errorf("expected mid-gray fallback, got %q", out)
	}
}

func TestFramePGMMixedEmptyAndNonEmpty(t *testing.T) {
	f := sampleFrame() // id[0]=5 depth=0.1 (near), id[3]=6 depth=0.9 (far), id[1,2] empty
	var buf bytes.Buffer
	if err := f.WritePGM(&buf); err != nil {
		t.Fatalf("WritePGM: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header is 3 lines, then one value per pixel in row-major order.
	if lines[3] != "255" {
		t.Errorf("near pixel (depth 0.1, min) = %q, want 255 (bright)", lines[3])
	}
	if lines[4] != "0" {
		t.Errorf("empty pixel = %q, want 0", lines[4])
	}
	if lines[5] != "0" {
		t.Errorf("empty pixel = %q, want 0", lines[5])
	}
	if lines[6] != "0" {
		t.Errorf("far pixel (depth 0.9, max) = %q, want 0 (dark)", lines[6])
	}
}

func TestFramePGMMinEqualsMaxUsesMidGray(t *testing.T) {
	f := NewEmptyFrame(1, 2, true)
	f.ID[0] = 1
	f.Depth[0] = 0.5
	f.ID[1] = 2
	f.Depth[1] = 0.5
	var buf bytes.Buffer
	if err := f.WritePGM(&buf); err != nil {
		t.Fatalf("WritePGM: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[3] != "128" || lines[4] != "128" {
		t.Errorf("expected both equal-depth pixels to render 128, got %q, %q", lines[3], lines[4])
	}
}

func TestFramePPMUsesPaletteAndBlackForEmpty(t *testing.T) {
	f := sampleFrame()
	palette := func(id uint32) [3]uint8 {
		if id == 5 {
			return [3]uint8{255, 0, 0}
		}
		return [3]uint8{0, 255, 0}
	}
	var buf bytes.Buffer
	if err := f.WritePPM(&buf, palette); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header is 3 lines, then one line per pixel in row-major order
	if lines[3] != "255 0 0" {
		t.Errorf("pixel 0 = %q, want palette color for id 5", lines[3])
	}
	if lines[4] != "0 0 0" {
		t.Errorf("pixel 1 = %q, want black for empty pixel", lines[4])
	}
}

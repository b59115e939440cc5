// Package rasterizer implements the CPU triangle scan-converter: an
// integer-quantized depth buffer plus an object-ID buffer, filled via
// classic top-flat/bottom-flat scanline decomposition (not
// barycentric interpolation).
package rasterizer

import "math"

// emptyID is the ID-buffer sentinel for a pixel no triangle has
// touched.
const emptyID = 0xFFFFFFFF

// ScreenVertex is a vertex already projected into screen space: X and Y
// in pixel coordinates, Z a normalized depth in [0, 1].
type ScreenVertex struct {
	X, Y, Z float32
}

// Rasterizer rasterizes triangles into a fixed-size integer depth
// buffer and object-ID buffer. D selects the depth buffer's storage
// precision.
type Rasterizer[D DepthValue] struct {
	width, height int
	depth         []D
	id            []uint32
}

// New creates a rasterizer sized to width x height, with the depth
// buffer reset to D's maximum value and the ID buffer reset to empty.
func New[D DepthValue](width, height int) *Rasterizer[D] {
	r := &Rasterizer[D]{width: width, height: height}
	r.depth = make([]D, width*height)
	r.id = make([]uint32, width*height)
	r.Clear()
	return r
}

// Width returns the buffer width in pixels.
func (r *Rasterizer[D]) Width() int { return r.width }

// Height returns the buffer height in pixels.
func (r *Rasterizer[D]) Height() int { return r.height }

// Clear resets the depth buffer to the maximum depth value and the ID
// buffer to empty, ready for the next frame. The original Rust source
// this rasterizer is modeled on had a bug here: it called the
// equivalent of truncating the depth buffer to length zero instead of
// resetting its contents. This implementation resets both buffers in
// place.
func (r *Rasterizer[D]) Clear() {
	max := depthMax[D]()
	for i := range r.depth {
		r.depth[i] = max
		r.id[i] = emptyID
	}
}

// Rasterize fills the triangle (v0, v1, v2), already projected into
// screen space, tagging every covered pixel that passes the depth test
// with objectID.
func (r *Rasterizer[D]) Rasterize(objectID uint32, v0, v1, v2 ScreenVertex) {
	// Sort by Y ascending.
	p0, p1, p2 := v0, v1, v2
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	if p1.Y > p2.Y {
		p1, p2 = p2, p1
	}
	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	r.fillTriangle(objectID, p0, p1, p2)
}

func (r *Rasterizer[D]) fillTriangle(objectID uint32, p0, p1, p2 ScreenVertex) {
	y0 := int(math.Round(float64(p0.Y)))
	y1 := int(math.Round(float64(p1.Y)))
	y2 := int(math.Round(float64(p2.Y)))

	switch {
	case y0 == y2:
		// Degenerate: all three vertices round to the same scanline.
		// Draw it as a single horizontal run from the lowest to the
		// highest x, carrying depth from those two extreme vertices.
		if y0 < 0 || y0 > r.height-1 {
			return
		}
		lo, hi := p0, p0
		for _, p := range [...]ScreenVertex{p1, p2} {
			if p.X < lo.X {
				lo = p
			}
			if p.X > hi.X {
				hi = p
			}
		}
		r.drawScanline(objectID, y0, lo.X, lo.Z, hi.X, hi.Z)
	case y0 == y1:
		r.fillTopFlat(objectID, p0, p1, p2)
	case y1 == y2:
		r.fillBottomFlat(objectID, p0, p1, p2)
	default:
		lambda := (p1.Y - p0.Y) / (p2.Y - p0.Y)
		p3 := ScreenVertex{
			X: lerp32(p0.X, p2.X, lambda),
			Y: p1.Y,
			Z: lerp32(p0.Z, p2.Z, lambda),
		}
		r.fillBottomFlat(objectID, p0, p1, p3)
		r.fillTopFlat(objectID, p1, p3, p2)
	}
}

// fillBottomFlat fills a triangle whose bottom edge (p1, p2) is flat,
// with apex p0 above it.
func (r *Rasterizer[D]) fillBottomFlat(objectID uint32, p0, p1, p2 ScreenVertex) {
	y0 := int(math.Round(float64(p0.Y)))
	y1 := int(math.Round(float64(p1.Y)))
	if y1 <= y0 {
		return
	}
	yStart := clampInt(y0, 0, r.height-1)
	yEnd := clampInt(y1, 0, r.height-1)
	for y := yStart; y <= yEnd; y++ {
		yf := clampf32((float32(y)-p0.Y)/(p1.Y-p0.Y), 0, 1)
		x1 := lerp32(p0.X, p1.X, yf)
		z1 := lerp32(p0.Z, p1.Z, yf)
		x2 := lerp32(p0.X, p2.X, yf)
		z2 := lerp32(p0.Z, p2.Z, yf)
		r.drawScanline(objectID, y, x1, z1, x2, z2)
	}
}

// fillTopFlat fills a triangle whose top edge (p0, p1) is flat, with
// apex p2 below it.
func (r *Rasterizer[D]) fillTopFlat(objectID uint32, p0, p1, p2 ScreenVertex) {
	y0 := int(math.Round(float64(p0.Y)))
	y2 := int(math.Round(float64(p2.Y)))
	if y2 <= y0 {
		return
	}
	yStart := clampInt(y0, 0, r.height-1)
	yEnd := clampInt(y2, 0, r.height-1)
	for y := yStart; y <= yEnd; y++ {
		yf := clampf32((float32(y)-p0.Y)/(p2.Y-p0.Y), 0, 1)
		x1 := lerp32(p0.X, p2.X, yf)
		z1 := lerp32(p0.Z, p2.Z, yf)
		x2 := lerp32(p1.X, p2.X, yf)
		z2 := lerp32(p1.Z, p2.Z, yf)
		r.drawScanline(objectID, y, x1, z1, x2, z2)
	}
}

func (r *Rasterizer[D]) drawScanline(objectID uint32, y int, x0, z0, x1, z1 float32) {
	xi0 := int(math.Round(float64(x0)))
	xi1 := int(math.Round(float64(x1)))
	if xi0 > xi1 {
		xi0, xi1 = xi1, xi0
		z0, z1 = z1, z0
	}

	xStart := clampInt(xi0, 0, r.width-1)
	xEnd := clampInt(xi1, 0, r.width-1)

	var dd float32
	if xi1 != xi0 {
		dd = (z1 - z0) / float32(xi1-xi0)
	}

	for x := xStart; x <= xEnd; x++ {
		depth := z0 + float32(x-xi0)*dd
		r.drawPixel(objectID, x, y, depth)
	}
}

func (r *Rasterizer[D]) drawPixel(objectID uint32, x, y int, depth float32) {
	if math.IsNaN(float64(depth)) || math.IsInf(float64(depth), 0) {
		return
	}
	if depth < 0 || depth > 1 {
		return
	}
	idx := y*r.width + x
	dq := quantize[D](depth)
	if dq < r.depth[idx] {
		r.depth[idx] = dq
		r.id[idx] = objectID
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

package rasterizer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/sraesch/raycasting-occlusion/occerr"
)

// frameEmptyID marks a pixel with no triangle coverage in the exported
// binary format; equal to the rasterizer's internal empty sentinel.
const frameEmptyID uint32 = emptyID

// Frame is a dequantized snapshot of a rasterizer or raycaster buffer:
// an object-ID buffer, with an optional normalized depth buffer.
type Frame struct {
	Width, Height int
	HasDepth      bool
	ID            []uint32  // frameEmptyID marks an untouched pixel
	Depth         []float32 // only populated when HasDepth is true
}

// NewEmptyFrame allocates a frame of the given size with every pixel
// empty.
func NewEmptyFrame(width, height int, hasDepth bool) *Frame {
	f := &Frame{Width: width, Height: height, HasDepth: hasDepth}
	f.ID = make([]uint32, width*height)
	for i := range f.ID {
		f.ID[i] = frameEmptyID
	}
	if hasDepth {
		f.Depth = make([]float32, width*height)
	}
	return f
}

// GetFrame dequantizes the rasterizer's buffers into a Frame.
func GetFrame[D DepthValue](r *Rasterizer[D]) *Frame {
	f := NewEmptyFrame(r.width, r.height, true)
	for i, id := range r.id {
		f.ID[i] = id
		if id != emptyID {
			f.Depth[i] = dequantize[D](r.depth[i])
		} else {
			f.Depth[i] = 1
		}
	}
	return f
}

// WriteBinary writes the frame in the benchmark's native binary
// format: little-endian u32 width, height, has_depth (0/1), then
// width*height u32 object IDs (frameEmptyID = empty), followed by
// width*height f32 depths only when HasDepth is true.
func (f *Frame) WriteBinary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	hasDepth := uint32(0)
	if f.HasDepth {
		hasDepth = 1
	}
	for _, v := range []uint32{uint32(f.Width), uint32(f.Height), hasDepth} {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("%w: writing frame header: %w", occerr.ErrIO, err)
		}
	}
	for _, id := range f.ID {
		if err := binary.Write(bw, binary.LittleEndian, id); err != nil {
			return fmt.Errorf("%w: writing id buffer: %w", occerr.ErrIO, err)
		}
	}
	if f.HasDepth {
		for _, d := range f.Depth {
			if err := binary.Write(bw, binary.LittleEndian, d); err != nil {
				return fmt.Errorf("%w: writing depth buffer: %w", occerr.ErrIO, err)
			}
		}
	}
	return bw.Flush()
}

// ReadBinaryFrame reads a frame previously written by WriteBinary.
func ReadBinaryFrame(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)
	var width, height, hasDepth uint32
	for _, dst := range []*uint32{&width, &height, &hasDepth} {
		if err := binary.Read(br, binary.LittleEndian, dst); err != nil {
			return nil, fmt.Errorf("%w: reading frame header: %w", occerr.ErrDeserialization, err)
		}
	}
	f := &Frame{Width: int(width), Height: int(height), HasDepth: hasDepth != 0}
	f.ID = make([]uint32, width*height)
	for i := range f.ID {
		if err := binary.Read(br, binary.LittleEndian, &f.ID[i]); err != nil {
			return nil, fmt.Errorf("%w: reading id buffer: %w", occerr.ErrDeserialization, err)
		}
	}
	if f.HasDepth {
		f.Depth = make([]float32, width*height)
		for i := range f.Depth {
			if err := binary.Read(br, binary.LittleEndian, &f.Depth[i]); err != nil {
				return nil, fmt.Errorf("%w: reading depth buffer: %w", occerr.ErrDeserialization, err)
			}
		}
	}
	return f, nil
}

// WritePGM writes the depth buffer as an ASCII (P2) grayscale PGM
// image. Empty pixels are excluded from the min/max normalization
// range; if every pixel is empty, mid-gray (128) is used throughout.
func (f *Frame) WritePGM(w io.Writer) error {
	if !f.HasDepth {
		return fmt.Errorf("%w: frame has no depth buffer to export", occerr.ErrSerialization)
	}
	minD, maxD := float32(math.Inf(1)), float32(math.Inf(-1))
	any := false
	for i, id := range f.ID {
		if id == frameEmptyID {
			continue
		}
		any = true
		d := f.Depth[i]
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P2\n%d %d\n255\n", f.Width, f.Height)
	for i, id := range f.ID {
		var v int
		switch {
		case !any:
			v = 128
		case id == frameEmptyID:
			v = 0
		case maxD == minD:
			v = 128
		default:
			v = int(math.Round(float64(1-(f.Depth[i]-minD)/(maxD-minD)) * 255))
		}
		fmt.Fprintf(bw, "%d\n", v)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing pgm: %w", occerr.ErrIO, err)
	}
	return nil
}

// WritePPM writes the ID buffer as an ASCII (P3) RGB PPM image, using
// palette to map each distinct object ID to a color. Empty pixels are
// rendered black.
func (f *Frame) WritePPM(w io.Writer, palette func(objectID uint32) [3]uint8) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height)
	for _, id := range f.ID {
		var rgb [3]uint8
		if id != frameEmptyID {
			rgb = palette(id)
		}
		fmt.Fprintf(bw, "%d %d %d\n", rgb[0], rgb[1], rgb[2])
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing ppm: %w", occerr.ErrIO, err)
	}
	return nil
}

// WritePNG writes the ID buffer as a PNG image, using palette to map
// object IDs to colors. This export is not part of the benchmark's
// external wire formats; it exists purely for convenient visual
// inspection of a run's output.
func (f *Frame) WritePNG(w io.Writer, palette func(objectID uint32) [3]uint8) error {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			id := f.ID[y*f.Width+x]
			var rgb [3]uint8
			if id != frameEmptyID {
				rgb = palette(id)
			}
			img.Set(x, y, color.RGBA{rgb[0], rgb[1], rgb[2], 255})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: writing png: %w", occerr.ErrIO, err)
	}
	return nil
}

// Package sample converts still images into timed video samples for a
// display pipeline.
//
// Pixel data is carried in a fixed 32-bit BGRA layout with no chroma
// subsampling, matching what display-timed video layers accept. Samples are
// transient: one is produced per tick, handed to the display surface, and
// never retained.
package sample

import (
	"errors"
	"fmt"
	"image"
)

// bytesPerPixel is the size of one BGRA pixel.
const bytesPerPixel = 4

// Encoding errors. All of them mean "no sample this tick"; callers drop the
// frame and continue.
var (
	// ErrNoImage indicates the encoder was given no image data.
	ErrNoImage = errors.New("sample: no image data")

	// ErrBadDimensions indicates a pixel buffer cannot be allocated for the
	// requested size.
	ErrBadDimensions = errors.New("sample: invalid buffer dimensions")
)

// PixelBuffer holds one frame of 32-bit BGRA pixel data.
type PixelBuffer struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// NewPixelBuffer allocates a BGRA pixel buffer of the given dimensions.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	stride := width * bytesPerPixel
	return &PixelBuffer{
		Pix:    make([]byte, stride*height),
		Width:  width,
		Height: height,
		Stride: stride,
	}, nil
}

// fillFromRGBA swizzles RGBA pixel data into the buffer's BGRA layout.
// The image must match the buffer dimensions.
func (b *PixelBuffer) fillFromRGBA(img *image.RGBA) {
	w, h := b.Width, b.Height
	min := img.Bounds().Min
	for y := 0; y < h; y++ {
		row := img.PixOffset(min.X, min.Y+y)
		src := img.Pix[row : row+w*bytesPerPixel]
		dst := b.Pix[y*b.Stride : y*b.Stride+w*bytesPerPixel]
		for x := 0; x < w*bytesPerPixel; x += bytesPerPixel {
			dst[x+0] = src[x+2] // B
			dst[x+1] = src[x+1] // G
			dst[x+2] = src[x+0] // R
			dst[x+3] = src[x+3] // A
		}
	}
}

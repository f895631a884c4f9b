package sample

import (
	"image"
	"time"

	"golang.org/x/image/draw"
)

// DefaultTickRate is the frame rate assumed when an Encoder has none set.
const DefaultTickRate = 30

// FrameSample is one timed unit of pixel data for the display pipeline.
//
// The presentation offset is always zero: display-timed layers render
// samples as they arrive, so only the duration carries timing information.
// The decode timestamp is always invalid for uncompressed frames.
type FrameSample struct {
	Buffer             *PixelBuffer
	PresentationOffset time.Duration

	// Duration is the display duration of the frame. Valid only when
	// HasDuration is true; one-shot samples carry no duration.
	Duration    time.Duration
	HasDuration bool
}

// Encoder wraps still images into FrameSamples.
//
// TickRate is the periodic frame rate in updates per second; it determines
// the duration stamped on periodic samples. TargetSize optionally fixes the
// output buffer dimensions; images of a different size are scaled into the
// buffer. A zero TargetSize means the buffer matches the source image.
type Encoder struct {
	TickRate   int
	TargetSize image.Point
}

// EncodePeriodic wraps img as a sample for continuous frame delivery:
// duration = 1/TickRate, presentation offset zero.
func (e *Encoder) EncodePeriodic(img *image.RGBA) (*FrameSample, error) {
	s, err := e.encode(img)
	if err != nil {
		return nil, err
	}
	rate := e.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	s.Duration = time.Second / time.Duration(rate)
	s.HasDuration = true
	return s, nil
}

// EncodeOneShot wraps img as a single injected frame with no duration,
// used for the first paint before periodic delivery starts.
func (e *Encoder) EncodeOneShot(img *image.RGBA) (*FrameSample, error) {
	return e.encode(img)
}

func (e *Encoder) encode(img *image.RGBA) (*FrameSample, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	srcW, srcH := img.Bounds().Dx(), img.Bounds().Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, ErrNoImage
	}

	w, h := srcW, srcH
	if e.TargetSize != (image.Point{}) {
		w, h = e.TargetSize.X, e.TargetSize.Y
	}

	buf, err := NewPixelBuffer(w, h)
	if err != nil {
		return nil, err
	}

	if w != srcW || h != srcH {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}
	buf.fillFromRGBA(img)

	return &FrameSample{Buffer: buf}, nil
}

package imageopt

import "fmt"

const (
	// DefaultMaxBitmapDimension bounds the larger side of a decoded bitmap.
	DefaultMaxBitmapDimension float32 = 2048

	// DefaultRoundUpFraction is the fraction of the target size above which
	// the decoder rounds the sample size up instead of down.
	DefaultRoundUpFraction float32 = 2.0 / 3.0
)

// ResizeOptions describes the target size of a decoded image.
type ResizeOptions struct {
	// Width is the target width in pixels.
	Width int

	// Height is the target height in pixels.
	Height int

	// MaxBitmapDimension caps the larger side of the decoded bitmap.
	MaxBitmapDimension float32

	// RoundUpFraction controls sample-size rounding during downsampling.
	RoundUpFraction float32
}

// Resize returns resize options for width x height with default limits.
func Resize(width, height int) ResizeOptions {
	return ResizeOptions{
		Width:              width,
		Height:             height,
		MaxBitmapDimension: DefaultMaxBitmapDimension,
		RoundUpFraction:    DefaultRoundUpFraction,
	}
}

// ForSquareSize returns resize options for a size x size target.
func ForSquareSize(size int) ResizeOptions {
	return Resize(size, size)
}

// ForDimensions returns resize options for width x height, or nil when
// either dimension is not positive.
func ForDimensions(width, height int) *ResizeOptions {
	if width <= 0 || height <= 0 {
		return nil
	}
	r := Resize(width, height)
	return &r
}

// Hash returns a stable hash consistent with ==.
func (r ResizeOptions) Hash() uint64 {
	h := newHasher('R')
	h.int(r.Width)
	h.int(r.Height)
	h.float32(r.MaxBitmapDimension)
	h.float32(r.RoundUpFraction)
	return h.sum()
}

func (r ResizeOptions) String() string {
	return fmt.Sprintf("%dx%d/max=%g/round=%g", r.Width, r.Height, r.MaxBitmapDimension, r.RoundUpFraction)
}

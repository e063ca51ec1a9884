package imageopt

import (
	"fmt"
	"time"
)

// BitmapConfig is the pixel format of a decoded bitmap.
type BitmapConfig int

const (
	// ARGB8888 stores each pixel in four bytes.
	ARGB8888 BitmapConfig = iota
	// RGB565 stores each pixel in two bytes without alpha.
	RGB565
	// Alpha8 stores only the alpha channel.
	Alpha8
	// RGBAF16 stores each channel as a half float.
	RGBAF16
)

func (c BitmapConfig) String() string {
	switch c {
	case ARGB8888:
		return "argb8888"
	case RGB565:
		return "rgb565"
	case Alpha8:
		return "alpha8"
	case RGBAF16:
		return "rgbaf16"
	default:
		return "unknown"
	}
}

// DecodeOptions controls how encoded bytes are decoded.
type DecodeOptions struct {
	// MinDecodeInterval is the minimum time between progressive decodes.
	MinDecodeInterval time.Duration

	// MaxDimensionPx caps the decoded dimension for animated frames.
	// Zero means no cap.
	MaxDimensionPx int

	// DecodePreviewFrame decodes a single preview frame of animated images.
	DecodePreviewFrame bool

	// UseLastFrameForPreview uses the last frame instead of the first one
	// when DecodePreviewFrame is set.
	UseLastFrameForPreview bool

	// DecodeAllFrames decodes every frame of animated images up front.
	DecodeAllFrames bool

	// ForceStaticImage decodes animated images as a single static frame.
	ForceStaticImage bool

	// BitmapConfig is the pixel format of the decoded bitmap.
	BitmapConfig BitmapConfig
}

// Defaults returns the default decode options.
func Defaults() DecodeOptions {
	return DecodeOptions{
		MinDecodeInterval: 100 * time.Millisecond,
		BitmapConfig:      ARGB8888,
	}
}

// Hash returns a stable hash consistent with ==.
func (o DecodeOptions) Hash() uint64 {
	h := newHasher('D')
	h.int(int(o.MinDecodeInterval))
	h.int(o.MaxDimensionPx)
	h.bool(o.DecodePreviewFrame)
	h.bool(o.UseLastFrameForPreview)
	h.bool(o.DecodeAllFrames)
	h.bool(o.ForceStaticImage)
	h.int(int(o.BitmapConfig))
	return h.sum()
}

func (o DecodeOptions) String() string {
	return fmt.Sprintf("interval=%s/maxdim=%d/preview=%t/last=%t/all=%t/static=%t/config=%s",
		o.MinDecodeInterval, o.MaxDimensionPx, o.DecodePreviewFrame, o.UseLastFrameForPreview,
		o.DecodeAllFrames, o.ForceStaticImage, o.BitmapConfig)
}

package request

import (
	"github.com/jonwraymond/imagecache/imageopt"
)

// ImageRequest is an immutable description of one image fetch.
type ImageRequest struct {
	source        string
	resize        *imageopt.ResizeOptions
	rotation      *imageopt.RotationOptions
	decode        *imageopt.DecodeOptions
	postprocessor Postprocessor
}

// Option configures an ImageRequest.
type Option func(*ImageRequest)

// New creates a request for source.
//
// Rotation defaults to imageopt.AutoRotate and decode options to
// imageopt.Defaults. Resize is absent unless set.
func New(source string, opts ...Option) *ImageRequest {
	rotation := imageopt.AutoRotate()
	decode := imageopt.Defaults()
	r := &ImageRequest{
		source:   source,
		rotation: &rotation,
		decode:   &decode,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithResize sets the resize options. A nil value leaves resize absent.
func WithResize(resize *imageopt.ResizeOptions) Option {
	return func(r *ImageRequest) {
		r.resize = clone(resize)
	}
}

// WithRotation sets the rotation options. A nil value leaves rotation absent.
func WithRotation(rotation *imageopt.RotationOptions) Option {
	return func(r *ImageRequest) {
		r.rotation = clone(rotation)
	}
}

// WithDecode sets the decode options. A nil value leaves them absent.
func WithDecode(decode *imageopt.DecodeOptions) Option {
	return func(r *ImageRequest) {
		r.decode = clone(decode)
	}
}

// WithPostprocessor attaches a postprocessor. A nil value, including a
// typed nil, leaves the request without one.
func WithPostprocessor(p Postprocessor) Option {
	return func(r *ImageRequest) {
		if IsNil(p) {
			p = nil
		}
		r.postprocessor = p
	}
}

// SourceURI returns the source identity.
func (r *ImageRequest) SourceURI() string { return r.source }

// ResizeOptions returns the resize options, or nil.
func (r *ImageRequest) ResizeOptions() *imageopt.ResizeOptions { return clone(r.resize) }

// RotationOptions returns the rotation options, or nil.
func (r *ImageRequest) RotationOptions() *imageopt.RotationOptions { return clone(r.rotation) }

// DecodeOptions returns the decode options, or nil.
func (r *ImageRequest) DecodeOptions() *imageopt.DecodeOptions { return clone(r.decode) }

// Postprocessor returns the attached postprocessor, or nil.
func (r *ImageRequest) Postprocessor() Postprocessor { return r.postprocessor }

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

package keypolicy

import (
	"sync"

	"github.com/jonwraymond/imagecache/cachekey"
	"github.com/jonwraymond/imagecache/imageopt"
	"github.com/jonwraymond/imagecache/request"
)

// Request is the read-only view of a request that key derivation needs.
// *request.ImageRequest implements it.
type Request interface {
	SourceURI() string
	ResizeOptions() *imageopt.ResizeOptions
	RotationOptions() *imageopt.RotationOptions
	DecodeOptions() *imageopt.DecodeOptions
	Postprocessor() request.Postprocessor
}

// Factory derives cache keys for the image cache tiers.
//
// Contract:
// - Determinism: equal requests produce equal keys; callerContext is ignored.
// - Purity: no I/O, no shared mutable state, never fails.
// - Concurrency: implementations must be safe for concurrent use.
type Factory interface {
	// BitmapKey returns the decoded bitmap tier key: canonical source,
	// resize, rotation and decode options, no postprocessor fields.
	BitmapKey(req Request, callerContext any) cachekey.Key

	// PostprocessedBitmapKey returns the postprocessed tier key. Without a
	// postprocessor it equals BitmapKey for the same request.
	PostprocessedBitmapKey(req Request, callerContext any) cachekey.Key

	// EncodedKey returns the encoded bytes tier key for the request source.
	EncodedKey(req Request, callerContext any) cachekey.Key

	// EncodedKeyForSource returns the encoded bytes tier key for source,
	// which may differ from the request's own (e.g. after a redirect).
	EncodedKeyForSource(req Request, source string, callerContext any) cachekey.Key
}

// DefaultFactory is the stock Factory. It is immutable after construction.
type DefaultFactory struct {
	canonicalize Canonicalizer
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithCanonicalizer sets the source canonicalizer. Nil keeps Identity.
func WithCanonicalizer(c Canonicalizer) Option {
	return func(f *DefaultFactory) {
		if c != nil {
			f.canonicalize = c
		}
	}
}

// NewDefaultFactory creates a factory.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{canonicalize: Identity}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFactory = sync.OnceValue(func() *DefaultFactory {
	return NewDefaultFactory()
})

// Default returns the process-wide shared factory. It is constructed on
// first use and the same instance is returned to every caller.
func Default() *DefaultFactory {
	return defaultFactory()
}

// BitmapKey implements Factory.
func (f *DefaultFactory) BitmapKey(req Request, _ any) cachekey.Key {
	return cachekey.NewBitmapKey(
		f.canonicalize(req.SourceURI()),
		req.ResizeOptions(),
		req.RotationOptions(),
		req.DecodeOptions(),
		nil,
	)
}

// PostprocessedBitmapKey implements Factory.
func (f *DefaultFactory) PostprocessedBitmapKey(req Request, _ any) cachekey.Key {
	var component *cachekey.PostprocessorComponent
	if p := req.Postprocessor(); !request.IsNil(p) {
		component = &cachekey.PostprocessorComponent{
			Key:  p.CacheKey(),
			Name: p.Name(),
		}
	}
	return cachekey.NewBitmapKey(
		f.canonicalize(req.SourceURI()),
		req.ResizeOptions(),
		req.RotationOptions(),
		req.DecodeOptions(),
		component,
	)
}

// EncodedKey implements Factory.
func (f *DefaultFactory) EncodedKey(req Request, callerContext any) cachekey.Key {
	return f.EncodedKeyForSource(req, req.SourceURI(), callerContext)
}

// EncodedKeyForSource implements Factory.
func (f *DefaultFactory) EncodedKeyForSource(_ Request, source string, _ any) cachekey.Key {
	return cachekey.NewSimpleKey(f.canonicalize(source))
}

// CanonicalSource returns the canonical form of source under this factory.
func (f *DefaultFactory) CanonicalSource(source string) string {
	return f.canonicalize(source)
}

var _ Factory = (*DefaultFactory)(nil)

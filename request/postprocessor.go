package request

import (
	"fmt"

	"github.com/jonwraymond/imagecache/cachekey"
)

// Postprocessor is a post-decode transform that participates in cache
// key derivation.
//
// Contract:
// - Name is a stable, globally unique identity label. The first concrete
// type to register a label owns it; a pipeline registers every
// postprocessor it sees and rejects a second type reusing the label.
// - CacheKey returns the explicit key component distinguishing
// differently-parameterized instances, or nil when there is none.
// - Both methods are pure and safe for concurrent use.
type Postprocessor interface {
	Name() string
	CacheKey() cachekey.Key
}

// Blur is a box blur postprocessor.
type Blur struct {
	Radius     int
	Iterations int
}

// Name returns the identity label of Blur.
func (Blur) Name() string { return "imagecache.blur" }

// CacheKey distinguishes blurs by radius and iteration count.
func (b Blur) CacheKey() cachekey.Key {
	return cachekey.NewSimpleKey(fmt.Sprintf("blur:r=%d,i=%d", b.Radius, b.Iterations))
}

// RoundAsCircle crops the bitmap to a circle.
type RoundAsCircle struct {
	AntiAliased bool
}

// Name returns the identity label of RoundAsCircle.
func (RoundAsCircle) Name() string { return "imagecache.round_as_circle" }

// CacheKey distinguishes anti-aliased and aliased rounding.
func (r RoundAsCircle) CacheKey() cachekey.Key {
	if r.AntiAliased {
		return cachekey.NewSimpleKey("round_as_circle:anti_aliased")
	}
	return cachekey.NewSimpleKey("round_as_circle")
}

// Grayscale desaturates the bitmap. It has no parameters and so no
// explicit key component.
type Grayscale struct{}

// Name returns the identity label of Grayscale.
func (Grayscale) Name() string { return "imagecache.grayscale" }

// CacheKey returns nil.
func (Grayscale) CacheKey() cachekey.Key { return nil }

var (
	_ Postprocessor = Blur{}
	_ Postprocessor = RoundAsCircle{}
	_ Postprocessor = Grayscale{}
)

func init() {
	DefaultRegistry.MustRegister(Blur{})
	DefaultRegistry.MustRegister(RoundAsCircle{})
	DefaultRegistry.MustRegister(Grayscale{})
}

package cachekey

import (
	"crypto/sha1"
	"encoding/base64"
)

// Kind identifies the variant of a Key.
type Kind int

const (
	// KindSimple is a SimpleKey.
	KindSimple Kind = iota
	// KindBitmap is a BitmapKey.
	KindBitmap
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindBitmap:
		return "bitmap"
	default:
		return "unknown"
	}
}

// Key addresses an entry in a cache tier.
//
// Contract:
// - Immutability: a Key never changes after construction.
// - Equality: Equal is reflexive, symmetric and transitive; Hash is equal
// for equal keys.
// - Concurrency: keys are safe to share between goroutines.
type Key interface {
	// Kind returns the variant of the key.
	Kind() Kind

	// Equal reports whether other addresses the same entry.
	Equal(other Key) bool

	// Hash returns a 64-bit hash consistent with Equal.
	Hash() uint64

	// String returns an unambiguous textual form: distinct keys never
	// share a String.
	String() string

	// URIString returns the source identity the key was derived from.
	URIString() string

	// ContainsURI reports whether the key's source identity contains uri.
	ContainsURI(uri string) bool

	sealed()
}

// Equal reports whether a and b are equal keys. Two nil keys are equal.
func Equal(a, b Key) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// ResourceID returns the name under which a persisted tier stores the
// entry for k: the URL-safe, unpadded base64 SHA-1 of k.URIString().
func ResourceID(k Key) string {
	sum := sha1.Sum([]byte(k.URIString()))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

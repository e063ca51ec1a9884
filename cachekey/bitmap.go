package cachekey

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jonwraymond/imagecache/imageopt"
)

// PostprocessorComponent is the postprocessor part of a BitmapKey.
//
// A nil *PostprocessorComponent means no postprocessor was applied. A
// non-nil one always carries the postprocessor's identity Name; Key is the
// explicit component the postprocessor contributed, or nil.
type PostprocessorComponent struct {
	Key  Key
	Name string
}

// BitmapKey is the composite key of the bitmap tiers.
type BitmapKey struct {
	source        string
	resize        *imageopt.ResizeOptions
	rotation      *imageopt.RotationOptions
	decode        *imageopt.DecodeOptions
	postprocessor *PostprocessorComponent
	hash          uint64
}

// NewBitmapKey builds a composite key. Option pointers may be nil for
// absent fields; the pointed-to values are copied.
func NewBitmapKey(
	source string,
	resize *imageopt.ResizeOptions,
	rotation *imageopt.RotationOptions,
	decode *imageopt.DecodeOptions,
	postprocessor *PostprocessorComponent,
) *BitmapKey {
	k := &BitmapKey{source: source}
	if resize != nil {
		r := *resize
		k.resize = &r
	}
	if rotation != nil {
		r := *rotation
		k.rotation = &r
	}
	if decode != nil {
		d := *decode
		k.decode = &d
	}
	if postprocessor != nil {
		p := *postprocessor
		k.postprocessor = &p
	}
	k.hash = k.computeHash()
	return k
}

// Kind returns KindBitmap.
func (k *BitmapKey) Kind() Kind { return KindBitmap }

// Source returns the source identity.
func (k *BitmapKey) Source() string { return k.source }

// ResizeOptions returns the resize options, or nil if absent.
func (k *BitmapKey) ResizeOptions() *imageopt.ResizeOptions { return copyOf(k.resize) }

// RotationOptions returns the rotation options, or nil if absent.
func (k *BitmapKey) RotationOptions() *imageopt.RotationOptions { return copyOf(k.rotation) }

// DecodeOptions returns the decode options, or nil if absent.
func (k *BitmapKey) DecodeOptions() *imageopt.DecodeOptions { return copyOf(k.decode) }

// PostprocessorKey returns the explicit postprocessor component, or nil.
func (k *BitmapKey) PostprocessorKey() Key {
	if k.postprocessor == nil {
		return nil
	}
	return k.postprocessor.Key
}

// PostprocessorName returns the postprocessor identity label and whether
// one is present.
func (k *BitmapKey) PostprocessorName() (string, bool) {
	if k.postprocessor == nil {
		return "", false
	}
	return k.postprocessor.Name, true
}

// Equal reports whether other is a BitmapKey with all six fields equal.
func (k *BitmapKey) Equal(other Key) bool {
	o, ok := other.(*BitmapKey)
	if !ok || o == nil {
		return false
	}
	if k == o {
		return true
	}
	if k.hash != o.hash || k.source != o.source {
		return false
	}
	return equalPtr(k.resize, o.resize) &&
		equalPtr(k.rotation, o.rotation) &&
		equalPtr(k.decode, o.decode) &&
		equalPostprocessor(k.postprocessor, o.postprocessor)
}

// Hash returns the combined hash of all six fields.
func (k *BitmapKey) Hash() uint64 { return k.hash }

func (k *BitmapKey) String() string {
	var b strings.Builder
	b.WriteString("bitmap(")
	b.WriteString(strconv.Quote(k.source))
	b.WriteString(" resize=")
	writeOpt(&b, k.resize)
	b.WriteString(" rotation=")
	writeOpt(&b, k.rotation)
	b.WriteString(" decode=")
	writeOpt(&b, k.decode)
	b.WriteString(" postprocessor=")
	if k.postprocessor == nil {
		b.WriteString("-")
	} else {
		b.WriteString(strconv.Quote(k.postprocessor.Name))
		b.WriteString(":")
		if k.postprocessor.Key == nil {
			b.WriteString("-")
		} else {
			b.WriteString(k.postprocessor.Key.String())
		}
	}
	b.WriteString(")")
	return b.String()
}

// URIString returns the source identity.
func (k *BitmapKey) URIString() string { return k.source }

// ContainsURI reports whether the source identity contains uri.
func (k *BitmapKey) ContainsURI(uri string) bool {
	return strings.Contains(k.source, uri)
}

func (k *BitmapKey) sealed() {}

func (k *BitmapKey) computeHash() uint64 {
	d := xxhash.New()
	var buf [9]byte

	binary.LittleEndian.PutUint64(buf[:8], uint64(len(k.source)))
	_, _ = d.Write(buf[:8])
	_, _ = d.WriteString(k.source)

	field := func(present bool, h uint64) {
		if !present {
			buf[0] = 0
			_, _ = d.Write(buf[:1])
			return
		}
		buf[0] = 1
		binary.LittleEndian.PutUint64(buf[1:], h)
		_, _ = d.Write(buf[:])
	}

	field(k.resize != nil, hashOf(k.resize))
	field(k.rotation != nil, hashOf(k.rotation))
	field(k.decode != nil, hashOf(k.decode))

	if k.postprocessor == nil {
		field(false, 0)
		field(false, 0)
	} else {
		var ppHash uint64
		if k.postprocessor.Key != nil {
			ppHash = k.postprocessor.Key.Hash()
		}
		field(k.postprocessor.Key != nil, ppHash)
		field(true, xxhash.Sum64String(k.postprocessor.Name))
	}

	return d.Sum64()
}

var _ Key = (*BitmapKey)(nil)

type option interface {
	comparable
	Hash() uint64
	String() string
}

func equalPtr[T option](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func hashOf[T option](p *T) uint64 {
	if p == nil {
		return 0
	}
	return (*p).Hash()
}

func copyOf[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func writeOpt[T option](b *strings.Builder, p *T) {
	if p == nil {
		b.WriteString("-")
		return
	}
	b.WriteString(strconv.Quote((*p).String()))
}

func equalPostprocessor(a, b *PostprocessorComponent) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name == b.Name && Equal(a.Key, b.Key)
}

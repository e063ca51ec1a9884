package cachekey

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SimpleKey is a key identified by a single string.
type SimpleKey struct {
	id string
}

// NewSimpleKey returns a key wrapping id.
func NewSimpleKey(id string) *SimpleKey {
	return &SimpleKey{id: id}
}

// Kind returns KindSimple.
func (k *SimpleKey) Kind() Kind { return KindSimple }

// Equal reports whether other is a SimpleKey with the same identity.
func (k *SimpleKey) Equal(other Key) bool {
	o, ok := other.(*SimpleKey)
	if !ok || o == nil {
		return false
	}
	return k.id == o.id
}

// Hash returns the xxhash of the identity string.
func (k *SimpleKey) Hash() uint64 {
	return xxhash.Sum64String(k.id)
}

func (k *SimpleKey) String() string {
	return "simple(" + strconv.Quote(k.id) + ")"
}

// URIString returns the wrapped identity.
func (k *SimpleKey) URIString() string { return k.id }

// ContainsURI reports whether the identity contains uri.
func (k *SimpleKey) ContainsURI(uri string) bool {
	return strings.Contains(k.id, uri)
}

func (k *SimpleKey) sealed() {}

var _ Key = (*SimpleKey)(nil)

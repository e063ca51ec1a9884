package imageopt

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// hasher accumulates fixed-width fields into an xxhash digest.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(tag byte) *hasher {
	h := &hasher{d: xxhash.New()}
	_, _ = h.d.Write([]byte{tag})
	return h
}

func (h *hasher) int(v int) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(int64(v)))
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) float32(v float32) {
	binary.LittleEndian.PutUint32(h.buf[:4], math.Float32bits(v))
	_, _ = h.d.Write(h.buf[:4])
}

func (h *hasher) bool(v bool) {
	if v {
		_, _ = h.d.Write([]byte{1})
		return
	}
	_, _ = h.d.Write([]byte{0})
}

func (h *hasher) sum() uint64 {
	return h.d.Sum64()
}

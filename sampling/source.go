// Package sampling provides a seedable, byte-producing randomness
// source used throughout the core for distribution sampling. It owns
// no policy about how the seed is chosen; that is a caller concern.
package sampling

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/zeebo/blake3"
)

// Source is a deterministic, keyed pseudo-random byte stream. It wraps
// a BLAKE3 extendable-output function keyed with a 32-byte seed: two
// Sources constructed from the same seed produce identical output.
//
// A Source is not safe for concurrent use; each goroutine needing
// randomness should own its own Source (or be given a WithSeed clone).
type Source struct {
	key    [32]byte
	reader *blake3.OutputReader
}

// NewSource creates a new Source keyed by seed.
func NewSource(seed [32]byte) *Source {
	s := &Source{key: seed}
	s.Reset()
	return s
}

// Reset rewinds the Source to the start of its output stream.
func (s *Source) Reset() {
	h, err := blake3.NewKeyed(s.key[:])
	if err != nil {
		// Sanity check, this error should not happen: the key is always 32 bytes.
		panic(fmt.Errorf("blake3.NewKeyed: %w", err))
	}
	s.reader = h.Digest()
}

// Read fills p with pseudo-random bytes. It never returns an error
// and always fills p entirely, satisfying io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	n, err := s.reader.Read(p)
	if err != nil {
		panic(fmt.Errorf("Source.Read: %w", err))
	}
	return n, nil
}

// Uint64 returns the next 8 pseudo-random bytes as a uint64.
func (s *Source) Uint64() uint64 {
	var b [8]byte
	if _, err := s.Read(b[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Float64 returns a pseudo-random float64 uniformly distributed in [lo, hi).
func (s *Source) Float64(lo, hi float64) float64 {
	// 53 bits of mantissa precision.
	x := s.Uint64() >> 11
	u := float64(x) / float64(uint64(1)<<53)
	return lo + u*(hi-lo)
}

// Int63n returns a pseudo-random int64 uniformly distributed in [0, n).
func (s *Source) Int63n(n int64) int64 {
	if n <= 0 {
		panic("sampling: Int63n: n must be > 0")
	}
	mask := uint64(1)<<uint(bitLen(uint64(n)-1)|1) - 1
	for {
		v := s.Uint64() & mask
		if v < uint64(n) {
			return int64(v)
		}
	}
}

func bitLen(x uint64) int {
	n := 0
	for x != 0 {
		n++
		x >>= 1
	}
	return n
}

// WithSeed derives a new, independent Source from a label, suitable
// for spawning per-thread Sources from one root Source without
// sharing mutable state. It consumes 32 bytes from the receiver.
func (s *Source) WithSeed(label string) *Source {
	var sub [32]byte
	if _, err := s.Read(sub[:]); err != nil {
		panic(err)
	}
	for i := 0; i < len(label) && i < 32; i++ {
		sub[i] ^= label[i]
	}
	return NewSource(sub)
}

// NormFloat64 returns a pseudo-random float64 sampled from the
// standard normal distribution using a Box-Muller transform.
func (s *Source) NormFloat64() float64 {
	u1 := s.Float64(1e-300, 1)
	u2 := s.Float64(0, 1)
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

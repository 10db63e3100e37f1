package ring

import (
	"fmt"
	"math/bits"

	"github.com/klauspost/cpuid/v2"
)

// Module holds the immutable, precomputed state needed to move
// between the coefficient domain and the frequency domain for a fixed
// ring degree N and a fixed Backend. A Module is built once and is
// safe for concurrent read-only use by many Evaluators.
type Module struct {
	n       int
	backend Backend

	// HasAVX2 records whether the CPU supports AVX2, detected once at
	// construction time. No transform reads it: FFT64 has a single
	// kernel.
	HasAVX2 bool

	fft64  *fft64Tables
	ntt120 *ntt120Tables
}

// NewModule constructs a Module of degree n (a power of two) for the
// given backend.
func NewModule(n int, backend Backend) *Module {
	if n <= 0 || n&(n-1) != 0 {
		panic(fmt.Errorf("ring.NewModule: N=%d must be a power of two", n))
	}

	m := &Module{
		n:       n,
		backend: backend,
		HasAVX2: cpuid.CPU.Supports(cpuid.AVX2),
	}

	switch backend {
	case FFT64:
		m.fft64 = newFFT64Tables(n)
	case NTT120:
		m.ntt120 = newNTT120Tables(n)
	default:
		panic(fmt.Errorf("ring.NewModule: unknown backend %v", backend))
	}

	return m
}

// N returns the ring degree.
func (m *Module) N() int { return m.n }

// Backend returns the transform backend this Module was built for.
func (m *Module) Backend() Backend { return m.backend }

// LogN returns log2(N).
func (m *Module) LogN() int { return bits.Len(uint(m.n)) - 1 }

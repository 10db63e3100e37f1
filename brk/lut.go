// Package brk implements CGGI-family blind rotation: the lookup-table
// representation, the blind-rotation key and the rotate-then-subtract
// accumulation loop, including its binary-block and ring-extension
// optimizations. Grounded on spec.md §4.8 and on
// he/hebin/blindrotation.go's InitTestPolynomial LUT-construction
// idiom; the per-coordinate accumulation loop itself is grounded on
// original_source/poulpy-schemes/src/bin_fhe/blind_rotation/
// algorithms/cggi/algorithm.rs since the teacher's own evaluation loop
// was filtered out of the retrieval pack (only test and key-generation
// files of hebin survived).
package brk

import (
	"fmt"

	"github.com/Pro7ech/lfhe/ring"
)

// LookupTable is the function-table operand blind rotation consumes:
// ExtensionFactor interleaved degree-N polynomials collectively
// representing a function on Z/(ExtensionFactor*N), plus a Drift
// (half-block rounding bias baked in at construction time) and a
// Negate tag selecting the rotation direction that circuit
// bootstrapping's "to_exponent" encoding (cbt package) needs flipped
// relative to "to_constant".
type LookupTable struct {
	ExtensionFactor int
	Drift           int
	Negate          bool
	Polys           []*ring.VecZnx
}

// New allocates an empty LookupTable of ExtensionFactor polynomials,
// each a single-column VecZnx of size limbs at base2k.
func New(m *ring.Module, extensionFactor, size, base2k int) *LookupTable {
	if extensionFactor < 1 {
		panic(fmt.Errorf("brk.New: extensionFactor=%d must be >= 1", extensionFactor))
	}
	polys := make([]*ring.VecZnx, extensionFactor)
	for e := range polys {
		polys[e] = ring.NewVecZnx(m.N(), 1, size, base2k)
	}
	return &LookupTable{ExtensionFactor: extensionFactor, Polys: polys}
}

// FromFunction builds a LookupTable representing f over [0, domainSize)
// replicated with redundancy across the full Z/(ExtensionFactor*N)
// domain: each input value occupies a block of BlockWidth =
// (ExtensionFactor*N)/domainSize consecutive positions, centered by a
// half-block Drift so the midpoint of a block, not its edge, is where
// blind rotation's mod-switch rounding lands. f's return value is
// written verbatim into the plaintext's top limb; scaling it to the
// target precision is the caller's responsibility (mirroring
// Plaintext.Encode's "top limb" convention).
func FromFunction(m *ring.Module, f func(x int) int64, domainSize, extensionFactor, size, base2k int) *LookupTable {
	n := m.N()
	total := extensionFactor * n
	if total%domainSize != 0 {
		panic(fmt.Errorf("brk.FromFunction: domainSize=%d must divide ExtensionFactor*N=%d", domainSize, total))
	}
	blockWidth := total / domainSize
	drift := blockWidth / 2

	lut := New(m, extensionFactor, size, base2k)
	for x := 0; x < total; x++ {
		idx := ((x + drift) / blockWidth) % domainSize
		v := f(idx)
		e := x % extensionFactor
		i := x / extensionFactor
		lut.Polys[e].At(0, 0)[i] = v
	}
	lut.Drift = drift
	return lut
}

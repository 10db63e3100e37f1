// Package cbt implements circuit bootstrapping: lifting an LWE
// ciphertext encrypting a small message into a GGSW encryption of the
// same message, via blind rotation, partial-trace row extraction and
// tensor-key row expansion. Grounded on spec.md §4.9 and on
// original_source/poulpy-schemes/src/tfhe/circuit_bootstrapping/
// circuit_bootstrapping.rs and original_source/schemes/src/tfhe/
// circuit_bootstrapping/circuit_bootstrapping.rs — lattigo's own
// he/hebin layer stops at blind rotation and has no equivalent.
package cbt

import (
	"fmt"

	"github.com/Pro7ech/lfhe/brk"
	"github.com/Pro7ech/lfhe/ring"
)

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// BuildLUT constructs the circuit-bootstrap lookup table of spec.md
// §4.9 step 1: for "to_constant" encoding (toExponent=false),
// f[j*alpha+i] = j * 2^(base2k*(dnum-1-i)) for i in [0,dnum), j in
// [0, 2^logDomain), alpha = nextPow2(dnum); for "to_exponent" encoding
// only the j=0 entries are populated, and the LookupTable's Negate tag
// is set so brk.Evaluator.BlindRotate rotates in the opposite direction.
func BuildLUT(m *ring.Module, logDomain, dnum, base2k, size, extensionFactor int, toExponent bool) *brk.LookupTable {
	if logDomain < 0 {
		panic(fmt.Errorf("cbt.BuildLUT: logDomain=%d must be >= 0", logDomain))
	}
	alpha := nextPow2(dnum)
	domain := 1 << uint(logDomain)
	domainSize := alpha * domain

	f := func(x int) int64 {
		j := x / alpha
		i := x % alpha
		if i >= dnum {
			return 0
		}
		if toExponent && j != 0 {
			return 0
		}
		return int64(j) << uint(base2k*(dnum-1-i))
	}

	lut := brk.FromFunction(m, f, domainSize, extensionFactor, size, base2k)
	lut.Negate = toExponent
	return lut
}

package ring

import "fmt"

// AutomorphismIndex precomputes the coefficient permutation for the
// ring automorphism X -> X^k (k odd, coprime to 2N), grounded on
// lattigo's PermuteNTTIndex precomputation idiom
// (rlwe/evaluator_automorphism.go): the index table is built once per
// Galois element and reused across every VecZnx it is applied to.
//
// Unlike lattigo, which permutes an NTT-domain index (its
// automorphism commutes with RNS-NTT lookup), this index acts directly
// on coefficient-domain limbs: automorphism here is applied before the
// forward transform.
type AutomorphismIndex struct {
	n    int
	k    int
	perm []int  // perm[i] = source coefficient index for destination i
	sign []int8 // sign[i] = +1 or -1, accounting for X^N = -1 wraparound
}

// NewAutomorphismIndex builds the permutation table for X -> X^k over
// a ring of degree n. k must be odd.
func NewAutomorphismIndex(n, k int) *AutomorphismIndex {
	if k&1 == 0 {
		panic(fmt.Errorf("ring.NewAutomorphismIndex: k=%d must be odd", k))
	}
	mod := 2 * n
	k = ((k % mod) + mod) % mod

	perm := make([]int, n)
	sign := make([]int8, n)
	for i := 0; i < n; i++ {
		// source coefficient i goes to exponent i*k mod 2N, folded into
		// [0,N) with a sign flip when the exponent's high bit (the
		// X^N=-1 wrap) is set.
		e := (i * k) % mod
		s := int8(1)
		if e >= n {
			e -= n
			s = -1
		}
		perm[i] = e
		sign[i] = s
	}
	// invert: we want, for each destination index d, the source index
	// and sign such that dst[d] = sign * src[source[d]].
	src := make([]int, n)
	sgn := make([]int8, n)
	for source := 0; source < n; source++ {
		d := perm[source]
		src[d] = source
		sgn[d] = sign[source]
	}
	return &AutomorphismIndex{n: n, k: k, perm: src, sign: sgn}
}

// K returns the Galois element this index implements.
func (a *AutomorphismIndex) K() int { return a.k }

// Apply writes dst[i] = sign(i) * src[perm(i)] for every coefficient,
// column by column, across however many columns/limbs src and dst
// share.
func (a *AutomorphismIndex) Apply(src, dst *VecZnx) {
	cols := min(src.cols, dst.cols)
	size := min(src.size, dst.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			s := src.At(c, j)
			d := dst.At(c, j)
			for i := 0; i < a.n; i++ {
				if a.sign[i] < 0 {
					d[i] = -s[a.perm[i]]
				} else {
					d[i] = s[a.perm[i]]
				}
			}
		}
	}
}

// ApplyScalar applies the same permutation to a ScalarZnx.
func (a *AutomorphismIndex) ApplyScalar(src, dst *ScalarZnx) {
	cols := min(src.cols, dst.cols)
	for c := 0; c < cols; c++ {
		s := src.At(c)
		d := dst.At(c)
		for i := 0; i < a.n; i++ {
			if a.sign[i] < 0 {
				d[i] = -s[a.perm[i]]
			} else {
				d[i] = s[a.perm[i]]
			}
		}
	}
}

package ring

// Convolve performs a direct negacyclic convolution of two coefficient
// vectors of length N (res[i] = sum_j a[j]*b[(i-j) mod N], negated on
// wraparound), without going through the DFT domain. Used for small
// fixed-size cases (test vectors, the degree-1 "single limb" external
// product fast path) where the DFT setup cost is not worth paying.
//
// Grounded on original_source/poulpy-cpu-avx/src/convolution.rs's
// pairwise fused accumulation and poulpy-hal/src/reference/ntt120/
// convolution.rs's lazy-reduction accumulation strategy: accumulate in
// a wide (Int128) register across the whole sum before reducing once,
// rather than reducing after every multiply-add.
func Convolve(a, b, res []int64) {
	n := len(a)
	acc := make([]Int128, n)
	for i := 0; i < n; i++ {
		ai := a[i]
		if ai == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			k := i + j
			if k < n {
				acc[k] = acc[k].AddMulInt64(ai, b[j])
			} else {
				acc[k-n] = acc[k-n].Sub(MulInt64(ai, b[j]))
			}
		}
	}
	for i := 0; i < n; i++ {
		res[i] = acc[i].Int64()
	}
}

// ConvolveAdd is Convolve but accumulates onto the existing contents
// of res instead of overwriting it, matching the convention
// lattigo's MulCoeffsMontgomeryLazyThenAddLazy family uses throughout
// rlwe/evaluator_gadget_product.go.
func ConvolveAdd(a, b, res []int64) {
	n := len(a)
	tmp := make([]int64, n)
	Convolve(a, b, tmp)
	for i := range res {
		res[i] += tmp[i]
	}
}

// PairwiseConvolve computes res = a0*b0 + a1*b1 as one fused
// accumulation pass instead of two independent Convolve calls,
// grounded on poulpy-cpu-avx/src/convolution.rs's pairwise
// shared-load convolution: both products share the same wide
// accumulator and are reduced to res only once, at the end.
func PairwiseConvolve(a0, b0, a1, b1, res []int64) {
	n := len(a0)
	acc := make([]Int128, n)
	accumulate := func(a, b []int64) {
		for i := 0; i < n; i++ {
			ai := a[i]
			if ai == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				k := i + j
				if k < n {
					acc[k] = acc[k].AddMulInt64(ai, b[j])
				} else {
					acc[k-n] = acc[k-n].Sub(MulInt64(ai, b[j]))
				}
			}
		}
	}
	accumulate(a0, b0)
	accumulate(a1, b1)
	for i := 0; i < n; i++ {
		res[i] = acc[i].Int64()
	}
}

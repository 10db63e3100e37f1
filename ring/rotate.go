package ring

// RotateVecZnx sets res = a * X^p mod (X^N+1): a monomial rotation,
// distinct from Automorphism's X -> X^k substitution. p may be any
// integer; it is reduced modulo 2N. Coefficients that cross index N
// pick up a sign flip, matching the negacyclic wraparound used by
// the ring's monomial multiplication.
func RotateVecZnx(a *VecZnx, p int, res *VecZnx) {
	n := a.n
	mod := 2 * n
	pm := ((p % mod) + mod) % mod
	cols := min(a.cols, res.cols)
	size := min(a.size, res.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			src := a.At(c, j)
			dst := res.At(c, j)
			for k := 0; k < n; k++ {
				idx := (((k-pm)%mod)+mod)%mod
				if idx < n {
					dst[k] = src[idx]
				} else {
					dst[k] = -src[idx-n]
				}
			}
		}
	}
}

package glwe

import (
	"fmt"

	"github.com/Pro7ech/lfhe/ring"
)

// GaloisGen is the order-2N generator used to build the trace's Galois
// elements 5^(2^i) mod 2N, matching lattigo's GaloisGen convention
// (rlwe/params.go).
const GaloisGen = 5

// TraceGaloisElement returns 5^(2^level) mod 2N, the Galois element the
// trace's level-th automorphism key must be generated for.
func TraceGaloisElement(n, level int) int {
	mod := 2 * n
	p := GaloisGen % mod
	for i := 0; i < level; i++ {
		p = (p * p) % mod
	}
	return p
}

// Trace applies the partial Galois trace (1/2^r) * sum_{i=start}^{logN-1}
// (1 + phi_{5^(2^i)}) to a, zeroing every coefficient whose position is
// not a multiple of 2^start and summing coefficients within each orbit.
// autoKeys must hold a prepared automorphism key for every Galois
// element TraceGaloisElement(a.N(), i), i in [start, logN). Grounded on
// rlwe/traces.go's Trace/InnerSum level-doubling automorphism-and-add
// loop.
func (ev *Evaluator) Trace(start int, a *GLWE, autoKeys map[int]*AutomorphismKeyPrepared, res *GLWE) {
	m := ev.module
	logN := m.LogN()
	res.Copy(a)
	for i := start; i < logN; i++ {
		p := TraceGaloisElement(m.N(), i)
		key, ok := autoKeys[p]
		if !ok {
			panic(fmt.Errorf("glwe.Evaluator.Trace: missing automorphism key for Galois element %d (level %d)", p, i))
		}
		ev.AutomorphismAddInplace(key, res, res)
		res.Normalize()

		shifted := ring.NewVecZnx(m.N(), res.Rank()+1, res.Size(), res.Base2K())
		res.Value.Rsh(1, shifted)
		shifted.Normalize(res.Base2K())
		res.Value.Copy(shifted)
	}
}

package glwe

import (
	"fmt"

	"github.com/Pro7ech/lfhe/ring"
)

// Pack combines a sparse map idx -> GLWE(m_idx), idx*2^logGapOut < N, into one
// GLWE whose coefficient at idx*2^logGapOut equals m_idx. Standard
// power-of-two butterfly: at level i in [0, logN-logGapOut), pairs j
// with j+2^(logN-1-i); an absent slot is treated as an encryption of
// zero, which algebraically collapses the general butterfly step into
// its single-operand form.
//
// autoKeys must carry a prepared automorphism key for every Galois
// element N/t+1 used by a level's butterfly, t ranging over
// {2^logGapOut, ..., 2^(logN-1)}.
func (ev *Evaluator) Pack(slots map[int]*GLWE, logGapOut int, autoKeys map[int]*AutomorphismKeyPrepared) *GLWE {
	m := ev.module
	logN := m.LogN()

	var rank, k, base2k int
	for _, g := range slots {
		rank, k, base2k = g.Rank(), g.K(), g.Base2K()
		break
	}

	cur := make(map[int]*GLWE, len(slots))
	for idx, g := range slots {
		cur[idx<<uint(logGapOut)] = g.Clone()
	}

	for i := 0; i < logN-logGapOut; i++ {
		t := 1 << uint(logN-1-i)
		p := m.N()/t + 1
		auto, ok := autoKeys[p]
		if !ok {
			panic(fmt.Errorf("glwe.Evaluator.Pack: missing automorphism key for Galois element %d (level %d)", p, i))
		}

		next := make(map[int]*GLWE, len(cur)/2+1)
		for j := 0; j < t; j++ {
			a, hasA := cur[j]
			b, hasB := cur[j+t]
			if !hasA && !hasB {
				continue
			}
			if !hasA {
				a = NewGLWE(m.N(), rank, k, base2k)
			}
			if !hasB {
				b = NewGLWE(m.N(), rank, k, base2k)
			}

			// a + b*X^t + phi(a - b*X^t), folding the rotate into a
			// single shift of b before the sum/difference split.
			bShift := NewGLWE(m.N(), rank, k, base2k)
			ev.Rotate(t, b, bShift)

			sum := NewGLWE(m.N(), rank, k, base2k)
			ev.Add(a, bShift, sum)

			diff := NewGLWE(m.N(), rank, k, base2k)
			ev.Sub(a, bShift, diff)

			diffPhi := NewGLWE(m.N(), rank, k, base2k)
			ev.AutomorphismSwitch(auto, diff, diffPhi)

			merged := NewGLWE(m.N(), rank, k, base2k)
			ev.Add(sum, diffPhi, merged)
			merged.Normalize()

			shifted := ring.NewVecZnx(m.N(), rank+1, merged.Size(), base2k)
			merged.Value.Rsh(1, shifted)
			shifted.Normalize(base2k)
			merged.Value.Copy(shifted)

			next[j] = merged
		}
		cur = next
	}

	if res, ok := cur[0]; ok {
		return res
	}
	return NewGLWE(m.N(), rank, k, base2k)
}

package glwe

import (
	"fmt"

	"github.com/Pro7ech/lfhe/gadget"
	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/scratch"
)

// Evaluator implements the homomorphic GLWE/GGLWE/GGSW operations:
// add, sub, negate, rotate, automorphism, key-switch and external
// product. Grounded on rlwe/evaluator.go +
// rlwe/evaluator_gadget_product.go's GadgetProduct/GadgetProductLazy
// and rgsw/evaluator.go's ExternalProduct.
type Evaluator struct {
	module *ring.Module
	arena  *scratch.Scratch
}

// NewEvaluator returns an Evaluator bound to m, allocating its
// transient per-call buffers directly.
func NewEvaluator(m *ring.Module) *Evaluator { return &Evaluator{module: m} }

// WithScratch returns a shallow copy of ev that carves its transient
// per-call buffers (gadget decomposition rows, the single-limb
// external-product fast path's accumulator) out of s instead of
// allocating them, so a chain of evaluator calls can share one
// backing arena and free it all at once via s.Drop. Per spec.md §3/§5:
// "All subsequent calls receive a &Module, a &mut Scratch."
func (ev *Evaluator) WithScratch(s *scratch.Scratch) *Evaluator {
	cp := *ev
	cp.arena = s
	return &cp
}

// takeVecZnx returns a zeroed VecZnx, carved from ev.arena if set.
func (ev *Evaluator) takeVecZnx(cols, size, base2k int) *ring.VecZnx {
	n := ev.module.N()
	if ev.arena != nil {
		return ring.NewVecZnxFromBuffer(n, cols, size, base2k, ev.arena.TakeInt64(cols*size*n))
	}
	return ring.NewVecZnx(n, cols, size, base2k)
}

// takeInt64 returns a zeroed []int64 of length n, carved from ev.arena
// if set.
func (ev *Evaluator) takeInt64(n int) []int64 {
	if ev.arena != nil {
		buf := ev.arena.TakeInt64(n)
		clear(buf)
		return buf
	}
	return make([]int64, n)
}

// Add sets res = a + b, dirty.
func (ev *Evaluator) Add(a, b, res *GLWE) { ring.AddVecZnx(a.Value, b.Value, res.Value) }

// Sub sets res = a - b, dirty.
func (ev *Evaluator) Sub(a, b, res *GLWE) { ring.SubVecZnx(a.Value, b.Value, res.Value) }

// Negate sets res = -a.
func (ev *Evaluator) Negate(a, res *GLWE) { ring.NegVecZnx(a.Value, res.Value) }

// Rotate sets res = a with every column multiplied by X^p.
func (ev *Evaluator) Rotate(p int, a, res *GLWE) {
	ring.RotateVecZnx(a.Value, p, res.Value)
	res.k = a.k
}

// Automorphism sets res = phi(a) for the Galois element carried by idx.
func (ev *Evaluator) Automorphism(idx *ring.AutomorphismIndex, a, res *GLWE) {
	idx.Apply(a.Value, res.Value)
	res.k = a.k
}

// AutomorphismSwitch sets res = phi(a), key-switched back onto the
// secret a is encrypted under: raw coefficient substitution alone
// leaves a ciphertext valid only under phi(sk), so every caller that
// needs to keep accumulating under the original secret (Trace, Pack)
// must key-switch with the same automorphism key right after
// permuting.
func (ev *Evaluator) AutomorphismSwitch(key *AutomorphismKeyPrepared, a, res *GLWE) {
	permuted := NewGLWE(a.N(), a.Rank(), a.K(), a.Base2K())
	ev.Automorphism(key.Index, a, permuted)
	ev.KeySwitch(permuted, &SwitchingKeyPrepared{GGLWEPrepared: key.GGLWEPrepared}, res)
}

// AutomorphismAddInplace sets a += AutomorphismSwitch(key, b), used by
// Trace to keep its accumulation loop branch-free.
func (ev *Evaluator) AutomorphismAddInplace(key *AutomorphismKeyPrepared, b, a *GLWE) {
	tmp := NewGLWE(a.N(), a.Rank(), a.K(), a.Base2K())
	ev.AutomorphismSwitch(key, b, tmp)
	ring.AddVecZnx(a.Value, tmp.Value, a.Value)
}

// gadgetProduct decomposes each of columns against g and accumulates
// the VMP product into resDft. len(columns) must equal g.RankIn.
func (ev *Evaluator) gadgetProduct(columns []*ring.VecZnx, g *GGLWEPrepared, resDft *ring.VecZnxDft) {
	if len(columns) != g.RankIn {
		panic(fmt.Errorf("glwe.Evaluator: gadget product expects %d input columns, got %d", g.RankIn, len(columns)))
	}
	m := ev.module
	if g.DNum == 1 && g.DSize == 1 {
		digits := make([]*ring.VecZnxDft, len(columns))
		for i, col := range columns {
			digits[i] = m.NewVecZnxDft(1, 1)
			m.DFT(col, digits[i])
		}
		m.VmpApplyDftToDft(digits, g.Mat, resDft)
		return
	}

	digits := make([]*ring.VecZnxDft, 0, len(columns)*g.DNum)
	rowBuf := make([]*ring.VecZnx, g.DNum)
	for i := range rowBuf {
		rowBuf[i] = ev.takeVecZnx(1, g.DSize, columns[0].Base2K())
	}
	decomp := gadget.Decomposition{DSize: g.DSize, DNum: g.DNum}
	for _, col := range columns {
		gadget.Decompose(decomp, col, 0, rowBuf)
		for j := 0; j < g.DNum; j++ {
			d := m.NewVecZnxDft(1, g.DSize)
			m.DFT(rowBuf[j], d)
			digits = append(digits, d)
		}
	}
	m.VmpApplyDftToDft(digits, g.Mat, resDft)
}

// renormalizeToKeyBase2K handles the case where the operand's base2k
// differs from the key's: the operand is renormalized into a fresh
// VecZnx at the key's base2k before the gadget product runs.
func renormalizeToKeyBase2K(ct *GLWE, keyBase2K int) *GLWE {
	if ct.Base2K() == keyBase2K {
		return ct
	}
	tmp := NewGLWE(ct.N(), ct.Rank(), ct.K(), keyBase2K)
	tmp.Value.CopyLimbs(ct.Value)
	tmp.Normalize()
	return tmp
}

// KeySwitch sets res = (c0, 0, ..., 0) + sum_i decompose(a_i)*ksk_i,
// moving ct's encryption from ksk's input secret to its output secret.
func (ev *Evaluator) KeySwitch(ct *GLWE, ksk *SwitchingKeyPrepared, res *GLWE) {
	rankIn := ct.Rank()
	if rankIn != ksk.RankIn {
		panic(fmt.Errorf("glwe.Evaluator.KeySwitch: ct rank=%d != ksk RankIn=%d", rankIn, ksk.RankIn))
	}
	op := renormalizeToKeyBase2K(ct, ksk.Base2K)

	m := ev.module
	columns := make([]*ring.VecZnx, rankIn)
	for i := 0; i < rankIn; i++ {
		columns[i] = extractColumn(op.Value, i+1)
	}

	resDft := m.NewVecZnxDft(ksk.Rank+1, res.Size())
	ev.gadgetProduct(columns, ksk.GGLWEPrepared, resDft)

	accBig := m.NewVecZnxBig(ksk.Rank+1, res.Size())
	m.IDFTBig(resDft, accBig)
	acc := ev.takeVecZnx(ksk.Rank+1, res.Size(), res.Base2K())
	m.NormalizeBig(accBig, res.Base2K(), acc)

	res.Value.Zero()
	size := min(res.Size(), op.Size())
	for j := 0; j < size; j++ {
		copy(res.Value.At(0, j), op.Value.At(0, j))
	}
	ring.AddVecZnx(res.Value, acc, res.Value)
	res.Normalize()
}

// ExternalProductRaw sets res = ct (X) ggsw using the narrow-case
// direct-convolution fast path of externalProductSingleLimb when ct
// and ggsw are both single-limb with a one-row (DNum=1), DSize=1 gadget, and the
// general VMP path otherwise. Grounded on rgsw/evaluator.go's
// externalProduct32Bit specialization, which picks the same kind of
// narrow fast path for the common one-limb case.
func (ev *Evaluator) ExternalProductRaw(ct *GLWE, raw *GGSW, prepared *GGSWPrepared, res *GLWE) {
	if ct.Size() == 1 && raw.Size() == 1 && raw.DNum == 1 && raw.DSize == 1 {
		ev.externalProductSingleLimb(ct, raw, res)
		return
	}
	ev.ExternalProduct(ct, prepared, res)
}

// externalProductSingleLimb is a narrow-case fast path for
// ExternalProduct when both ct and ggsw carry exactly one limb (one
// gadget row, DSize=1): the gadget product degenerates to a direct
// negacyclic convolution per (input column, output column) pair,
// skipping the DFT setup entirely. Grounded on rgsw/evaluator.go's
// externalProduct32Bit specialization of the general gadget product.
// Input columns are convolved two at a time with ring.PairwiseConvolve
// (grounded on poulpy-cpu-avx/src/convolution.rs's pairwise
// shared-load convolution), which is exactly rank+1's column count for
// the common rank=1 case; an odd leftover column falls back to a plain
// ConvolveAdd.
func (ev *Evaluator) externalProductSingleLimb(ct *GLWE, ggsw *GGSW, res *GLWE) {
	rank := ct.Rank()
	n := ct.N()
	cols := make([][]int64, rank+1)
	for i := 0; i <= rank; i++ {
		cols[i] = ct.Value.At(i, 0)
	}

	acc := make([][]int64, rank+1)
	for o := range acc {
		acc[o] = ev.takeInt64(n)
	}

	for o := 0; o <= rank; o++ {
		i := 0
		for ; i+1 <= rank; i += 2 {
			row0 := ggsw.Value[i][0].Value.At(o, 0)
			row1 := ggsw.Value[i+1][0].Value.At(o, 0)
			if i == 0 {
				ring.PairwiseConvolve(cols[0], row0, cols[1], row1, acc[o])
				continue
			}
			pair := ev.takeInt64(n)
			ring.PairwiseConvolve(cols[i], row0, cols[i+1], row1, pair)
			for k := range acc[o] {
				acc[o][k] += pair[k]
			}
		}
		for ; i <= rank; i++ {
			ring.ConvolveAdd(cols[i], ggsw.Value[i][0].Value.At(o, 0), acc[o])
		}
	}
	for o := 0; o <= rank; o++ {
		copy(res.Value.At(o, 0), acc[o])
	}
	res.Normalize()
}

// ExternalProduct sets res = ct (X) ggsw: a single VMP product against
// the prepared GGSW key over all rank+1 input columns, followed by
// inverse DFT and normalize.
func (ev *Evaluator) ExternalProduct(ct *GLWE, ggsw *GGSWPrepared, res *GLWE) {
	rank := ct.Rank()
	if rank+1 != ggsw.RankIn {
		panic(fmt.Errorf("glwe.Evaluator.ExternalProduct: ct rank=%d, ggsw RankIn=%d", rank, ggsw.RankIn))
	}
	op := renormalizeToKeyBase2K(ct, ggsw.Base2K)

	m := ev.module
	columns := make([]*ring.VecZnx, rank+1)
	for i := 0; i <= rank; i++ {
		columns[i] = extractColumn(op.Value, i)
	}

	resDft := m.NewVecZnxDft(ggsw.Rank+1, res.Size())
	ev.gadgetProduct(columns, ggsw.GGLWEPrepared, resDft)
	accBig := m.NewVecZnxBig(ggsw.Rank+1, res.Size())
	m.IDFTBig(resDft, accBig)
	m.NormalizeBig(accBig, res.Base2K(), res.Value)
}

// ExternalProductAdd sets res += ct (X) ggsw.
func (ev *Evaluator) ExternalProductAdd(ct *GLWE, ggsw *GGSWPrepared, res *GLWE) {
	tmp := NewGLWE(res.N(), res.Rank(), res.K(), res.Base2K())
	ev.ExternalProduct(ct, ggsw, tmp)
	ring.AddVecZnx(res.Value, tmp.Value, res.Value)
}

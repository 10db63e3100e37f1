package brk

import (
	"fmt"

	"github.com/Pro7ech/lfhe/glwe"
	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/scratch"
)

// Evaluator runs the CGGI blind-rotation loop against a fixed Module.
type Evaluator struct {
	module *ring.Module
	glweEv *glwe.Evaluator
}

// NewEvaluator returns an Evaluator bound to m.
func NewEvaluator(m *ring.Module) *Evaluator {
	return &Evaluator{module: m, glweEv: glwe.NewEvaluator(m)}
}

// WithScratch returns a shallow copy of ev whose inner glwe.Evaluator
// carves its transient buffers out of s, so an entire BlindRotate call
// shares one backing arena.
func (ev *Evaluator) WithScratch(s *scratch.Scratch) *Evaluator {
	cp := *ev
	cp.glweEv = ev.glweEv.WithScratch(s)
	return &cp
}

// ModSwitch rounds every LWE coordinate of ct from modulus 2^ct.K() to
// twoN, with a half-ULP rounding bias, and negates it — the first
// step of blind rotation (spec.md §4.8 step 1). Returns the negated
// body and the negated mask, in that order.
func ModSwitch(ct *glwe.LWE, twoN int) (int64, []int64) {
	q := int64(1) << uint(ct.K())
	round := func(v int64) int64 {
		v = ((v % q) + q) % q
		num := 2*v*int64(twoN) + q
		den := 2 * q
		r := num / den
		return ((-r % int64(twoN)) + int64(twoN)) % int64(twoN)
	}
	mask := ct.Mask()
	a := make([]int64, len(mask))
	for i, v := range mask {
		a[i] = round(v)
	}
	return round(ct.Body()), a
}

// BlindRotate runs the CGGI accumulation loop: initializes an
// accumulator to X^b * LUT and, for every LWE coordinate a_i and its
// blind-rotation key BRK_i, folds in ExternalProduct(acc,
// BRK_i)*(X^a_i - 1). When key.BlockSize > 1 and the LookupTable's
// ExtensionFactor is 1, coordinates are processed blockSize at a time,
// each block sharing one pre-block accumulator snapshot (valid because
// the block's secret coordinates sum to exactly one 1, so at most one
// term in the block is nonzero and the others vanish regardless of
// evaluation order) so that only one normalize closes the whole block
// instead of one per coordinate. When ExtensionFactor > 1, every LWE
// coordinate is processed individually across the ExtensionFactor
// interleaved slots, with an inter-slot permutation whenever a_i does
// not land on a slot boundary and a sign flip for the slots whose
// permutation wraps past slot 0 (spec.md §4.8's "ring-extension"
// optimization). When lut.Negate is set, the mod-switched body and
// mask are negated mod twoN before use, so the rotation runs in the
// opposite direction.
func (ev *Evaluator) BlindRotate(ct *glwe.LWE, lut *LookupTable, key *Key, res *glwe.GLWE) {
	if len(key.GGSW) != ct.LWEDimension() {
		panic(fmt.Errorf("brk.Evaluator.BlindRotate: LWE dimension=%d != key length=%d", ct.LWEDimension(), len(key.GGSW)))
	}
	m := ev.module
	ef := lut.ExtensionFactor
	twoN := 2 * m.N() * ef
	b, a := ModSwitch(ct, twoN)
	if lut.Negate {
		b = (int64(twoN) - b) % int64(twoN)
		for i := range a {
			a[i] = (int64(twoN) - a[i]) % int64(twoN)
		}
	}

	rank := res.Rank()
	k, base2k := res.K(), res.Base2K()

	acc := make([]*glwe.GLWE, ef)
	for e := 0; e < ef; e++ {
		g := glwe.NewGLWE(m.N(), rank, k, base2k)
		size := min(g.Size(), lut.Polys[e].Size())
		for j := 0; j < size; j++ {
			copy(g.Value.At(0, j), lut.Polys[e].At(0, j))
		}
		rotated := glwe.NewGLWE(m.N(), rank, k, base2k)
		if ef == 1 {
			ev.glweEv.Rotate(int(b), g, rotated)
		} else {
			ev.glweEv.Rotate(int(b)/ef, g, rotated)
		}
		acc[e] = rotated
	}

	if ef == 1 {
		blockSize := key.BlockSize
		if blockSize < 1 {
			blockSize = 1
		}
		n := len(a)
		for start := 0; start < n; start += blockSize {
			end := min(start+blockSize, n)
			ev.blockStep(acc[0], a[start:end], key.GGSW[start:end])
		}
	} else {
		for i, ai := range a {
			ev.extendedStep(acc, ai, key.GGSW[i], ef)
		}
	}

	res.Copy(acc[0])
}

// blockStep folds a contiguous block of LWE coordinates into acc,
// sharing one pre-block snapshot of acc across every coordinate in the
// block and normalizing once at the end.
func (ev *Evaluator) blockStep(acc *glwe.GLWE, as []int64, brk []*glwe.GGSWPrepared) {
	rank, k, base2k := acc.Rank(), acc.K(), acc.Base2K()
	delta := glwe.NewGLWE(acc.N(), rank, k, base2k)
	for i, ai := range as {
		tmp := glwe.NewGLWE(acc.N(), rank, k, base2k)
		ev.glweEv.ExternalProduct(acc, brk[i], tmp)
		rotated := glwe.NewGLWE(acc.N(), rank, k, base2k)
		ev.glweEv.Rotate(int(ai), tmp, rotated)
		diff := glwe.NewGLWE(acc.N(), rank, k, base2k)
		ev.glweEv.Sub(rotated, tmp, diff)
		ev.glweEv.Add(delta, diff, delta)
	}
	ev.glweEv.Add(acc, delta, acc)
	acc.Normalize()
}

// extendedStep folds one LWE coordinate into every ExtensionFactor
// slot of acc. ai's quotient by ef is a within-slot rotation amount;
// its remainder selects a cross-slot permutation, with a sign flip
// whenever the permutation wraps past slot 0 (the negacyclic
// consequence of Z/(ef*N) wrapping through the X^N=-1 boundary once
// per full cycle of the ef slots).
func (ev *Evaluator) extendedStep(acc []*glwe.GLWE, ai int64, brk *glwe.GGSWPrepared, ef int) {
	shift := int(ai) / ef
	cross := int(ai) % ef

	tmp := make([]*glwe.GLWE, ef)
	for e := 0; e < ef; e++ {
		rank, k, base2k := acc[e].Rank(), acc[e].K(), acc[e].Base2K()
		tmp[e] = glwe.NewGLWE(acc[e].N(), rank, k, base2k)
		ev.glweEv.ExternalProduct(acc[e], brk, tmp[e])
	}

	for e := 0; e < ef; e++ {
		rank, k, base2k := acc[e].Rank(), acc[e].K(), acc[e].Base2K()
		var rotated *glwe.GLWE
		if cross == 0 {
			rotated = glwe.NewGLWE(acc[e].N(), rank, k, base2k)
			ev.glweEv.Rotate(shift, tmp[e], rotated)
		} else {
			src := ((e-cross)%ef + ef) % ef
			r := shift
			pre := glwe.NewGLWE(acc[e].N(), rank, k, base2k)
			if e-cross < 0 {
				r++
				ev.glweEv.Rotate(r, tmp[src], pre)
				rotated = glwe.NewGLWE(acc[e].N(), rank, k, base2k)
				ev.glweEv.Negate(pre, rotated)
			} else {
				ev.glweEv.Rotate(r, tmp[src], pre)
				rotated = pre
			}
		}
		diff := glwe.NewGLWE(acc[e].N(), rank, k, base2k)
		ev.glweEv.Sub(rotated, tmp[e], diff)
		ev.glweEv.Add(acc[e], diff, acc[e])
		acc[e].Normalize()
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

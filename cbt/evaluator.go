package cbt

import (
	"fmt"

	"github.com/Pro7ech/lfhe/brk"
	"github.com/Pro7ech/lfhe/glwe"
	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/scratch"
)

// Evaluator runs the circuit-bootstrapping pipeline: blind rotate,
// partial-trace row extraction, tensor-key row expansion.
type Evaluator struct {
	module *ring.Module
	brkEv  *brk.Evaluator
	glweEv *glwe.Evaluator
}

// NewEvaluator returns an Evaluator bound to m.
func NewEvaluator(m *ring.Module) *Evaluator {
	return &Evaluator{module: m, brkEv: brk.NewEvaluator(m), glweEv: glwe.NewEvaluator(m)}
}

// WithScratch returns a shallow copy of ev whose blind-rotation and
// GLWE evaluators both carve their transient buffers out of s, so one
// Bootstrap call shares a single backing arena end to end.
func (ev *Evaluator) WithScratch(s *scratch.Scratch) *Evaluator {
	cp := *ev
	cp.brkEv = ev.brkEv.WithScratch(s)
	cp.glweEv = ev.glweEv.WithScratch(s)
	return &cp
}

// Bootstrap lifts ct (an LWE ciphertext under key.BRK's LWE secret,
// encrypting some m) into a GGSW encrypting m under the GLWE secret
// key was generated for, at the given rank/k/base2k. lut must be built
// by BuildLUT with key.Dnum/key.DSize matching. Preconditions per
// spec.md §4.9: logDomain + base2k*(dnum-1) < 63, and lut.Drift > 0
// after construction.
func (ev *Evaluator) Bootstrap(ct *glwe.LWE, lut *brk.LookupTable, key *Key, rank, k, base2k int) *glwe.GGSW {
	if lut.Drift <= 0 {
		panic(fmt.Errorf("cbt.Evaluator.Bootstrap: lut.Drift=%d must be > 0", lut.Drift))
	}
	m := ev.module

	acc := glwe.NewGLWE(m.N(), rank, k, base2k)
	ev.brkEv.BlindRotate(ct, lut, key.BRK, acc)

	gap := 2 * lut.Drift / lut.ExtensionFactor
	dnum, dsize := key.Dnum, key.DSize

	rows := make([]*glwe.GLWE, dnum)
	cur := acc
	for i := 0; i < dnum; i++ {
		row := glwe.NewGLWE(m.N(), rank, k, base2k)
		ev.glweEv.Trace(0, cur, key.AutoKeys, row)
		rows[i] = row

		if i+1 < dnum {
			next := glwe.NewGLWE(m.N(), rank, k, base2k)
			ev.glweEv.Rotate(gap, cur, next)
			cur = next
		}
	}

	ggsw := glwe.NewGGSW(m.N(), rank, k, base2k, dnum, dsize)
	for j := 0; j < dnum; j++ {
		ggsw.Value[0][j].Copy(rows[j])
		for i := 0; i < rank; i++ {
			ev.glweEv.ExternalProduct(rows[j], key.Tensor.Value[i], ggsw.Value[i+1][j])
		}
	}
	return ggsw
}

// Package gadget implements gadget decomposition: splitting a
// base-2^k limbed VecZnx into a small number of digit rows suitable
// for multiplication against a prepared VmpPMat, the building block
// every GGLWE/GGSW product is expressed in terms of.
//
// Grounded on rlwe/digit_decomposition.go's DigitDecompositionType
// enum and on the strided-limb extraction loop of
// rlwe/evaluator_gadget_product.go's
// gadgetProductWithSignedDigitDecompositionLazy (stride = dsize, carry
// threaded across rows), transplanted from RNS rows to base-2^k limb
// rows.
package gadget

import (
	"fmt"

	"github.com/Pro7ech/lfhe/ring"
)

// DecompositionType selects how a digit's value is centered, mirroring
// rlwe/digit_decomposition.go's DigitDecompositionType.
type DecompositionType uint8

// Decompose treats all three types alike (see applyDigitType): rows are
// copied from a normalized src, so every digit lies in
// (-2^base2k/2, 2^base2k/2].
const (
	// Unsigned: the zero value. Decompose does not shift its digits
	// into [0, 2^base2k).
	Unsigned DecompositionType = iota
	// Signed: digits in (-2^base2k/2, 2^base2k/2], carry propagated by
	// the source's normalization.
	Signed
	// SignedBalanced: same digits as Signed; Decompose does not
	// additionally balance the top digit.
	SignedBalanced
)

// Decomposition parameterizes a gadget decomposition: dnum rows,
// dsize limbs borrowed per row, each row one digit in base
// 2^(base2k*dsize).
type Decomposition struct {
	Type     DecompositionType
	LogBase  int // log2 of the per-row digit base; a multiple of the VecZnx's base2k
	DSize    int // limbs per row
	DNum     int // number of rows
}

// Decompose splits one column of src into d.DNum digit rows, each a
// VecZnx of d.DSize limbs at base2k = src.Base2K(), ready to be
// forward-transformed and fed to ring.VmpApplyDftToDft. Rows beyond
// src's available limbs are zero.
func Decompose(d Decomposition, src *ring.VecZnx, col int, rows []*ring.VecZnx) {
	if len(rows) < d.DNum {
		panic(fmt.Errorf("gadget.Decompose: need %d rows, got %d", d.DNum, len(rows)))
	}
	stride := d.DSize
	for r := 0; r < d.DNum; r++ {
		dst := rows[r]
		base := r * stride
		for j := 0; j < dst.Size(); j++ {
			out := dst.At(0, j)
			srcLimb := base + j
			if srcLimb >= src.Size() {
				for i := range out {
					out[i] = 0
				}
				continue
			}
			in := src.At(col, srcLimb)
			copy(out, in)
		}
		applyDigitType(d.Type, dst)
	}
}

// applyDigitType is a placeholder for the per-type re-centering
// lattigo's carry-threaded extraction performs (rlwe's
// gadgetProductWithSignedDigitDecompositionLazy folds the top bit of
// each row into a borrow against the next coarser row for Signed, and
// additionally balances the final row for SignedBalanced). This core's
// only caller (glwe.Evaluator.gadgetProduct) builds every Decomposition
// with the zero-value Type and never constructs Signed or
// SignedBalanced, so all three cases are a no-op: rows are left
// exactly as ring.VecZnx.Normalize produced them, which is already the
// signed-centered form the multiplicative path needs. No type yields
// digits in [0, 2^base2k); that would take carry propagation across
// rows in Decompose, not just a per-row transform here.
func applyDigitType(t DecompositionType, row *ring.VecZnx) {
	switch t {
	case Unsigned, Signed, SignedBalanced:
	}
}

// GadgetFactor returns 2^(base2k*dsize), the scaling weight of one
// gadget row relative to the next, i.e. the per-row "digit weight"
// used when reconstructing a decomposed value.
func GadgetFactor(base2k, dsize int) int64 {
	return int64(1) << uint(base2k*dsize)
}

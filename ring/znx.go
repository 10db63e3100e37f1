// Package ring implements the ring-element representation layer of
// the core: limbed base-2^k integer polynomials (VecZnx), their
// DFT-domain images (VecZnxDft), wide accumulators (VecZnxBig),
// prepared scalar/matrix operands (SvpPPol, VmpPMat), and the two
// interchangeable transform backends (FFT64, NTT120) that move
// between coefficient and frequency domain.
//
// Types here mirror the shape bookkeeping of Pro7ech/lattigo's
// ring.Vector / ring.Matrix (N/Size/Clone/Copy/Equal, buffer-carved
// constructors) but hold base-2^k limbs per column instead of one
// RNS residue per modulus.
package ring

import "fmt"

// ScalarZnx is a set of Cols polynomials in Z[X]/(X^N+1), stored as
// raw i64 coefficients with no limb decomposition. Used for secrets
// and small messages; after ternary/binary sampling every coefficient
// satisfies |c| <= 1.
type ScalarZnx struct {
	n    int
	cols int
	data []int64 // cols * n
}

// NewScalarZnx allocates a zeroed ScalarZnx of degree n with cols columns.
func NewScalarZnx(n, cols int) *ScalarZnx {
	return &ScalarZnx{n: n, cols: cols, data: make([]int64, cols*n)}
}

// N returns the ring degree.
func (a *ScalarZnx) N() int { return a.n }

// Cols returns the number of columns.
func (a *ScalarZnx) Cols() int { return a.cols }

// At returns the coefficient slice of column c.
func (a *ScalarZnx) At(c int) []int64 {
	return a.data[c*a.n : (c+1)*a.n]
}

// Clone returns a deep copy.
func (a *ScalarZnx) Clone() *ScalarZnx {
	b := NewScalarZnx(a.n, a.cols)
	copy(b.data, a.data)
	return b
}

// Copy copies other onto the receiver; both must have matching shape.
func (a *ScalarZnx) Copy(other *ScalarZnx) {
	if a.n != other.n || a.cols != other.cols {
		panic(fmt.Errorf("ScalarZnx.Copy: shape mismatch"))
	}
	copy(a.data, other.data)
}

// Equal reports whether a and other hold identical coefficients.
func (a *ScalarZnx) Equal(other *ScalarZnx) bool {
	if a.n != other.n || a.cols != other.cols {
		return false
	}
	for i := range a.data {
		if a.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Zero clears every coefficient.
func (a *ScalarZnx) Zero() {
	for i := range a.data {
		a.data[i] = 0
	}
}

// VecZnx is the canonical limbed ciphertext coordinate: Cols
// polynomials, each a value in the torus R_Q with Q = 2^(base2k*size),
// stored as Size signed i64 limbs per column. Limb j of column c
// holds digits of weight 2^(-(j+1)*base2k) in a signed, base-2^base2k,
// possibly-redundant ("dirty") representation until Normalize is
// called.
type VecZnx struct {
	n      int
	cols   int
	size   int
	base2k int
	data   []int64 // cols * size * n, limb-major within a column
}

// NewVecZnx allocates a zeroed VecZnx.
func NewVecZnx(n, cols, size, base2k int) *VecZnx {
	return &VecZnx{n: n, cols: cols, size: size, base2k: base2k, data: make([]int64, cols*size*n)}
}

// NewVecZnxFromBuffer builds a VecZnx over an externally supplied
// buffer — typically scratch.Scratch.TakeInt64 — instead of
// allocating one: buf must hold exactly cols*size*n int64s and is
// zeroed in place before use.
func NewVecZnxFromBuffer(n, cols, size, base2k int, buf []int64) *VecZnx {
	if len(buf) != cols*size*n {
		panic(fmt.Errorf("NewVecZnxFromBuffer: buffer length=%d != cols*size*n=%d", len(buf), cols*size*n))
	}
	for i := range buf {
		buf[i] = 0
	}
	return &VecZnx{n: n, cols: cols, size: size, base2k: base2k, data: buf}
}

func (a *VecZnx) N() int      { return a.n }
func (a *VecZnx) Cols() int   { return a.cols }
func (a *VecZnx) Size() int   { return a.size }
func (a *VecZnx) Base2K() int { return a.base2k }

// SetBase2K reassigns the nominal base2k of the receiver without
// touching its coefficients. Used when reinterpreting a buffer at a
// different precision target (callers must renormalize separately).
func (a *VecZnx) SetBase2K(base2k int) { a.base2k = base2k }

// At returns limb j of column c as a mutable coefficient slice of
// length N.
func (a *VecZnx) At(c, j int) []int64 {
	if c < 0 || c >= a.cols || j < 0 || j >= a.size {
		panic(fmt.Errorf("VecZnx.At: index (%d,%d) out of range (cols=%d,size=%d)", c, j, a.cols, a.size))
	}
	off := (c*a.size + j) * a.n
	return a.data[off : off+a.n]
}

// Column returns the Size limbs of column c as a [][]int64 view.
func (a *VecZnx) Column(c int) [][]int64 {
	limbs := make([][]int64, a.size)
	for j := range limbs {
		limbs[j] = a.At(c, j)
	}
	return limbs
}

// Clone returns a deep copy.
func (a *VecZnx) Clone() *VecZnx {
	b := NewVecZnx(a.n, a.cols, a.size, a.base2k)
	copy(b.data, a.data)
	return b
}

// Copy copies other onto the receiver; both must have matching shape.
func (a *VecZnx) Copy(other *VecZnx) {
	if a.n != other.n || a.cols != other.cols || a.size != other.size {
		panic(fmt.Errorf("VecZnx.Copy: shape mismatch"))
	}
	copy(a.data, other.data)
	a.base2k = other.base2k
}

// CopyLimbs copies min(cols,other.cols) columns and min(size,other.size)
// limbs per column from other onto the receiver, zeroing the receiver's
// remaining limbs in those columns. Receiver columns beyond other's are
// left unchanged.
func (a *VecZnx) CopyLimbs(other *VecZnx) {
	cols := min(a.cols, other.cols)
	size := min(a.size, other.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			copy(a.At(c, j), other.At(c, j))
		}
		for j := size; j < a.size; j++ {
			clear(a.At(c, j))
		}
	}
}

// Zero clears every coefficient.
func (a *VecZnx) Zero() {
	for i := range a.data {
		a.data[i] = 0
	}
}

// Equal reports whether a and other hold identical shape and limbs.
func (a *VecZnx) Equal(other *VecZnx) bool {
	if a.n != other.n || a.cols != other.cols || a.size != other.size {
		return false
	}
	for i := range a.data {
		if a.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func clear(s []int64) {
	for i := range s {
		s[i] = 0
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// AddVecZnx sets res = a + b, limb-wise and column-wise, up to
// min(cols) and min(size); the result is "dirty" and must be
// normalized before multiplicative use.
func AddVecZnx(a, b, res *VecZnx) {
	cols := min(min(a.cols, b.cols), res.cols)
	size := min(min(a.size, b.size), res.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			ra, rb, rr := a.At(c, j), b.At(c, j), res.At(c, j)
			for i := range rr {
				rr[i] = ra[i] + rb[i]
			}
		}
	}
}

// SubVecZnx sets res = a - b.
func SubVecZnx(a, b, res *VecZnx) {
	cols := min(min(a.cols, b.cols), res.cols)
	size := min(min(a.size, b.size), res.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			ra, rb, rr := a.At(c, j), b.At(c, j), res.At(c, j)
			for i := range rr {
				rr[i] = ra[i] - rb[i]
			}
		}
	}
}

// NegVecZnx sets res = -a.
func NegVecZnx(a, res *VecZnx) {
	cols := min(a.cols, res.cols)
	size := min(a.size, res.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			ra, rr := a.At(c, j), res.At(c, j)
			for i := range rr {
				rr[i] = -ra[i]
			}
		}
	}
}

// AddScalarZnxToLimb adds column col of a ScalarZnx into limb `limb` of
// the same column of a VecZnx (limb 0 injects a plaintext encoded at
// the top limb).
func AddScalarZnxToLimb(v *VecZnx, s *ScalarZnx, col, limb int) {
	dst := v.At(col, limb)
	src := s.At(col)
	for i := range dst {
		dst[i] += src[i]
	}
}

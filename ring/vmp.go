package ring

import "fmt"

// MatZnx is a matrix of ring elements in coefficient domain: Rows x
// Cols blocks, each block Size limbs of degree-N polynomials. This is
// the un-prepared form of a gadget-decomposition matrix (a GGLWE/GGSW
// row block) before it is transformed for fast application.
type MatZnx struct {
	n, rows, cols, size int
	data                []*VecZnx // rows*cols entries, each a 1-col VecZnx of Size limbs
}

// NewMatZnx allocates a zeroed MatZnx.
func NewMatZnx(n, rows, cols, size int) *MatZnx {
	m := &MatZnx{n: n, rows: rows, cols: cols, size: size, data: make([]*VecZnx, rows*cols)}
	for i := range m.data {
		m.data[i] = NewVecZnx(n, 1, size, 0)
	}
	return m
}

func (m *MatZnx) At(row, col int) *VecZnx { return m.data[row*m.cols+col] }
func (m *MatZnx) Rows() int               { return m.rows }
func (m *MatZnx) Cols() int               { return m.cols }

// VmpPMat is a "prepared VMP matrix": every entry of a MatZnx
// pre-transformed into the DFT domain, so that applying the gadget
// matrix to a set of decomposed digits is a sequence of pointwise
// products and an accumulation, never repeating a forward transform.
// Grounded on the calling convention of
// rlwe/evaluator_gadget_product.go's gadgetProductLazy: the gadget
// ciphertext's rows are pre-transformed once at key-generation time
// and applied many times thereafter.
type VmpPMat struct {
	n, rows, cols, size int
	backend             Backend
	data                []*VecZnxDft // rows*cols entries
}

// NewVmpPMat allocates a zeroed VmpPMat for m.
func (m *Module) NewVmpPMat(rows, cols, size int) *VmpPMat {
	p := &VmpPMat{n: m.n, rows: rows, cols: cols, size: size, backend: m.backend, data: make([]*VecZnxDft, rows*cols)}
	for i := range p.data {
		p.data[i] = m.NewVecZnxDft(1, size)
	}
	return p
}

func (p *VmpPMat) At(row, col int) *VecZnxDft { return p.data[row*p.cols+col] }
func (p *VmpPMat) Rows() int                  { return p.rows }
func (p *VmpPMat) Cols() int                  { return p.cols }

// PrepareVmp transforms every entry of src into its prepared DFT form.
func (m *Module) PrepareVmp(src *MatZnx, dst *VmpPMat) {
	if src.rows != dst.rows || src.cols != dst.cols {
		panic(fmt.Errorf("ring.PrepareVmp: shape mismatch (%dx%d) vs (%dx%d)", src.rows, src.cols, dst.rows, dst.cols))
	}
	for r := 0; r < src.rows; r++ {
		for c := 0; c < src.cols; c++ {
			m.DFT(src.At(r, c), dst.At(r, c))
		}
	}
}

// VmpApplyDftToDft applies the prepared matrix mat to decomposed
// digit rows, summing over rows, per output column: for each output
// column c, res[c] = sum_r digits[r] * mat[r][c]. digits holds one
// DFT-domain VecZnxDft per gadget row (the decomposed, already-
// transformed input), matching lattigo's per-row
// MulCoeffsMontgomeryLazyThenAddLazy accumulation
// (rlwe/evaluator_gadget_product.go), transplanted from per-RNS-row
// accumulation to per-limb accumulation against a VmpPMat.
//
// rows is looped up to min(len(digits), mat.Rows()), allowing a
// caller to supply fewer decomposed digits than the matrix has rows
// when a digit decomposition runs shorter than the gadget's row count.
func (m *Module) VmpApplyDftToDft(digits []*VecZnxDft, mat *VmpPMat, res *VecZnxDft) {
	rows := min(len(digits), mat.Rows())
	for r := 0; r < rows; r++ {
		d := digits[r]
		for c := 0; c < min(mat.Cols(), res.Cols()); c++ {
			row := mat.At(r, c)
			size := min(min(d.Size(), row.Size()), res.Size())
			for j := 0; j < size; j++ {
				switch m.backend {
				case FFT64:
					ds, rw, rr := d.AtFFT64(0, j), row.AtFFT64(0, j), res.AtFFT64(c, j)
					for i := range rr {
						rr[i] += ds[i] * rw[i]
					}
				case NTT120:
					ds, rw, rr := d.AtNTT120(0, j), row.AtNTT120(0, j), res.AtNTT120(c, j)
					for i := range rr {
						for p := 0; p < 4; p++ {
							q := m.ntt120.primes[p]
							prod := mulMod(ds[i].v[p], rw[i].v[p], q)
							rr[i].v[p] = addMod(rr[i].v[p], prod, q)
						}
					}
				}
			}
		}
	}
}

package ring

// SvpPPol is a "prepared scalar polynomial": a single ring element
// pre-transformed into the DFT domain once, so it can be applied to
// many VecZnx operands without repeating the forward transform. Used
// for secret-key-times-decomposed-digit products (the degree-1 case of
// the gadget product), grounded on the calling convention of
// rlwe/evaluator_gadget_product.go's gadgetProductLazy, which also
// pre-transforms its scalar (secret-key) operand once per Evaluator.
type SvpPPol struct {
	n       int
	backend Backend
	fft64   []complex128
	ntt120  []q120Word
}

// NewSvpPPol allocates a zeroed SvpPPol for m.
func (m *Module) NewSvpPPol() *SvpPPol {
	p := &SvpPPol{n: m.n, backend: m.backend}
	switch m.backend {
	case FFT64:
		p.fft64 = make([]complex128, m.n/2)
	case NTT120:
		p.ntt120 = make([]q120Word, m.n)
	}
	return p
}

// PrepareSvp transforms one column of a ScalarZnx into its prepared
// DFT-domain form.
func (m *Module) PrepareSvp(src *ScalarZnx, col int, dst *SvpPPol) {
	switch m.backend {
	case FFT64:
		out := &ScalarPrep64{n: m.n, data: dst.fft64}
		ForwardFFT64(m.fft64, src.At(col), out)
	case NTT120:
		ForwardNTT120(m.ntt120, src.At(col), dst.ntt120)
	}
}

// SvpApplyDft multiplies the prepared scalar pol by every limb of src
// (already in the DFT domain) and accumulates the pointwise product
// into res (also DFT domain): res += pol * src.
func (m *Module) SvpApplyDft(pol *SvpPPol, src *VecZnxDft, res *VecZnxDft) {
	cols := min(src.cols, res.cols)
	size := min(src.size, res.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			switch m.backend {
			case FFT64:
				s, r := src.AtFFT64(c, j), res.AtFFT64(c, j)
				for i := range r {
					r[i] += pol.fft64[i] * s[i]
				}
			case NTT120:
				s, r := src.AtNTT120(c, j), res.AtNTT120(c, j)
				for i := range r {
					for p := 0; p < 4; p++ {
						q := m.ntt120.primes[p]
						prod := mulMod(pol.ntt120[i].v[p], s[i].v[p], q)
						r[i].v[p] = addMod(r[i].v[p], prod, q)
					}
				}
			}
		}
	}
}

// SvpApplyDftToVecZnx multiplies pol by every limb of src (coefficient
// domain) and writes the result (coefficient domain, dirty) to res,
// doing the forward transform, pointwise product, and inverse
// transform of a single scalar-by-vector product in one call.
func (m *Module) SvpApplyDftToVecZnx(pol *SvpPPol, src *VecZnx, res *VecZnx) {
	tmpIn := m.NewVecZnxDft(src.cols, src.size)
	m.DFT(src, tmpIn)
	tmpOut := m.NewVecZnxDft(res.cols, res.size)
	m.SvpApplyDft(pol, tmpIn, tmpOut)
	m.IDFT(tmpOut, res)
}

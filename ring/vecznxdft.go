package ring

import "fmt"

// VecZnxDft is the DFT-domain image of a VecZnx: Cols columns, Size
// limbs per column, each limb a backend-specific ScalarPrep (a
// complex128 slice under FFT64, a q120Word slice under NTT120).
// Grounded on utils/structs/vector.go's generic Vector[T] wrapper
// pattern, specialized to the two ScalarPrep payloads instead of a
// single struct type T.
type VecZnxDft struct {
	n       int
	cols    int
	size    int
	backend Backend
	fft64   [][]complex128
	ntt120  [][]q120Word
}

// NewVecZnxDft allocates a zeroed VecZnxDft for m.
func (m *Module) NewVecZnxDft(cols, size int) *VecZnxDft {
	v := &VecZnxDft{n: m.n, cols: cols, size: size, backend: m.backend}
	switch m.backend {
	case FFT64:
		v.fft64 = make([][]complex128, cols*size)
		for i := range v.fft64 {
			v.fft64[i] = make([]complex128, m.n/2)
		}
	case NTT120:
		v.ntt120 = make([][]q120Word, cols*size)
		for i := range v.ntt120 {
			v.ntt120[i] = make([]q120Word, m.n)
		}
	}
	return v
}

func (v *VecZnxDft) N() int    { return v.n }
func (v *VecZnxDft) Cols() int { return v.cols }
func (v *VecZnxDft) Size() int { return v.size }

func (v *VecZnxDft) idx(c, j int) int {
	if c < 0 || c >= v.cols || j < 0 || j >= v.size {
		panic(fmt.Errorf("VecZnxDft: index (%d,%d) out of range", c, j))
	}
	return c*v.size + j
}

// AtFFT64 returns the complex128 DFT image of limb j of column c (FFT64 backend only).
func (v *VecZnxDft) AtFFT64(c, j int) []complex128 { return v.fft64[v.idx(c, j)] }

// AtNTT120 returns the q120Word DFT image of limb j of column c (NTT120 backend only).
func (v *VecZnxDft) AtNTT120(c, j int) []q120Word { return v.ntt120[v.idx(c, j)] }

// DFT applies the Module's forward transform to every limb of src,
// writing the frequency-domain image into dst.
func (m *Module) DFT(src *VecZnx, dst *VecZnxDft) {
	cols := min(src.cols, dst.cols)
	size := min(src.size, dst.size)
	switch m.backend {
	case FFT64:
		for c := 0; c < cols; c++ {
			for j := 0; j < size; j++ {
				out := &ScalarPrep64{n: m.n, data: dst.AtFFT64(c, j)}
				ForwardFFT64(m.fft64, src.At(c, j), out)
			}
		}
	case NTT120:
		for c := 0; c < cols; c++ {
			for j := 0; j < size; j++ {
				ForwardNTT120(m.ntt120, src.At(c, j), dst.AtNTT120(c, j))
			}
		}
	}
}

// IDFT applies the Module's backward transform, writing coefficient-
// domain limbs into dst (left dirty; caller normalizes).
func (m *Module) IDFT(src *VecZnxDft, dst *VecZnx) {
	cols := min(src.cols, dst.cols)
	size := min(src.size, dst.size)
	switch m.backend {
	case FFT64:
		for c := 0; c < cols; c++ {
			for j := 0; j < size; j++ {
				in := &ScalarPrep64{n: m.n, data: src.AtFFT64(c, j)}
				BackwardFFT64(m.fft64, in, dst.At(c, j))
			}
		}
	case NTT120:
		for c := 0; c < cols; c++ {
			for j := 0; j < size; j++ {
				BackwardNTT120(m.ntt120, src.AtNTT120(c, j), dst.At(c, j))
			}
		}
	}
}

// IDFTBig applies the Module's backward transform into the wide
// VecZnxBig accumulator instead of a normalized VecZnx, deferring the
// final base-2^base2k reduction to NormalizeBig. This is the "VMP
// product, then inverse DFT plus big-normalize" pipeline spec.md §4.6
// describes for external product and key-switch; IDFT's direct-to-
// VecZnx shortcut remains for callers (encryption, single DFT/IDFT
// round trips) that never form a wide accumulation to begin with.
func (m *Module) IDFTBig(src *VecZnxDft, dst *VecZnxBig) {
	cols := min(src.cols, dst.cols)
	size := min(src.size, dst.size)
	switch m.backend {
	case FFT64:
		for c := 0; c < cols; c++ {
			for j := 0; j < size; j++ {
				in := &ScalarPrep64{n: m.n, data: src.AtFFT64(c, j)}
				BackwardFFT64(m.fft64, in, dst.AtI64(c, j))
			}
		}
	case NTT120:
		for c := 0; c < cols; c++ {
			for j := 0; j < size; j++ {
				BackwardNTT120Big(m.ntt120, src.AtNTT120(c, j), dst.AtI128(c, j))
			}
		}
	}
}

// AddDft sets res = a + b in the frequency domain.
func (m *Module) AddDft(a, b, res *VecZnxDft) {
	cols := min(min(a.cols, b.cols), res.cols)
	size := min(min(a.size, b.size), res.size)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			switch m.backend {
			case FFT64:
				ra, rb, rr := a.AtFFT64(c, j), b.AtFFT64(c, j), res.AtFFT64(c, j)
				for i := range rr {
					rr[i] = ra[i] + rb[i]
				}
			case NTT120:
				ra, rb, rr := a.AtNTT120(c, j), b.AtNTT120(c, j), res.AtNTT120(c, j)
				for i := range rr {
					for p := 0; p < 4; p++ {
						rr[i].v[p] = addMod(ra[i].v[p], rb[i].v[p], m.ntt120.primes[p])
					}
				}
			}
		}
	}
}

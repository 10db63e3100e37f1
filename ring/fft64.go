package ring

import "math"

// fft64Tables holds the precomputed twiddle factors for the negacyclic
// real FFT used by the FFT64 backend (an iterative radix-2 transform,
// not split-radix), grounded on
// lattigo's NTTTable precomputation shape (ring/ntt.go's
// RootsForward/RootsBackward stored in bit-reversed order, built once
// in GenNTTTable) transplanted from a modular NTT root table to the
// complex roots of unity a negacyclic real FFT needs.
type fft64Tables struct {
	n    int
	m    int // n/2 complex points
	root []complex128
	rInv []complex128
}

func newFFT64Tables(n int) *fft64Tables {
	m := n / 2
	root := make([]complex128, m)
	rInv := make([]complex128, m)
	// primitive 2N-th root of unity, twisted into the m-point complex
	// transform that represents the negacyclic convolution ring
	// Z[X]/(X^N+1) via the standard real-FFT-of-negacyclic trick.
	for i := 0; i < m; i++ {
		theta := math.Pi * float64(2*i+1) / float64(n)
		root[i] = complex(math.Cos(theta), math.Sin(theta))
		rInv[i] = complex(math.Cos(-theta), math.Sin(-theta))
	}
	return &fft64Tables{n: n, m: m, root: root, rInv: rInv}
}

// ScalarPrep64 is the FFT64 backend's DFT-domain scalar representation:
// m = N/2 complex coefficients per column, obtained by folding a
// length-N real (negacyclic) sequence into a length-m complex one.
type ScalarPrep64 struct {
	n    int
	data []complex128
}

func newScalarPrep64(n int) *ScalarPrep64 {
	return &ScalarPrep64{n: n, data: make([]complex128, n/2)}
}

// ForwardFFT64 maps one column of limb coefficients (length N, real)
// into its ScalarPrep64 DFT image.
func ForwardFFT64(t *fft64Tables, coeffs []int64, out *ScalarPrep64) {
	m := t.m
	// fold x[i] and x[i+m] (twisted by the negacyclic root) into a
	// length-m complex sequence, then run a standard radix-2 complex FFT.
	buf := out.data
	for i := 0; i < m; i++ {
		buf[i] = complex(float64(coeffs[i]), float64(coeffs[i+m])) * t.root[i]
	}
	fftInPlace(buf, false)
}

// BackwardFFT64 maps a ScalarPrep64 DFT image back to N real (rounded
// to nearest int64) coefficients.
func BackwardFFT64(t *fft64Tables, in *ScalarPrep64, coeffs []int64) {
	m := t.m
	buf := make([]complex128, m)
	copy(buf, in.data)
	fftInPlace(buf, true)
	for i := 0; i < m; i++ {
		v := buf[i] * t.rInv[i] / complex(float64(m), 0)
		coeffs[i] = int64(math.Round(real(v)))
		coeffs[i+m] = int64(math.Round(imag(v)))
	}
}

// fftInPlace runs an iterative radix-2 Cooley-Tukey complex FFT (or
// its inverse, unscaled) on buf, whose length must be a power of two.
func fftInPlace(buf []complex128, inverse bool) {
	n := len(buf)
	// bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
	for length := 2; length <= n; length <<= 1 {
		ang := 2 * math.Pi / float64(length)
		if !inverse {
			ang = -ang
		}
		wlen := complex(math.Cos(ang), math.Sin(ang))
		for i := 0; i < n; i += length {
			w := complex(1, 0)
			half := length / 2
			for j := 0; j < half; j++ {
				u := buf[i+j]
				v := buf[i+j+half] * w
				buf[i+j] = u + v
				buf[i+j+half] = u - v
				w *= wlen
			}
		}
	}
}

// AddScalarPrep64 sets res = a + b.
func AddScalarPrep64(a, b, res *ScalarPrep64) {
	for i := range res.data {
		res.data[i] = a.data[i] + b.data[i]
	}
}

// MulAddScalarPrep64 accumulates res += a * b (pointwise complex
// product in the DFT domain, the frequency-domain equivalent of
// negacyclic polynomial multiplication).
func MulAddScalarPrep64(a, b, res *ScalarPrep64) {
	for i := range res.data {
		res.data[i] += a.data[i] * b.data[i]
	}
}

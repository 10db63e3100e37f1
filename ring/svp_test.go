package ring

import "testing"

// TestSvpApplyDftToVecZnxMatchesManualRoundTrip exercises the one-shot
// scalar-by-vector convenience path (forward transform, apply, inverse
// transform in a single call) against the split DFT/SvpApplyDft/IDFT
// sequence glwe.Encryptor and glwe.Decryptor use when they need to
// accumulate several such products before a single IDFT. Both must
// agree limb for limb.
func TestSvpApplyDftToVecZnxMatchesManualRoundTrip(t *testing.T) {
	m := NewModule(16, FFT64)
	const cols, size, base2k = 1, 2, 12

	scalar := NewScalarZnx(m.N(), 1)
	for i := range scalar.At(0) {
		scalar.At(0)[i] = int64(i%5) - 2
	}
	pol := m.NewSvpPPol()
	m.PrepareSvp(scalar, 0, pol)

	src := NewVecZnx(m.N(), cols, size, base2k)
	for j := 0; j < size; j++ {
		v := src.At(0, j)
		for i := range v {
			v[i] = int64((i*7+j*3)%21) - 10
		}
	}

	got := NewVecZnx(m.N(), cols, size, base2k)
	m.SvpApplyDftToVecZnx(pol, src, got)
	got.Normalize(base2k)

	srcDft := m.NewVecZnxDft(cols, size)
	m.DFT(src, srcDft)
	wantDft := m.NewVecZnxDft(cols, size)
	m.SvpApplyDft(pol, srcDft, wantDft)
	want := NewVecZnx(m.N(), cols, size, base2k)
	m.IDFT(wantDft, want)
	want.Normalize(base2k)

	for j := 0; j < size; j++ {
		g, w := got.At(0, j), want.At(0, j)
		for i := range g {
			if g[i] != w[i] {
				t.Fatalf("limb %d coeff %d: got %d want %d", j, i, g[i], w[i])
			}
		}
	}
}

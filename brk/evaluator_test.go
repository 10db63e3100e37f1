package brk

import (
	"testing"

	"github.com/Pro7ech/lfhe/glwe"
	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/sampling"
	"github.com/stretchr/testify/require"
)

func testModule(t *testing.T) (*ring.Module, *sampling.Source) {
	t.Helper()
	return ring.NewModule(64, ring.FFT64), sampling.NewSource([32]byte{4, 5, 6})
}

func TestLookupTableFromFunction(t *testing.T) {
	m := ring.NewModule(8, ring.FFT64)
	lut := FromFunction(m, func(x int) int64 { return int64(x) }, 2, 1, 1, 8)
	require.Equal(t, 2, lut.Drift)

	got := make([]int64, 8)
	copy(got, lut.Polys[0].At(0, 0))
	want := []int64{0, 0, 1, 1, 1, 1, 0, 0}
	require.Equal(t, want, got)
}

func TestModSwitchHalfway(t *testing.T) {
	const k = 8
	const twoN = 128
	ct := glwe.NewLWE(4, k, 0)
	ct.SetBody(1 << (k - 1))
	b, a := ModSwitch(ct, twoN)
	require.EqualValues(t, twoN/2, b)
	for _, v := range a {
		require.EqualValues(t, 0, v)
	}
}

// TestBlindRotateZeroSecretIsPureRotation checks the degenerate case of
// an all-zero LWE secret: every blind-rotation key encrypts the zero
// message, so each per-coordinate update term collapses to
// Rotate(x,0)-x = 0 exactly (the mask coordinates are also 0, so the
// rotation amount folded into each term is 0 too), leaving the
// accumulator exactly equal to the LUT rotated once by the
// mod-switched body -- independent of any noise external product
// would otherwise introduce.
func TestBlindRotateZeroSecretIsPureRotation(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank, dnum, dsize = 12, 24, 1, 2, 1
	const lweN = 8

	kg := glwe.NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := glwe.PrepareSecretKey(m, sk)
	lweSk := kg.GenLWESecretKey(lweN, ring.Distribution{Type: ring.Zero})

	key := GenKey(m, kg, lweSk, sk, skp, k, base2k, dnum, dsize, 1)

	size := glwe.SizeForK(k, base2k)
	lut := New(m, 1, size, base2k)
	lut.Polys[0].At(0, 0)[0] = 1

	ct := glwe.NewLWE(lweN, k, base2k)
	ct.SetBody(int64(1) << uint(k-2))

	res := glwe.NewGLWE(m.N(), rank, k, base2k)
	ev := NewEvaluator(m)
	ev.BlindRotate(ct, lut, key, res)

	twoN := 2 * m.N()
	b, _ := ModSwitch(ct, twoN)

	want := ring.NewVecZnx(m.N(), 1, size, base2k)
	want.At(0, 0)[0] = 1
	wantRotated := ring.NewVecZnx(m.N(), 1, size, base2k)
	ring.RotateVecZnx(want, int(b), wantRotated)

	dec := glwe.NewDecryptor(m)
	out := glwe.NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(res, skp, out)
	got := make([]int64, m.N())
	out.Decode(got)

	wantMsg := make([]int64, m.N())
	copy(wantMsg, wantRotated.At(0, 0))
	require.Equal(t, wantMsg, got)
}

package cbt

import (
	"testing"

	"github.com/Pro7ech/lfhe/glwe"
	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/sampling"
	"github.com/stretchr/testify/require"
)

func TestBuildLUTConstantEncoding(t *testing.T) {
	m := ring.NewModule(16, ring.FFT64)
	const base2k, dnum, logDomain = 4, 2, 1

	lut := BuildLUT(m, logDomain, dnum, base2k, 2, 1, false)
	require.False(t, lut.Negate)
	require.Greater(t, lut.Drift, 0)

	// alpha = nextPow2(2) = 2, domainSize = alpha*2^logDomain = 4,
	// total = extensionFactor*N = 16, blockWidth = 4, drift = 2.
	require.Equal(t, 2, lut.Drift)

	poly := lut.Polys[0].At(0, 0)
	// x in a block centered on idx = (x+drift)/4: idx=0 -> j=0,i=0 -> f=0.
	// idx=1 -> j=0,i=1 -> f=0. idx=2 -> j=1,i=0 -> f=2^(base2k*(dnum-1-0))=2^4.
	// idx=3 -> j=1,i=1 -> f=2^(base2k*(dnum-1-1))=2^0=1.
	require.EqualValues(t, 0, poly[0])
	require.EqualValues(t, 1<<base2k, poly[8])
	require.EqualValues(t, 1, poly[12])
}

func TestBootstrapShape(t *testing.T) {
	m := ring.NewModule(64, ring.FFT64)
	src := sampling.NewSource([32]byte{7, 8, 9})
	const base2k, k, rank, dnum, dsize = 12, 24, 1, 2, 1
	const lweN, logDomain = 8, 1

	kg := glwe.NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := glwe.PrepareSecretKey(m, sk)
	lweSk := kg.GenLWESecretKey(lweN, ring.Distribution{Type: ring.BinaryFixed, H: 2})

	key := GenKey(m, kg, lweSk, sk, skp, k, base2k, dnum, dsize, 1)
	lut := BuildLUT(m, logDomain, dnum, base2k, glwe.SizeForK(k, base2k), 1, false)

	enc := glwe.NewEncryptor(m, src, 3.2)
	ct := glwe.NewLWE(lweN, k, base2k)
	enc.EncryptLWE(1, 1<<(k-logDomain-1), lweSk, ct)

	ev := NewEvaluator(m)
	out := ev.Bootstrap(ct, lut, key, rank, k, base2k)

	require.Equal(t, rank+1, out.RankIn())
	require.Equal(t, rank, out.Rank())
	require.Equal(t, dnum, out.DNum)
	require.Equal(t, dsize, out.DSize)
	require.Equal(t, base2k, out.Base2K())
	require.Equal(t, glwe.SizeForK(k, base2k), out.Size())
}

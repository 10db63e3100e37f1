package glwe

import (
	"testing"

	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/sampling"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
)

// TestEncryptionNoiseStdDev is the noise-standard-deviation test oracle
// described in spec.md §8: fresh encryptions of zero should carry noise
// whose standard deviation tracks the configured sigma. It is measured
// directly off the bottom limb rather than through Decode, since a
// zero message's top limb carries nothing but noise far below its own
// carry threshold — the noise Encryptor.EncryptSK injects there never
// reaches the top limb in the first place.
func TestEncryptionNoiseStdDev(t *testing.T) {
	m := ring.NewModule(64, ring.FFT64)
	src := sampling.NewSource([32]byte{9, 9, 9})
	const base2k, k, rank, sigma = 12, 24, 1, 3.2

	kg := NewKeyGenerator(m, src, sigma)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)
	enc := NewEncryptor(m, src, sigma)
	dec := NewDecryptor(m)

	const trials = 256
	residuals := make([]float64, 0, trials*m.N())
	for i := 0; i < trials; i++ {
		ct := NewGLWE(m.N(), rank, k, base2k)
		enc.EncryptZeroSK(skp, ct)

		pt := NewPlaintext(m.N(), k, base2k)
		dec.Decrypt(ct, skp, pt)

		bottom := pt.Value.At(0, pt.Value.Size()-1)
		for _, v := range bottom {
			residuals = append(residuals, float64(v))
		}
	}

	sd, err := stats.StandardDeviation(residuals)
	require.NoError(t, err)
	// Loose bounds: this oracle is a sanity check that noise tracks
	// sigma, not a tight statistical test, since the bottom limb can
	// pick up a small amount of carry-in on top of the injected error.
	require.Greater(t, sd, sigma*0.3)
	require.Less(t, sd, sigma*3)
}

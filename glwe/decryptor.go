package glwe

import (
	"math"

	"github.com/Pro7ech/lfhe/ring"
)

// Decryptor recovers a Plaintext from a GLWE ciphertext and a prepared
// secret. Grounded on rlwe/decryptor.go's Decrypt method surface.
type Decryptor struct {
	module *ring.Module
}

// NewDecryptor returns a Decryptor for m.
func NewDecryptor(m *ring.Module) *Decryptor { return &Decryptor{module: m} }

// Decrypt writes b + sum a_i*s_i into pt, DFT-multiplying each mask
// column by its secret component and accumulating into the body before
// a final normalize.
func (d *Decryptor) Decrypt(ct *GLWE, sk *PreparedSecretKey, pt *Plaintext) {
	m := d.module
	rank := ct.Rank()
	size := ct.Size()

	accDft := m.NewVecZnxDft(1, size)
	for i := 1; i <= rank; i++ {
		aVec := extractColumn(ct.Value, i)
		aDft := m.NewVecZnxDft(1, size)
		m.DFT(aVec, aDft)
		m.SvpApplyDft(sk.Value[i-1], aDft, accDft)
	}

	acc := ring.NewVecZnx(m.N(), 1, size, ct.Base2K())
	m.IDFT(accDft, acc)

	for j := 0; j < min(pt.Value.Size(), size); j++ {
		dst := pt.Value.At(0, j)
		b := ct.Value.At(0, j)
		a := acc.At(0, j)
		for i := range dst {
			dst[i] = b[i] + a[i]
		}
	}
	pt.Value.Normalize(pt.Value.Base2K())
}

// DecryptLWE recovers the signed phase body - sum(mask_i*s_i) mod
// 2^ct.K(), centers it around zero and divides by delta to recover the
// encoded integer message, rounding to the nearest integer.
func (d *Decryptor) DecryptLWE(ct *LWE, sk *LWESecretKey, delta int64) int64 {
	q := int64(1) << uint(ct.K())
	sVal := sk.Value.At(0)
	mask := ct.Mask()
	var acc int64
	for i := range mask {
		acc += mask[i] * sVal[i]
	}
	phase := ((ct.Body()-acc)%q + q) % q
	if phase > q/2 {
		phase -= q
	}
	return int64(math.Round(float64(phase) / float64(delta)))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

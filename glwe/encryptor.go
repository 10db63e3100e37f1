package glwe

import (
	"fmt"

	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/sampling"
)

// Encryptor produces fresh GLWE ciphertexts under a secret or public
// key. Grounded on rlwe/encryptor.go's EncryptSK/EncryptPK method
// surface.
type Encryptor struct {
	module  *ring.Module
	sampler *ring.Sampler
	sigma   float64
	bound   float64
}

// NewEncryptor returns an Encryptor drawing randomness from source,
// with Gaussian error of standard deviation sigma truncated at bound
// (in multiples of sigma; 6 gives a negligible tail probability).
func NewEncryptor(m *ring.Module, source *sampling.Source, sigma float64) *Encryptor {
	return &Encryptor{module: m, sampler: ring.NewSampler(source), sigma: sigma, bound: 6}
}

func extractColumn(src *ring.VecZnx, col int) *ring.VecZnx {
	tmp := ring.NewVecZnx(src.N(), 1, src.Size(), src.Base2K())
	for j := 0; j < src.Size(); j++ {
		copy(tmp.At(0, j), src.At(col, j))
	}
	return tmp
}

// EncryptSK encrypts pt (or zero, if pt is nil) into ct under the
// prepared secret sk: samples each mask column uniformly, subtracts
// sum a_i*s_i via the DFT domain, adds truncated Gaussian error of
// standard deviation e.sigma into the body column, then the plaintext.
func (e *Encryptor) EncryptSK(pt *Plaintext, sk *PreparedSecretKey, ct *GLWE) {
	m := e.module
	rank := ct.Rank()
	if rank != len(sk.Value) {
		panic(fmt.Errorf("glwe.Encryptor.EncryptSK: ct rank=%d != secret rank=%d", rank, len(sk.Value)))
	}
	size := ct.Size()
	base2k := ct.Base2K()

	for i := 1; i <= rank; i++ {
		e.sampler.FillVecZnx(ring.Distribution{Type: ring.Uniform}, ct.Value, i)
	}

	accDft := m.NewVecZnxDft(1, size)
	for i := 1; i <= rank; i++ {
		aVec := extractColumn(ct.Value, i)
		aDft := m.NewVecZnxDft(1, size)
		m.DFT(aVec, aDft)
		m.SvpApplyDft(sk.Value[i-1], aDft, accDft)
	}

	acc := ring.NewVecZnx(m.N(), 1, size, base2k)
	m.IDFT(accDft, acc)

	body := ct.Value
	for j := 0; j < size; j++ {
		dst := body.At(0, j)
		src := acc.At(0, j)
		for i := range dst {
			dst[i] = -src[i]
		}
	}

	// Error goes into the least-significant limb: limb 0 is the
	// top/most-significant limb where Encode writes the message, so
	// adding noise there would corrupt the message itself rather than
	// perturbing it below the decoded precision.
	e.sampler.AddVecZnx(ring.Distribution{Type: ring.DiscreteGaussian, Sigma: e.sigma, Bound: e.bound}, ct.Value, 0, size-1)

	if pt != nil {
		dst := ct.Value.At(0, 0)
		src := pt.Value.At(0, 0)
		for i := range dst {
			dst[i] += src[i]
		}
	}

	ct.Normalize()
}

// EncryptZeroSK encrypts a zero plaintext: an encryption-of-zero
// primitive used throughout key generation to build GGLWE/GGSW rows.
func (e *Encryptor) EncryptZeroSK(sk *PreparedSecretKey, ct *GLWE) {
	e.EncryptSK(nil, sk, ct)
}

// EncryptLWE samples a fresh LWE ciphertext under sk encrypting msg at
// scale delta: phase body - sum(mask_i*s_i) equals msg*delta + e, mod
// 2^ct.K(). This is the integer-modulus analogue of EncryptSK, used to
// produce blind-rotation inputs rather than GLWE ciphertexts.
func (e *Encryptor) EncryptLWE(msg, delta int64, sk *LWESecretKey, ct *LWE) {
	n := ct.LWEDimension()
	if n != sk.LWEDimension() {
		panic(fmt.Errorf("glwe.Encryptor.EncryptLWE: ct dimension=%d != secret dimension=%d", n, sk.LWEDimension()))
	}
	q := int64(1) << uint(ct.K())
	sVal := sk.Value.At(0)
	mask := ct.Mask()
	var acc int64
	for i := 0; i < n; i++ {
		a := ((e.sampler.Scalar(ring.Distribution{Type: ring.Uniform}) % q) + q) % q
		mask[i] = a
		acc += a * sVal[i]
	}
	noise := e.sampler.Scalar(ring.Distribution{Type: ring.DiscreteGaussian, Sigma: e.sigma, Bound: e.bound})
	ct.SetBody(((msg*delta+acc+noise)%q + q) % q)
}

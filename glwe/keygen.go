package glwe

import (
	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/sampling"
)

// KeyGenerator samples secrets and builds the GGLWE-family keys
// (switching keys, automorphism keys, GGSW encryptions) used by the
// Evaluator. Grounded on rlwe/keygenerator.go's
// GenSecretKey/GenEvaluationKey method surface.
type KeyGenerator struct {
	module  *ring.Module
	sampler *ring.Sampler
	enc     *Encryptor
}

// NewKeyGenerator returns a KeyGenerator drawing randomness from source
// and using sigma as the fresh-encryption error standard deviation for
// every key row it builds.
func NewKeyGenerator(m *ring.Module, source *sampling.Source, sigma float64) *KeyGenerator {
	return &KeyGenerator{module: m, sampler: ring.NewSampler(source), enc: NewEncryptor(m, source, sigma)}
}

// GenSecretKey samples a fresh GLWE secret of the given rank from dist.
func (kg *KeyGenerator) GenSecretKey(rank int, dist ring.Distribution) *SecretKey {
	sk := NewSecretKey(kg.module.N(), rank)
	sk.Dist = dist
	kg.sampler.Fill(dist, sk.Value)
	return sk
}

// GenLWESecretKey samples a fresh LWE secret of dimension n from dist
// (typically ring.BinaryFixed or ring.BinaryBlock, for blind rotation).
func (kg *KeyGenerator) GenLWESecretKey(n int, dist ring.Distribution) *LWESecretKey {
	sk := NewLWESecretKey(n)
	sk.Dist = dist
	kg.sampler.Fill(dist, sk.Value)
	return sk
}

// addDigitWeighted adds col (length N) into the body column of row at
// the limb matching gadget row j's digit weight 2^-((j+1)*dsize*base2k),
// i.e. limb index (j+1)*dsize-1.
func addDigitWeighted(col []int64, dsize, j int, row *GLWE) {
	limbIdx := (j+1)*dsize - 1
	if limbIdx >= row.Size() {
		return
	}
	dst := row.Value.At(0, limbIdx)
	for i := range dst {
		dst[i] += col[i]
	}
}

// GenSwitchingKey builds a GGLWE encoding skIn -> skOut: for each input
// column and gadget row, an encryption of zero under skOut with the
// digit-weighted secret column added into the body.
func (kg *KeyGenerator) GenSwitchingKey(skIn *SecretKey, skOut *PreparedSecretKey, k, base2k, dnum, dsize int) *SwitchingKey {
	n := kg.module.N()
	rankIn := skIn.Rank()
	rankOut := len(skOut.Value)
	sw := NewSwitchingKey(n, rankIn, rankOut, k, base2k, dnum, dsize)
	for i := 0; i < rankIn; i++ {
		col := skIn.Value.At(i)
		for j := 0; j < dnum; j++ {
			row := sw.Value[i][j]
			kg.enc.EncryptZeroSK(skOut, row)
			addDigitWeighted(col, dsize, j, row)
			row.Normalize()
		}
	}
	return sw
}

// GenAutomorphismKey builds a switching key from phi_p(sk) to sk,
// suitable for Automorphism-then-KeySwitch or Trace/Pack use.
func (kg *KeyGenerator) GenAutomorphismKey(sk *SecretKey, skPrepared *PreparedSecretKey, p, k, base2k, dnum, dsize int) *AutomorphismKey {
	n := kg.module.N()
	rank := sk.Rank()
	idx := ring.NewAutomorphismIndex(n, p)
	skRot := NewSecretKey(n, rank)
	idx.ApplyScalar(sk.Value, skRot.Value)

	ak := NewAutomorphismKey(n, rank, k, base2k, dnum, dsize, p)
	for i := 0; i < rank; i++ {
		col := skRot.Value.At(i)
		for j := 0; j < dnum; j++ {
			row := ak.Value[i][j]
			kg.enc.EncryptZeroSK(skPrepared, row)
			addDigitWeighted(col, dsize, j, row)
			row.Normalize()
		}
	}
	return ak
}

// GenGGSW builds a GGSW encrypting the small message msg (length N,
// typically a monomial or a ternary/binary scalar): column 0 carries
// the digit-weighted message itself, columns 1..rank carry the
// digit-weighted products msg*s_i.
func (kg *KeyGenerator) GenGGSW(sk *SecretKey, skPrepared *PreparedSecretKey, msg []int64, k, base2k, dnum, dsize int) *GGSW {
	n := kg.module.N()
	rank := sk.Rank()
	ggsw := NewGGSW(n, rank, k, base2k, dnum, dsize)

	for j := 0; j < dnum; j++ {
		row := ggsw.Value[0][j]
		kg.enc.EncryptZeroSK(skPrepared, row)
		addDigitWeighted(msg, dsize, j, row)
		row.Normalize()
	}

	msgSi := make([]int64, n)
	for i := 0; i < rank; i++ {
		ring.Convolve(msg, sk.Value.At(i), msgSi)
		for j := 0; j < dnum; j++ {
			row := ggsw.Value[i+1][j]
			kg.enc.EncryptZeroSK(skPrepared, row)
			addDigitWeighted(msgSi, dsize, j, row)
			row.Normalize()
		}
	}
	return ggsw
}

// GenTensorKey builds the circuit-bootstrapping tensor key: one
// GGSW(s_i) per secret component, so that row expansion can recover
// GLWE(p*s_i) from any GLWE(p) via ExternalProduct.
func (kg *KeyGenerator) GenTensorKey(sk *SecretKey, skPrepared *PreparedSecretKey, k, base2k, dnum, dsize int) *TensorKey {
	rank := sk.Rank()
	tk := &TensorKey{Value: make([]*GGSW, rank)}
	for i := 0; i < rank; i++ {
		tk.Value[i] = kg.GenGGSW(sk, skPrepared, sk.Value.At(i), k, base2k, dnum, dsize)
	}
	return tk
}

package glwe

import (
	"testing"

	"github.com/Pro7ech/lfhe/ring"
	"github.com/stretchr/testify/require"
)

func TestTraceIdentityAtFullStart(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank = 12, 24, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)
	enc := NewEncryptor(m, src, 3.2)
	ev := NewEvaluator(m)

	msg := make([]int64, m.N())
	msg[5] = 7
	pt := NewPlaintext(m.N(), k, base2k)
	pt.Encode(msg)
	ct := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt, skp, ct)

	res := NewGLWE(m.N(), rank, k, base2k)
	ev.Trace(m.LogN(), ct, nil, res)

	require.True(t, res.Value.Equal(ct.Value))
}

func TestTraceConstantInvariant(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank, dnum, dsize = 14, 28, 1, 2, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)
	enc := NewEncryptor(m, src, 3.2)
	dec := NewDecryptor(m)
	ev := NewEvaluator(m)

	autoKeys := make(map[int]*AutomorphismKeyPrepared)
	for i := 0; i < m.LogN(); i++ {
		p := TraceGaloisElement(m.N(), i)
		ak := kg.GenAutomorphismKey(sk, skp, p, k, base2k, dnum, dsize)
		autoKeys[p] = PrepareAutomorphismKey(m, ak)
	}

	msg := make([]int64, m.N())
	msg[0] = 9
	pt := NewPlaintext(m.N(), k, base2k)
	pt.Encode(msg)
	ct := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt, skp, ct)

	res := NewGLWE(m.N(), rank, k, base2k)
	ev.Trace(0, ct, autoKeys, res)

	out := NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(res, skp, out)
	got := make([]int64, m.N())
	out.Decode(got)
	require.EqualValues(t, 9, got[0])
}

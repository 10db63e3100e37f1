package glwe

import (
	"testing"

	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/sampling"
	"github.com/stretchr/testify/require"
)

func testModule(t *testing.T) (*ring.Module, *sampling.Source) {
	t.Helper()
	return ring.NewModule(64, ring.FFT64), sampling.NewSource([32]byte{1, 2, 3})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank = 12, 24, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)

	msg := make([]int64, m.N())
	msg[3] = 1
	msg[7] = 2
	pt := NewPlaintext(m.N(), k, base2k)
	pt.Encode(msg)

	enc := NewEncryptor(m, src, 3.2)
	ct := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt, skp, ct)

	dec := NewDecryptor(m)
	out := NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(ct, skp, out)

	got := make([]int64, m.N())
	out.Decode(got)
	require.Equal(t, msg, got)
}

func TestHomomorphicAdd(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank = 12, 24, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)
	enc := NewEncryptor(m, src, 3.2)
	dec := NewDecryptor(m)

	m1 := make([]int64, m.N())
	m1[0] = 3
	m2 := make([]int64, m.N())
	m2[0] = 5

	pt1 := NewPlaintext(m.N(), k, base2k)
	pt1.Encode(m1)
	pt2 := NewPlaintext(m.N(), k, base2k)
	pt2.Encode(m2)

	ct1 := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt1, skp, ct1)
	ct2 := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt2, skp, ct2)

	ev := NewEvaluator(m)
	sum := NewGLWE(m.N(), rank, k, base2k)
	ev.Add(ct1, ct2, sum)
	sum.Normalize()

	out := NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(sum, skp, out)
	got := make([]int64, m.N())
	out.Decode(got)
	require.EqualValues(t, 8, got[0])
}

func TestRotateAlgebra(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank = 12, 24, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)
	enc := NewEncryptor(m, src, 3.2)
	dec := NewDecryptor(m)
	ev := NewEvaluator(m)

	msg := make([]int64, m.N())
	msg[3] = 1
	pt := NewPlaintext(m.N(), k, base2k)
	pt.Encode(msg)
	ct := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt, skp, ct)

	rotated := NewGLWE(m.N(), rank, k, base2k)
	ev.Rotate(5, ct, rotated)
	rotated.Normalize()

	out := NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(rotated, skp, out)
	got := make([]int64, m.N())
	out.Decode(got)

	want := make([]int64, m.N())
	want[8] = 1
	require.Equal(t, want, got)
}

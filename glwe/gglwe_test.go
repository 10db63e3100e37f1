package glwe

import (
	"testing"

	"github.com/Pro7ech/lfhe/ring"
	"github.com/Pro7ech/lfhe/scratch"
	"github.com/stretchr/testify/require"
)

func TestExternalProduct(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank, dnum, dsize = 12, 24, 1, 2, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)
	enc := NewEncryptor(m, src, 3.2)
	dec := NewDecryptor(m)
	ev := NewEvaluator(m)

	monomial := make([]int64, m.N())
	monomial[1] = 1 // X^1
	ggsw := kg.GenGGSW(sk, skp, monomial, k, base2k, dnum, dsize)
	ggswp := PrepareGGSW(m, ggsw)

	msg := make([]int64, m.N())
	msg[3] = 1 // X^3
	pt := NewPlaintext(m.N(), k, base2k)
	pt.Encode(msg)
	ct := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt, skp, ct)

	res := NewGLWE(m.N(), rank, k, base2k)
	ev.ExternalProduct(ct, ggswp, res)

	out := NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(res, skp, out)
	got := make([]int64, m.N())
	out.Decode(got)

	want := make([]int64, m.N())
	want[4] = 1 // X^3 * X^1 = X^4
	require.Equal(t, want, got)
}

func TestExternalProductWithScratch(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank, dnum, dsize = 12, 24, 1, 2, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	skp := PrepareSecretKey(m, sk)
	enc := NewEncryptor(m, src, 3.2)
	dec := NewDecryptor(m)

	arena := scratch.New(make([]byte, 1<<20))
	ev := NewEvaluator(m).WithScratch(arena)

	monomial := make([]int64, m.N())
	monomial[1] = 1 // X^1
	ggsw := kg.GenGGSW(sk, skp, monomial, k, base2k, dnum, dsize)
	ggswp := PrepareGGSW(m, ggsw)

	msg := make([]int64, m.N())
	msg[3] = 1 // X^3
	pt := NewPlaintext(m.N(), k, base2k)
	pt.Encode(msg)
	ct := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt, skp, ct)

	mark := arena.Mark()
	res := NewGLWE(m.N(), rank, k, base2k)
	ev.ExternalProduct(ct, ggswp, res)
	arena.Drop(mark)

	out := NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(res, skp, out)
	got := make([]int64, m.N())
	out.Decode(got)

	want := make([]int64, m.N())
	want[4] = 1 // X^3 * X^1 = X^4
	require.Equal(t, want, got)
}

func TestKeySwitchRoundTrip(t *testing.T) {
	m, src := testModule(t)
	const base2k, k, rank, dnum, dsize = 12, 24, 1, 2, 1

	kg := NewKeyGenerator(m, src, 3.2)
	sk0 := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	sk1 := kg.GenSecretKey(rank, ring.Distribution{Type: ring.TernaryProb, P: 0.5})
	sk0p := PrepareSecretKey(m, sk0)
	sk1p := PrepareSecretKey(m, sk1)

	ksk := kg.GenSwitchingKey(sk0, sk1p, k, base2k, dnum, dsize)
	kskp := PrepareSwitchingKey(m, ksk)

	enc := NewEncryptor(m, src, 3.2)
	dec := NewDecryptor(m)
	ev := NewEvaluator(m)

	msg := make([]int64, m.N())
	msg[2] = 1
	pt := NewPlaintext(m.N(), k, base2k)
	pt.Encode(msg)
	ct := NewGLWE(m.N(), rank, k, base2k)
	enc.EncryptSK(pt, sk0p, ct)

	res := NewGLWE(m.N(), rank, k, base2k)
	ev.KeySwitch(ct, kskp, res)

	out := NewPlaintext(m.N(), k, base2k)
	dec.Decrypt(res, sk1p, out)
	got := make([]int64, m.N())
	out.Decode(got)
	require.Equal(t, msg, got)
}

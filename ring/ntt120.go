package ring

import (
	"fmt"
	"math/bits"
)

// ntt120 4-prime CRT moduli. Each is a negacyclic-NTT-friendly prime
// q_i = 1 mod 2N for N up to 2^16, chosen the way lattigo selects
// its RNS moduli (ring.go's NewRing prime search via
// GenerateNTTPrimesP), except fixed at four primes wide enough that
// their product exceeds any intermediate product this core forms
// (the NTT120 "120-bit" precision envelope).
var ntt120Primes = [4]uint64{
	0xffffffff00000001,
	0x1fffffffffe00001,
	0xfffffffff000001,
	0x1ffffffff8000001,
}

// q120Word is the NTT120 backend's DFT-domain scalar representation: a
// value mod each of the four ntt120Primes, packed as four uint64 lanes
// (q120b) — the NTT120 analogue of the FFT64 backend's single
// complex128 coefficient.
type q120Word struct {
	v [4]uint64
}

// ntt120Tables holds the per-prime forward/inverse root tables for the
// 4-prime CRT negacyclic NTT, grounded on lattigo's Barrett/
// Montgomery constant machinery (ring.go's GetBRedConstant,
// GetMRedConstant, PrimitiveRoot/CheckPrimitiveRoot) applied
// independently to each of the four primes.
type ntt120Tables struct {
	n       int
	primes  [4]uint64
	rootFwd [4][]uint64 // per-prime forward twiddle table of length n: g^i in natural order
	rootInv [4][]uint64
	nInv    [4]uint64 // modular inverse of n, per prime
}

func newNTT120Tables(n int) *ntt120Tables {
	t := &ntt120Tables{n: n, primes: ntt120Primes}
	for p := 0; p < 4; p++ {
		q := t.primes[p]
		g := findPrimitive2NthRoot(q, uint64(2*n))
		fwd := make([]uint64, n)
		inv := make([]uint64, n)
		cur := uint64(1)
		ginv := modInverse(g, q)
		curInv := uint64(1)
		for i := 0; i < n; i++ {
			fwd[i] = cur
			inv[i] = curInv
			cur = mulMod(cur, g, q)
			curInv = mulMod(curInv, ginv, q)
		}
		t.rootFwd[p] = fwd
		t.rootInv[p] = inv
		t.nInv[p] = modInverse(uint64(n), q)
	}
	return t
}

// mulMod computes a*b mod q exactly via a 128-bit intermediate product:
// the ntt120Primes run up to ~2^64, well past where a plain uint64
// multiply stays in range, so the product is widened with bits.Mul64
// and reduced with bits.Div64. hi is always < q here since a, b < q
// implies a*b < q^2 < q*2^64, so the division never overflows.
func mulMod(a, b, q uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, q)
	return rem
}

func modPow(base, exp, q uint64) uint64 {
	result := uint64(1)
	base %= q
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, q)
		}
		exp >>= 1
		base = mulMod(base, base, q)
	}
	return result
}

func modInverse(a, q uint64) uint64 {
	return modPow(a, q-2, q)
}

// findPrimitive2NthRoot finds a generator of the order-ord subgroup of
// (Z/qZ)* assuming q = 1 mod ord, by probing small bases, mirroring
// lattigo's PrimitiveRoot search strategy (ring.go).
func findPrimitive2NthRoot(q, ord uint64) uint64 {
	if (q-1)%ord != 0 {
		panic(fmt.Errorf("ring: prime %d is not NTT-friendly for order %d", q, ord))
	}
	exp := (q - 1) / ord
	for g := uint64(2); g < q; g++ {
		cand := modPow(g, exp, q)
		if modPow(cand, ord/2, q) != 1 {
			return cand
		}
	}
	panic(fmt.Errorf("ring: no primitive root found for prime %d", q))
}

// ForwardNTT120 maps one column of limb coefficients into its q120Word
// DFT image, per CRT prime.
func ForwardNTT120(t *ntt120Tables, coeffs []int64, out []q120Word) {
	n := t.n
	for p := 0; p < 4; p++ {
		q := t.primes[p]
		buf := make([]uint64, n)
		for i := 0; i < n; i++ {
			c := coeffs[i] % int64(q)
			if c < 0 {
				c += int64(q)
			}
			buf[i] = uint64(c)
		}
		nttInPlace(buf, t.rootFwd[p], q)
		for i := 0; i < n; i++ {
			out[i].v[p] = buf[i]
		}
	}
}

// BackwardNTT120 maps a q120Word DFT image back to N signed
// coefficients, truncating BackwardNTT120Big's wide accumulation to
// int64 — the shortcut additive/permutation-only callers use when they
// don't need the intermediate wide stage.
func BackwardNTT120(t *ntt120Tables, in []q120Word, coeffs []int64) {
	big := make([]Int128, t.n)
	BackwardNTT120Big(t, in, big)
	for i, v := range big {
		coeffs[i] = v.Int64()
	}
}

// BackwardNTT120Big maps a q120Word DFT image back to its CRT
// reconstruction as Int128, the NTT120 ScalarBig accumulator — the
// wide intermediate a VecZnxBig holds before NormalizeBig's final
// base-2^base2k reduction.
func BackwardNTT120Big(t *ntt120Tables, in []q120Word, out []Int128) {
	n := t.n
	lanes := [4][]uint64{}
	for p := 0; p < 4; p++ {
		buf := make([]uint64, n)
		for i := 0; i < n; i++ {
			buf[i] = in[i].v[p]
		}
		nttInPlace(buf, t.rootInv[p], t.primes[p])
		for i := range buf {
			buf[i] = mulMod(buf[i], t.nInv[p], t.primes[p])
		}
		lanes[p] = buf
	}
	for i := 0; i < n; i++ {
		out[i] = crtReconstructBig(lanes[0][i], lanes[1][i], lanes[2][i], lanes[3][i], t.primes)
	}
}

// crtReconstructBig recombines four residues into a signed Int128 via
// sequential CRT lifting (the NTT120 ScalarBig accumulator, before any
// truncation to int64).
func crtReconstructBig(r0, r1, r2, r3 uint64, q [4]uint64) Int128 {
	// sequential CRT: x ≡ r0 (q0); lift against q1, q2, q3 in turn.
	x := Int128FromInt64(int64(r0))
	mod := Int128FromInt64(int64(q[0]))
	rs := [3]uint64{r1, r2, r3}
	for k := 0; k < 3; k++ {
		qi := q[k+1]
		mInv := modInverse(modToUint64(mod, qi), qi)
		diff := (int64(rs[k]) - modToInt64(x, qi)%int64(qi) + int64(qi)) % int64(qi)
		t := mulMod(uint64(diff), mInv, qi)
		x = x.Add(MulInt64(int64(t), modInt64(mod)))
		mod = MulInt64(modInt64(mod), int64(qi))
	}
	// center into signed range around the full CRT modulus.
	half := mod.Rsh(1)
	if x.Sign() > 0 && greaterInt128(x, half) {
		x = x.Sub(mod)
	}
	return x
}

func modInt64(a Int128) int64 { return a.Int64() }

func modToUint64(a Int128, m uint64) uint64 {
	v := modToInt64(a, m)
	if v < 0 {
		v += int64(m)
	}
	return uint64(v)
}

func modToInt64(a Int128, m uint64) int64 {
	// a is always non-negative in this construction (product of
	// non-negative residues/moduli), so Lo mod m suffices.
	return int64(a.Lo % m)
}

func greaterInt128(a, b Int128) bool {
	if a.Hi != b.Hi {
		return a.Hi > b.Hi
	}
	return a.Lo > b.Lo
}

// nttInPlace runs an iterative radix-2 negacyclic-friendly NTT over
// Z/qZ on bit-reversed input, reading a natural-order root table,
// mirroring lattigo's
// butterfly structure (ring/ntt.go) specialized to a single prime.
func nttInPlace(buf []uint64, roots []uint64, q uint64) {
	n := len(buf)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
	for length := 2; length <= n; length <<= 1 {
		half := length / 2
		step := n / length
		for i := 0; i < n; i += length {
			for j := 0; j < half; j++ {
				w := roots[j*step]
				u := buf[i+j]
				v := mulMod(buf[i+j+half], w, q)
				buf[i+j] = addMod(u, v, q)
				buf[i+j+half] = subMod(u, v, q)
			}
		}
	}
}

func addMod(a, b, q uint64) uint64 {
	s := a + b
	if s >= q {
		s -= q
	}
	return s
}

func subMod(a, b, q uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + q - b
}

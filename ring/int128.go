package ring

import "math/bits"

// Int128 is a signed 128-bit integer used as the wide accumulator
// (ScalarBig) of the NTT120 backend, where exact products of two
// bounded int64 polynomial coefficients overflow int64.
//
// Representation: Hi holds the signed high 64 bits, Lo the unsigned
// low 64 bits, two's-complement across the pair (same convention as
// math/bits.Mul64/Add64).
type Int128 struct {
	Hi int64
	Lo uint64
}

// Int128FromInt64 widens x into an Int128.
func Int128FromInt64(x int64) Int128 {
	if x < 0 {
		return Int128{Hi: -1, Lo: uint64(x)}
	}
	return Int128{Hi: 0, Lo: uint64(x)}
}

// Add returns a+b.
func (a Int128) Add(b Int128) Int128 {
	lo, carry := bits.Add64(a.Lo, b.Lo, 0)
	hi, _ := bits.Add64(uint64(a.Hi), uint64(b.Hi), carry)
	return Int128{Hi: int64(hi), Lo: lo}
}

// Sub returns a-b.
func (a Int128) Sub(b Int128) Int128 {
	lo, borrow := bits.Sub64(a.Lo, b.Lo, 0)
	hi, _ := bits.Sub64(uint64(a.Hi), uint64(b.Hi), borrow)
	return Int128{Hi: int64(hi), Lo: lo}
}

// MulInt64 returns a*b exactly, for int64 operands a, b.
func MulInt64(a, b int64) Int128 {
	neg := false
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		neg = !neg
		ua = uint64(-a)
	}
	if b < 0 {
		neg = !neg
		ub = uint64(-b)
	}
	hi, lo := bits.Mul64(ua, ub)
	r := Int128{Hi: int64(hi), Lo: lo}
	if neg {
		r = Int128{}.Sub(r)
	}
	return r
}

// AddMulInt64 returns acc + a*b exactly.
func (acc Int128) AddMulInt64(a, b int64) Int128 {
	return acc.Add(MulInt64(a, b))
}

// Neg returns -a.
func (a Int128) Neg() Int128 {
	return Int128{}.Sub(a)
}

// Sign returns -1, 0 or 1.
func (a Int128) Sign() int {
	if a.Hi < 0 {
		return -1
	}
	if a.Hi == 0 && a.Lo == 0 {
		return 0
	}
	return 1
}

// Rsh returns floor(a / 2^n), n in [0,127], via arithmetic shift
// across the Hi:Lo pair.
func (a Int128) Rsh(n uint) Int128 {
	if n == 0 {
		return a
	}
	if n >= 64 {
		hi := a.Hi >> 63
		lo := uint64(a.Hi >> (n - 64))
		return Int128{Hi: hi, Lo: lo}
	}
	lo := (a.Lo >> n) | (uint64(a.Hi) << (64 - n))
	hi := a.Hi >> n
	return Int128{Hi: hi, Lo: lo}
}

// Int64 truncates a to its low 64 bits, reinterpreted as signed. The
// caller must ensure a fits in 64 bits (guaranteed by the DFT
// precision envelope after normalization).
func (a Int128) Int64() int64 {
	return int64(a.Lo)
}

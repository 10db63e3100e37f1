// Package glwe implements the FHE ciphertext algebra built on top of
// the ring package: GLWE, GGLWE, GGSW encryption, addition,
// key-switching, external product, automorphism, trace and packing.
//
// Grounded on rlwe/ciphertext.go, rlwe/plaintext.go,
// rlwe/gadgetciphertext.go, rgsw/rgsw.go and the
// Encryptor/Decryptor/KeyGenerator/Evaluator method surfaces of
// rlwe/encryptor.go, rlwe/decryptor.go, rlwe/keygenerator.go,
// rlwe/evaluator.go, re-pointed at the ring package's base-2^k VecZnx
// representation instead of lattigo's RNS polynomials.
package glwe

import "fmt"

// LWEInfos describes the shape of an LWE ciphertext: its dimension and
// the base2k/K precision of its scalar encoding.
type LWEInfos interface {
	LWEDimension() int
	Base2K() int
	K() int
}

// GLWEInfos describes the shape of a GLWE ciphertext: ring degree,
// precision, rank (number of mask columns) and limb count.
type GLWEInfos interface {
	N() int
	Base2K() int
	K() int
	Rank() int
	Size() int
}

// GGLWEInfos describes the shape of a gadget-decomposed GGLWE: a
// GLWEInfos plus the gadget's digit layout and the rank of the
// secret the gadget rows encrypt digits of.
type GGLWEInfos interface {
	GLWEInfos
	RankIn() int
	DNum() int
	DSize() int
}

// GGSWInfos is a GGLWEInfos where RankIn() == Rank()+1 by construction.
type GGSWInfos interface {
	GGLWEInfos
}

// SizeForK returns the minimal number of base2k limbs needed to
// represent precision k, i.e. ceil(k/base2k).
func SizeForK(k, base2k int) int {
	if base2k <= 0 {
		panic(fmt.Errorf("glwe.SizeForK: base2k=%d must be > 0", base2k))
	}
	return (k + base2k - 1) / base2k
}

// checkGadgetParams validates the admissibility constraints of a gadget
// decomposition: dnum >= 1, dsize >= 1, dnum*dsize*base2k <= k + base2k*dsize.
func checkGadgetParams(base2k, k, dnum, dsize int) {
	if dnum < 1 {
		panic(fmt.Errorf("glwe: dnum=%d must be >= 1", dnum))
	}
	if dsize < 1 {
		panic(fmt.Errorf("glwe: dsize=%d must be >= 1", dsize))
	}
	if dnum*dsize*base2k > k+base2k*dsize {
		panic(fmt.Errorf("glwe: dnum=%d, dsize=%d, base2k=%d exceed k=%d budget", dnum, dsize, base2k, k))
	}
}

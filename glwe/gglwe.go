package glwe

import "github.com/Pro7ech/lfhe/ring"

// GGLWE is a gadget-LWE: a (DNum x RankIn x (Rank+1)) block of GLWE
// rows encrypting the digit-weighted versions of an input secret's
// RankIn components under an output secret of rank Rank. Grounded on
// rlwe/gadgetciphertext.go's GadgetCiphertext (dnum/dsize-shaped block
// of rows).
type GGLWE struct {
	// Value[i][j] is the j-th gadget row (of DNum) encrypting the
	// digit-weighted i-th input-secret component (of RankIn).
	Value [][]*GLWE
	DNum  int
	DSize int
}

// NewGGLWE allocates a zeroed GGLWE: RankIn input-secret components,
// RankOut output rank, DNum gadget rows of DSize limbs each, at
// precision k / base2k.
func NewGGLWE(n, rankIn, rankOut, k, base2k, dnum, dsize int) *GGLWE {
	checkGadgetParams(base2k, k, dnum, dsize)
	v := make([][]*GLWE, rankIn)
	for i := range v {
		v[i] = make([]*GLWE, dnum)
		for j := range v[i] {
			v[i][j] = NewGLWE(n, rankOut, k, base2k)
		}
	}
	return &GGLWE{Value: v, DNum: dnum, DSize: dsize}
}

func (g *GGLWE) N() int      { return g.Value[0][0].N() }
func (g *GGLWE) Base2K() int { return g.Value[0][0].Base2K() }
func (g *GGLWE) K() int      { return g.Value[0][0].K() }
func (g *GGLWE) Rank() int   { return g.Value[0][0].Rank() }
func (g *GGLWE) Size() int   { return g.Value[0][0].Size() }
func (g *GGLWE) RankIn() int { return len(g.Value) }

// GGLWEPrepared is the block-interleaved VMP image of a GGLWE: every
// row's every output column forward-transformed once, flattened into a
// (RankIn*DNum) x (Rank+1) VmpPMat so that a gadget product is a single
// VmpApplyDftToDft call. Grounded on the calling convention of
// rlwe/evaluator_gadget_product.go's gadgetProductLazy (rows
// pre-transformed once at key-generation time, applied many times).
type GGLWEPrepared struct {
	Mat    *ring.VmpPMat
	DNum   int
	DSize  int
	RankIn int
	Rank   int
	Base2K int
}

// PrepareGGLWE forward-transforms every row/column of g into a VmpPMat.
func PrepareGGLWE(m *ring.Module, g *GGLWE) *GGLWEPrepared {
	rankIn := g.RankIn()
	dnum := g.DNum
	rank := g.Rank()
	size := g.Size()

	mat := ring.NewMatZnx(m.N(), rankIn*dnum, rank+1, size)
	for i := 0; i < rankIn; i++ {
		for j := 0; j < dnum; j++ {
			row := i*dnum + j
			src := g.Value[i][j]
			for c := 0; c <= rank; c++ {
				dst := mat.At(row, c)
				for l := 0; l < size; l++ {
					copy(dst.At(0, l), src.Value.At(c, l))
				}
			}
		}
	}
	pmat := m.NewVmpPMat(rankIn*dnum, rank+1, size)
	m.PrepareVmp(mat, pmat)
	return &GGLWEPrepared{Mat: pmat, DNum: dnum, DSize: g.DSize, RankIn: rankIn, Rank: rank, Base2K: g.Base2K()}
}

// GGSW is a GGLWE with RankIn == Rank+1: it encrypts both a scalar
// message and its products with each secret component, making it the
// right operand of an external product. Grounded on rgsw/rgsw.go's
// Ciphertext (nesting two GadgetCiphertexts for the rank_in=rank+1 case).
type GGSW struct {
	*GGLWE
}

// NewGGSW allocates a zeroed GGSW of output rank `rank`.
func NewGGSW(n, rank, k, base2k, dnum, dsize int) *GGSW {
	return &GGSW{GGLWE: NewGGLWE(n, rank+1, rank, k, base2k, dnum, dsize)}
}

// GGSWPrepared is the VMP-prepared image of a GGSW.
type GGSWPrepared struct {
	*GGLWEPrepared
}

// PrepareGGSW forward-transforms g into its prepared form.
func PrepareGGSW(m *ring.Module, g *GGSW) *GGSWPrepared {
	return &GGSWPrepared{GGLWEPrepared: PrepareGGLWE(m, g.GGLWE)}
}

// AutomorphismKey is a GGLWE with RankIn == Rank, where the input
// secret is the image of the output secret under X -> X^P for a known
// Galois element P. Grounded on rlwe/evaluator_automorphism.go's
// key-carries-its-Galois-element convention.
type AutomorphismKey struct {
	*GGLWE
	P int
}

// NewAutomorphismKey allocates a zeroed automorphism key for Galois
// element p.
func NewAutomorphismKey(n, rank, k, base2k, dnum, dsize, p int) *AutomorphismKey {
	return &AutomorphismKey{GGLWE: NewGGLWE(n, rank, rank, k, base2k, dnum, dsize), P: p}
}

// AutomorphismKeyPrepared is the VMP-prepared image of an AutomorphismKey,
// carrying the precomputed coefficient-permutation index for its Galois
// element alongside the prepared gadget matrix.
type AutomorphismKeyPrepared struct {
	*GGLWEPrepared
	P     int
	Index *ring.AutomorphismIndex
}

// PrepareAutomorphismKey forward-transforms k into its prepared form
// and precomputes its permutation index.
func PrepareAutomorphismKey(m *ring.Module, k *AutomorphismKey) *AutomorphismKeyPrepared {
	return &AutomorphismKeyPrepared{
		GGLWEPrepared: PrepareGGLWE(m, k.GGLWE),
		P:             k.P,
		Index:         ring.NewAutomorphismIndex(m.N(), k.P),
	}
}

// TensorKey holds, for each secret component s_i, a GGSW encrypting
// s_i itself under the same secret. Circuit bootstrapping's row
// expansion (spec.md §4.9) needs, for a GLWE ciphertext encrypting an
// arbitrary plaintext p under s, a way to derive GLWE(p*s_i) without
// decrypting; ExternalProduct(c, GGSW(s_i)) already computes exactly
// that for any plaintext p, so the pairwise tensor s_i*s_j the spec
// describes is realized on demand (as the i-th row's message times
// s_i) rather than stored as a dedicated packed (i,j) layout. Grounded
// on the "tensor key" glossary entry and on rgsw/rgsw.go's GGSW shape
// reused here as the per-component encryption.
type TensorKey struct {
	Value []*GGSW
}

// TensorKeyPrepared is the VMP-prepared image of a TensorKey.
type TensorKeyPrepared struct {
	Value []*GGSWPrepared
}

// PrepareTensorKey forward-transforms every component of tk.
func PrepareTensorKey(m *ring.Module, tk *TensorKey) *TensorKeyPrepared {
	p := &TensorKeyPrepared{Value: make([]*GGSWPrepared, len(tk.Value))}
	for i, g := range tk.Value {
		p.Value[i] = PrepareGGSW(m, g)
	}
	return p
}

// SwitchingKey is a GGLWE encoding sk_in -> sk_out. Grounded on
// rlwe/gadgetciphertext.go used in key-switching position.
type SwitchingKey struct {
	*GGLWE
}

// NewSwitchingKey allocates a zeroed switching key.
func NewSwitchingKey(n, rankIn, rankOut, k, base2k, dnum, dsize int) *SwitchingKey {
	return &SwitchingKey{GGLWE: NewGGLWE(n, rankIn, rankOut, k, base2k, dnum, dsize)}
}

// SwitchingKeyPrepared is the VMP-prepared image of a SwitchingKey.
type SwitchingKeyPrepared struct {
	*GGLWEPrepared
}

// PrepareSwitchingKey forward-transforms k into its prepared form.
func PrepareSwitchingKey(m *ring.Module, k *SwitchingKey) *SwitchingKeyPrepared {
	return &SwitchingKeyPrepared{GGLWEPrepared: PrepareGGLWE(m, k.GGLWE)}
}

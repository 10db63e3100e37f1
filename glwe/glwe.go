package glwe

import (
	"github.com/Pro7ech/lfhe/ring"
)

// GLWE is a generalized-LWE ciphertext over Z[X]/(X^N+1): Rank+1
// columns of a limbed VecZnx, column 0 ("b") and columns 1..=Rank
// ("a"s), such that the plaintext lives in b + sum a_i*s_i. Grounded
// on rlwe/ciphertext.go's Vector-embedding ciphertext shape.
type GLWE struct {
	Value *ring.VecZnx
	k     int
}

// NewGLWE allocates a zeroed GLWE of ring degree n, rank mask columns,
// precision k, limbed at base2k.
func NewGLWE(n, rank, k, base2k int) *GLWE {
	return &GLWE{Value: ring.NewVecZnx(n, rank+1, SizeForK(k, base2k), base2k), k: k}
}

func (g *GLWE) N() int      { return g.Value.N() }
func (g *GLWE) Base2K() int { return g.Value.Base2K() }
func (g *GLWE) K() int      { return g.k }
func (g *GLWE) Rank() int   { return g.Value.Cols() - 1 }
func (g *GLWE) Size() int   { return g.Value.Size() }

// Clone returns a deep copy.
func (g *GLWE) Clone() *GLWE { return &GLWE{Value: g.Value.Clone(), k: g.k} }

// Copy copies other's contents into the receiver.
func (g *GLWE) Copy(other *GLWE) {
	g.Value.Copy(other.Value)
	g.k = other.k
}

// Normalize canonicalizes every limb of the ciphertext at its own base2k.
func (g *GLWE) Normalize() { g.Value.Normalize(g.Value.Base2K()) }

// Plaintext is a single-column GLWE-shaped object holding an encoded
// message, grounded on rlwe/plaintext.go.
type Plaintext struct {
	Value *ring.VecZnx
	k     int
}

// NewPlaintext allocates a zeroed plaintext of ring degree n, precision
// k, limbed at base2k.
func NewPlaintext(n, k, base2k int) *Plaintext {
	return &Plaintext{Value: ring.NewVecZnx(n, 1, SizeForK(k, base2k), base2k), k: k}
}

func (p *Plaintext) N() int      { return p.Value.N() }
func (p *Plaintext) Base2K() int { return p.Value.Base2K() }
func (p *Plaintext) K() int      { return p.k }

// Encode writes the coefficients of m (length <= N) into the plaintext's
// top limb, unscaled: m is treated as an integer message and placed at
// weight 2^-base2k (limb 0), matching
// lattigo's "encode at top limb" convention for torus-valued plaintexts.
func (p *Plaintext) Encode(m []int64) {
	p.Value.Zero()
	top := p.Value.At(0, 0)
	copy(top, m)
}

// Decode reads the coefficients back out of the plaintext's top limb.
func (p *Plaintext) Decode(m []int64) {
	copy(m, p.Value.At(0, 0))
}

// LWE is a single-row LWE ciphertext: a scalar body plus an n-entry
// mask, stored independently of the ring degree (LWE dimension n need
// not equal the GLWE ring degree it will be blind-rotated into).
// Modeled as a single-row, two-column matrix flattened here into an
// explicit body/mask pair for clarity.
type LWE struct {
	n      int
	base2k int
	k      int
	body   int64
	mask   []int64
}

// NewLWE allocates a zeroed LWE ciphertext of dimension n.
func NewLWE(n, k, base2k int) *LWE {
	return &LWE{n: n, k: k, base2k: base2k, mask: make([]int64, n)}
}

func (l *LWE) LWEDimension() int  { return l.n }
func (l *LWE) Base2K() int        { return l.base2k }
func (l *LWE) K() int             { return l.k }
func (l *LWE) Body() int64        { return l.body }
func (l *LWE) SetBody(v int64)    { l.body = v }
func (l *LWE) Mask() []int64      { return l.mask }
func (l *LWE) Clone() *LWE {
	c := NewLWE(l.n, l.k, l.base2k)
	c.body = l.body
	copy(c.mask, l.mask)
	return c
}

// SecretKey is a GLWE secret: Rank columns of a ScalarZnx, each column
// sampled from a ring.Distribution (typically ternary or binary).
type SecretKey struct {
	Value *ring.ScalarZnx
	Dist  ring.Distribution
}

// NewSecretKey allocates a zeroed secret of ring degree n and rank columns.
func NewSecretKey(n, rank int) *SecretKey {
	return &SecretKey{Value: ring.NewScalarZnx(n, rank)}
}

func (s *SecretKey) Rank() int { return s.Value.Cols() }

// LWESecretKey is a small-dimension secret for LWE ciphertexts and
// blind-rotation keys, whose coordinates are sampled as a binary or
// binary-block distribution over {0,1}.
type LWESecretKey struct {
	Value *ring.ScalarZnx // n = LWE dimension, 1 column
	Dist  ring.Distribution
}

// NewLWESecretKey allocates a zeroed secret of dimension n.
func NewLWESecretKey(n int) *LWESecretKey {
	return &LWESecretKey{Value: ring.NewScalarZnx(n, 1)}
}

func (s *LWESecretKey) LWEDimension() int { return s.Value.N() }

// PreparedSecretKey holds the per-rank-column DFT-prepared image of a
// SecretKey, used by Encrypt/Decrypt/KeySwitch so the forward transform
// of each secret component is computed once and reused.
type PreparedSecretKey struct {
	Value []*ring.SvpPPol
}

// PrepareSecretKey transforms every column of sk into its prepared form.
func PrepareSecretKey(m *ring.Module, sk *SecretKey) *PreparedSecretKey {
	p := &PreparedSecretKey{Value: make([]*ring.SvpPPol, sk.Rank())}
	for i := range p.Value {
		p.Value[i] = m.NewSvpPPol()
		m.PrepareSvp(sk.Value, i, p.Value[i])
	}
	return p
}

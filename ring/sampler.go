package ring

import (
	"fmt"
	"math"

	"github.com/Pro7ech/lfhe/sampling"
)

// Sampler fills ScalarZnx/VecZnx coefficients according to a
// Distribution, driven by a sampling.Source. Grounded on
// ring/rns_sampler_ternary.go's probability-matrix / hamming-weight
// selection strategy, generalized across the full distribution set
// this runtime needs instead of just ternary.
type Sampler struct {
	source *sampling.Source
}

// NewSampler wraps a sampling.Source.
func NewSampler(source *sampling.Source) *Sampler {
	return &Sampler{source: source}
}

// Fill samples dist into every column of dst.
func (s *Sampler) Fill(dist Distribution, dst *ScalarZnx) {
	dist.validate()
	for c := 0; c < dst.Cols(); c++ {
		s.fillColumn(dist, dst.At(c))
	}
}

func (s *Sampler) fillColumn(dist Distribution, col []int64) {
	n := len(col)
	switch dist.Type {
	case Zero:
		clear(col)

	case TernaryProb:
		for i := 0; i < n; i++ {
			col[i] = s.ternaryProb(dist.P)
		}

	case TernaryFixed:
		clear(col)
		s.fixedNonZero(col, dist.H, func() int64 {
			if s.source.Int63n(2) == 0 {
				return -1
			}
			return 1
		})

	case BinaryProb:
		for i := 0; i < n; i++ {
			if s.source.Float64(0, 1) < dist.P {
				col[i] = 1
			} else {
				col[i] = 0
			}
		}

	case BinaryFixed:
		clear(col)
		s.fixedNonZero(col, dist.H, func() int64 { return 1 })

	case BinaryBlock:
		clear(col)
		s.binaryBlock(col, dist.H)

	case DiscreteGaussian:
		for i := 0; i < n; i++ {
			col[i] = s.gaussian(dist.Sigma, dist.Bound)
		}

	case Uniform:
		for i := 0; i < n; i++ {
			col[i] = int64(s.source.Uint64())
		}

	default:
		panic(fmt.Errorf("ring.Sampler: unhandled distribution type %v", dist.Type))
	}
}

// FillVecZnx samples dist into every limb of column col of dst. Used
// for GLWE mask-column sampling (Uniform, bounded to dst's own base2k
// per limb rather than the full int64 range Fill uses for ScalarZnx).
func (s *Sampler) FillVecZnx(dist Distribution, dst *VecZnx, col int) {
	dist.validate()
	base2k := dst.Base2K()
	for j := 0; j < dst.Size(); j++ {
		limb := dst.At(col, j)
		if dist.Type == Uniform {
			half := int64(1) << uint(base2k-1)
			full := int64(1) << uint(base2k)
			for i := range limb {
				v := int64(s.source.Uint64()%uint64(full)) - half
				limb[i] = v
			}
			continue
		}
		s.fillColumn(dist, limb)
	}
}

// AddVecZnx samples dist once per coefficient and adds (rather than
// overwrites) the result into limb `limb` of column col of dst. Used to
// inject Gaussian encryption noise into the body column without
// clobbering a plaintext already written there.
func (s *Sampler) AddVecZnx(dist Distribution, dst *VecZnx, col, limb int) {
	dist.validate()
	tmp := make([]int64, dst.N())
	s.fillColumn(dist, tmp)
	out := dst.At(col, limb)
	for i := range out {
		out[i] += tmp[i]
	}
}

// Scalar draws a single value from dist, for the LWE-dimension
// sampling a whole ScalarZnx/VecZnx column would overshoot.
func (s *Sampler) Scalar(dist Distribution) int64 {
	dist.validate()
	col := make([]int64, 1)
	s.fillColumn(dist, col)
	return col[0]
}

func (s *Sampler) ternaryProb(p float64) int64 {
	u := s.source.Float64(0, 1)
	if u < p/2 {
		return -1
	}
	if u < p {
		return 1
	}
	return 0
}

// fixedNonZero places exactly h nonzero entries at uniformly chosen
// distinct positions in col (length n), each set by value().
func (s *Sampler) fixedNonZero(col []int64, h int, value func() int64) {
	n := len(col)
	if h > n {
		panic(fmt.Errorf("ring.Sampler: H=%d exceeds N=%d", h, n))
	}
	placed := 0
	for placed < h {
		i := int(s.source.Int63n(int64(n)))
		if col[i] == 0 {
			col[i] = value()
			placed++
		}
	}
}

// binaryBlock places exactly one 1 in each contiguous block of h
// coefficients (n/h ones in total), used by the blind rotation's
// binary-block optimization, which folds each block's coordinates
// against one shared accumulator snapshot.
func (s *Sampler) binaryBlock(col []int64, h int) {
	n := len(col)
	if n%h != 0 {
		panic(fmt.Errorf("ring.Sampler: BinaryBlock requires H=%d to divide N=%d", h, n))
	}
	for off := 0; off < n; off += h {
		i := off + int(s.source.Int63n(int64(h)))
		col[i] = 1
	}
}

// gaussian draws a rounded discrete Gaussian sample with the given
// standard deviation, rejecting draws beyond bound*sigma.
func (s *Sampler) gaussian(sigma, bound float64) int64 {
	limit := bound * sigma
	for {
		x := s.source.NormFloat64() * sigma
		if math.Abs(x) <= limit {
			return int64(math.Round(x))
		}
	}
}

package ring

import "fmt"

// DistributionType tags the shape of a secret/error distribution,
// grounded on ring/distribution.go's DistributionParameters enum
// shape, generalized to the full set of secret/error distributions
// this runtime's key generation and sampling need.
type DistributionType uint8

const (
	// Zero: every coefficient is 0.
	Zero DistributionType = iota
	// TernaryProb: each coefficient is independently -1/0/+1 with
	// Pr[-1]=Pr[+1]=P/2, Pr[0]=1-P.
	TernaryProb
	// TernaryFixed: exactly H nonzero coefficients, each +-1,
	// positions and signs uniform.
	TernaryFixed
	// BinaryProb: each coefficient is independently 0/1 with Pr[1]=P.
	BinaryProb
	// BinaryFixed: exactly H coefficients equal to 1, positions uniform.
	BinaryFixed
	// BinaryBlock: exactly one coefficient equal to 1 in each contiguous
	// block of H coefficients (N/H ones in total), position within the
	// block uniform (used by the blind rotation binary-block
	// optimization).
	BinaryBlock
	// DiscreteGaussian: rounded Gaussian noise with standard deviation
	// Sigma, rejecting samples beyond Bound*Sigma.
	DiscreteGaussian
	// Uniform: Sampler.FillVecZnx draws each limb coefficient uniformly
	// from [-2^(base2k-1), 2^(base2k-1)); Sampler.Fill and Sampler.Scalar
	// draw uniform 64-bit values.
	Uniform
)

// Distribution fully parameterizes a sampling distribution. Only the
// fields relevant to Type are meaningful, mirroring lattigo's
// DistributionParameters tagged-struct convention.
type Distribution struct {
	Type DistributionType

	P float64 // TernaryProb, BinaryProb
	H int     // TernaryFixed, BinaryFixed, BinaryBlock

	Sigma float64 // DiscreteGaussian
	Bound float64 // DiscreteGaussian, in multiples of Sigma
}

func (d Distribution) validate() {
	switch d.Type {
	case TernaryProb, BinaryProb:
		if d.P < 0 || d.P > 1 {
			panic(fmt.Errorf("ring.Distribution: P=%f out of [0,1]", d.P))
		}
	case TernaryFixed, BinaryFixed, BinaryBlock:
		if d.H <= 0 {
			panic(fmt.Errorf("ring.Distribution: H=%d must be > 0", d.H))
		}
	case DiscreteGaussian:
		if d.Sigma <= 0 {
			panic(fmt.Errorf("ring.Distribution: Sigma=%f must be > 0", d.Sigma))
		}
	}
}

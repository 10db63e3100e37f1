package ring

// Backend selects which transform family a Module uses to move
// between the coefficient domain and the frequency domain in which
// SVP and VMP products are evaluated. Both backends implement the
// same algebra and are interchangeable behind Module's methods.
type Backend uint8

const (
	// FFT64 backend: ScalarPrep is float64, ScalarBig is int64. Forward
	// transform is a negacyclic real FFT, computed as an iterative
	// radix-2 complex FFT of length N/2 (not split-radix).
	FFT64 Backend = iota
	// NTT120 backend: ScalarPrep is a 4-lane q120b word, ScalarBig is
	// Int128. Forward transform is a 4-prime CRT NTT.
	NTT120
)

func (b Backend) String() string {
	switch b {
	case FFT64:
		return "FFT64"
	case NTT120:
		return "NTT120"
	default:
		return "unknown"
	}
}

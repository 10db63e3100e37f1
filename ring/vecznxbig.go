package ring

// VecZnxBig is a wide accumulator for products formed in the DFT
// domain and brought back before their final reduction to a
// base-2^base2k limb chain: FFT64 accumulates in int64 (ScalarBig =
// i64), NTT120 accumulates in Int128 (ScalarBig = i128), per the
// spec's two backend envelopes. Grounded on utils/structs/vector.go's
// generic Vector[T] wrapper pattern.
type VecZnxBig struct {
	n       int
	cols    int
	size    int
	backend Backend
	i64     []int64   // cols*size*n, used by FFT64
	i128    []Int128  // cols*size*n, used by NTT120
}

// NewVecZnxBig allocates a zeroed VecZnxBig for m.
func (m *Module) NewVecZnxBig(cols, size int) *VecZnxBig {
	b := &VecZnxBig{n: m.n, cols: cols, size: size, backend: m.backend}
	switch m.backend {
	case FFT64:
		b.i64 = make([]int64, cols*size*m.n)
	case NTT120:
		b.i128 = make([]Int128, cols*size*m.n)
	}
	return b
}

func (b *VecZnxBig) N() int    { return b.n }
func (b *VecZnxBig) Cols() int { return b.cols }
func (b *VecZnxBig) Size() int { return b.size }

func (b *VecZnxBig) offset(c, j int) int { return (c*b.size + j) * b.n }

// AtI64 returns the int64 limb (FFT64 backend only).
func (b *VecZnxBig) AtI64(c, j int) []int64 {
	off := b.offset(c, j)
	return b.i64[off : off+b.n]
}

// AtI128 returns the Int128 limb (NTT120 backend only).
func (b *VecZnxBig) AtI128(c, j int) []Int128 {
	off := b.offset(c, j)
	return b.i128[off : off+b.n]
}

// NormalizeBig converts a VecZnxBig accumulator down into a canonical
// base-2^base2k VecZnx, performing the final carry/reduction pass.
func (m *Module) NormalizeBig(src *VecZnxBig, base2k int, dst *VecZnx) {
	cols := min(src.cols, dst.cols)
	size := min(src.size, dst.size)
	dirty := NewVecZnx(m.n, dst.cols, dst.size, base2k)
	for c := 0; c < cols; c++ {
		for j := 0; j < size; j++ {
			d := dirty.At(c, j)
			switch m.backend {
			case FFT64:
				s := src.AtI64(c, j)
				copy(d, s)
			case NTT120:
				s := src.AtI128(c, j)
				for i := range d {
					d[i] = s[i].Int64()
				}
			}
		}
	}
	dirty.Normalize(base2k)
	dst.CopyLimbs(dirty)
	dst.base2k = base2k
}

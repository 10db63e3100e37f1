package ring

// Normalize carries a dirty (post-add, post-automorphism) VecZnx
// column into the canonical signed base-2^base2k representation:
// every limb except possibly the last satisfies |limb[i]| <= 2^(base2k-1),
// matching lattigo's center-mod carry propagation
// (ring/ring_ops.go's Reduce/CenterModU64) but over a base-2^k limb
// chain instead of an RNS residue chain.
//
// Carry flows from the least significant limb (highest index) toward
// the most significant (index 0); each limb absorbs the high bits of
// its neighbor.
func (v *VecZnx) Normalize(base2k int) {
	half := int64(1) << uint(base2k-1)
	full := int64(1) << uint(base2k)
	mask := full - 1

	for c := 0; c < v.cols; c++ {
		carry := make([]int64, v.n)
		for j := v.size - 1; j >= 0; j-- {
			limb := v.At(c, j)
			for i := 0; i < v.n; i++ {
				x := limb[i] + carry[i]
				// center into (-2^(base2k-1), 2^(base2k-1)]
				r := x & mask
				q := (x - r) >> uint(base2k)
				if r > half {
					r -= full
					q++
				}
				limb[i] = r
				carry[i] = q
			}
		}
		// carry out of limb 0 is dropped: it belongs to a limb this
		// VecZnx does not have room for (overflow above its top digit).
	}
	v.base2k = base2k
}

// Lsh shifts every column of v left by n bits across the limb chain
// (multiplies the represented value by 2^n), carrying overflow into
// the next more-significant limb. The result is left dirty; call
// Normalize to re-canonicalize.
func (v *VecZnx) Lsh(n int, res *VecZnx) {
	if n == 0 {
		res.CopyLimbs(v)
		return
	}
	base2k := v.base2k
	limbShift := n / base2k
	bitShift := uint(n % base2k)

	for c := 0; c < min(v.cols, res.cols); c++ {
		for j := 0; j < res.size; j++ {
			dst := res.At(c, j)
			srcIdx := j + limbShift
			if srcIdx >= v.size {
				clear(dst)
				continue
			}
			src := v.At(c, srcIdx)
			if bitShift == 0 {
				copy(dst, src)
				continue
			}
			for i := range dst {
				hi := (src[i] & (int64(1)<<(uint(base2k)-bitShift) - 1)) << bitShift
				var lo int64
				if srcIdx+1 < v.size {
					lo = v.At(c, srcIdx+1)[i] >> (uint(base2k) - bitShift)
				}
				dst[i] = hi + lo
			}
		}
	}
}

// Rsh shifts every column of v right by n bits across the limb chain
// (divides the represented value by 2^n; bits shifted out past res's
// last limb are dropped, which rounds down). Left dirty.
func (v *VecZnx) Rsh(n int, res *VecZnx) {
	if n == 0 {
		res.CopyLimbs(v)
		return
	}
	base2k := v.base2k
	limbShift := n / base2k
	bitShift := uint(n % base2k)

	for c := 0; c < min(v.cols, res.cols); c++ {
		for j := 0; j < res.size; j++ {
			dst := res.At(c, j)
			srcIdx := j - limbShift
			if srcIdx < 0 || srcIdx >= v.size {
				clear(dst)
				continue
			}
			src := v.At(c, srcIdx)
			if bitShift == 0 {
				copy(dst, src)
				continue
			}
			for i := range dst {
				lo := src[i] >> bitShift
				var hi int64
				if srcIdx-1 >= 0 {
					hi = (v.At(c, srcIdx-1)[i] & (int64(1)<<bitShift - 1)) << (uint(base2k) - bitShift)
				}
				dst[i] = lo + hi
			}
		}
	}
}

package ring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// vecZnxSnapshot exposes a VecZnx's shape and coefficients through
// exported fields so cmp.Diff can compare two instances without
// reaching into unexported state.
type vecZnxSnapshot struct {
	N, Cols, Size, Base2K int
	Limbs                 [][]int64
}

func snapshotVecZnx(a *VecZnx) vecZnxSnapshot {
	limbs := make([][]int64, 0, a.Cols()*a.Size())
	for c := 0; c < a.Cols(); c++ {
		for j := 0; j < a.Size(); j++ {
			cp := make([]int64, a.N())
			copy(cp, a.At(c, j))
			limbs = append(limbs, cp)
		}
	}
	return vecZnxSnapshot{N: a.N(), Cols: a.Cols(), Size: a.Size(), Base2K: a.Base2K(), Limbs: limbs}
}

func TestVecZnxCloneDeepEqual(t *testing.T) {
	a := NewVecZnx(8, 2, 3, 12)
	for c := 0; c < 2; c++ {
		for j := 0; j < 3; j++ {
			v := a.At(c, j)
			for i := range v {
				v[i] = int64(c*100 + j*10 + i)
			}
		}
	}
	b := a.Clone()
	if diff := cmp.Diff(snapshotVecZnx(a), snapshotVecZnx(b)); diff != "" {
		t.Fatalf("Clone produced a different value (-want +got):\n%s", diff)
	}

	b.At(0, 0)[0]++
	if diff := cmp.Diff(snapshotVecZnx(a), snapshotVecZnx(b)); diff == "" {
		t.Fatal("expected Clone to be independent of its source")
	}
}

package cbt

import (
	"github.com/Pro7ech/lfhe/brk"
	"github.com/Pro7ech/lfhe/glwe"
	"github.com/Pro7ech/lfhe/ring"
)

// Key bundles everything circuit bootstrapping's pipeline needs beyond
// a plain blind-rotation key: the BRK itself, the tensor key for row
// expansion (spec.md §4.9 step 4), and the automorphism keys Trace
// needs for row extraction (step 3).
type Key struct {
	BRK      *brk.Key
	Tensor   *glwe.TensorKeyPrepared
	AutoKeys map[int]*glwe.AutomorphismKeyPrepared
	Dnum     int
	DSize    int
}

// GenKey builds a circuit-bootstrapping Key: a blind-rotation key for
// lweSk under sk, a tensor key for sk, and one automorphism key per
// trace level [0, m.LogN()).
func GenKey(m *ring.Module, kg *glwe.KeyGenerator, lweSk *glwe.LWESecretKey, sk *glwe.SecretKey, skPrepared *glwe.PreparedSecretKey, k, base2k, dnum, dsize, blockSize int) *Key {
	brkKey := brk.GenKey(m, kg, lweSk, sk, skPrepared, k, base2k, dnum, dsize, blockSize)
	tensor := kg.GenTensorKey(sk, skPrepared, k, base2k, dnum, dsize)
	tensorP := glwe.PrepareTensorKey(m, tensor)

	autoKeys := make(map[int]*glwe.AutomorphismKeyPrepared)
	logN := m.LogN()
	for i := 0; i < logN; i++ {
		p := glwe.TraceGaloisElement(m.N(), i)
		if _, ok := autoKeys[p]; ok {
			continue
		}
		ak := kg.GenAutomorphismKey(sk, skPrepared, p, k, base2k, dnum, dsize)
		autoKeys[p] = glwe.PrepareAutomorphismKey(m, ak)
	}

	return &Key{BRK: brkKey, Tensor: tensorP, AutoKeys: autoKeys, Dnum: dnum, DSize: dsize}
}

package brk

import (
	"github.com/Pro7ech/lfhe/glwe"
	"github.com/Pro7ech/lfhe/ring"
)

// Key is a blind-rotation evaluation key: one prepared GGSW per LWE
// secret coordinate, encrypting that coordinate's {0,1} value under
// the GLWE secret the result will be valid under. BlockSize > 1
// enables the binary-block optimization of spec.md §4.8 and requires
// the LWE secret to have been sampled with
// ring.Distribution{Type: ring.BinaryBlock, H: BlockSize}.
// Grounded on he/hebin/keys.go's BlindRotationEvaluationKeySet
// interface (GetBlindRotationKey(i) returning one GGSW per secret
// coordinate).
type Key struct {
	GGSW      []*glwe.GGSWPrepared
	BlockSize int
}

// GenKey builds a Key for the LWE secret lweSk, encrypting every
// coordinate of lweSk under sk via kg.
func GenKey(m *ring.Module, kg *glwe.KeyGenerator, lweSk *glwe.LWESecretKey, sk *glwe.SecretKey, skPrepared *glwe.PreparedSecretKey, k, base2k, dnum, dsize, blockSize int) *Key {
	bits := lweSk.Value.At(0)
	out := make([]*glwe.GGSWPrepared, len(bits))
	msg := make([]int64, m.N())
	for i, bit := range bits {
		for j := range msg {
			msg[j] = 0
		}
		msg[0] = bit
		raw := kg.GenGGSW(sk, skPrepared, msg, k, base2k, dnum, dsize)
		out[i] = glwe.PrepareGGSW(m, raw)
	}
	if blockSize < 1 {
		blockSize = 1
	}
	return &Key{GGSW: out, BlockSize: blockSize}
}

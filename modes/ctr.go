package modes

import (
	"crypto/cipher"
	"encoding/binary"
	"math/bits"

	"github.com/HadrienG2/coursera-crypto/blocks"
)

// Counter is a 128-bit big-endian counter block.
type Counter blocks.Block

// Inc adds one, wrapping from ff..ff to 00..00.
func (c *Counter) Inc() {
	for i := blocks.Size - 1; i >= 0; i-- {
		c[i]++
		if c[i] != 0 {
			return
		}
	}
}

// Add jumps n steps ahead, with the same wrap-around as Inc.
func (c *Counter) Add(n uint64) {
	hi := binary.BigEndian.Uint64(c[:8])
	lo := binary.BigEndian.Uint64(c[8:])
	lo, carry := bits.Add64(lo, n, 0)
	hi += carry
	binary.BigEndian.PutUint64(c[:8], hi)
	binary.BigEndian.PutUint64(c[8:], lo)
}

// CTR encrypts or decrypts in with the keystream E(iv), E(iv+1), ... The
// final chunk may be shorter than a block. Applying CTR twice with the same
// cipher and iv gives back the input.
func CTR(b cipher.Block, iv blocks.Block, in []byte) []byte {
	checkBlockSize(b)
	out := make([]byte, len(in))
	ctrRange(b, Counter(iv), in, out)
	return out
}

// CTRParallel is CTR with the keystream computed by up to workers
// goroutines. Each worker starts from its own precomputed counter.
func CTRParallel(b cipher.Block, iv blocks.Block, in []byte, workers int) []byte {
	checkBlockSize(b)
	out := make([]byte, len(in))
	n := (len(in) + blocks.Size - 1) / blocks.Size
	forEachRange(n, workers, func(lo, hi int) {
		ctr := Counter(iv)
		ctr.Add(uint64(lo))
		start, end := lo*blocks.Size, min(hi*blocks.Size, len(in))
		ctrRange(b, ctr, in[start:end], out[start:end])
	})
	return out
}

func ctrRange(b cipher.Block, ctr Counter, in, out []byte) {
	var ks blocks.Block
	for off := 0; off < len(in); off += blocks.Size {
		b.Encrypt(ks[:], ctr[:])
		end := min(off+blocks.Size, len(in))
		copy(out[off:end], in[off:end])
		blocks.XORInPlace(out[off:end], ks[:])
		ctr.Inc()
	}
}

type ctrStream struct {
	b    cipher.Block
	ctr  Counter
	ks   blocks.Block
	used int
}

// NewCTRStream returns a cipher.Stream producing the same keystream as CTR,
// for callers that see the data in pieces. Chunk boundaries do not need to
// line up with blocks.
func NewCTRStream(b cipher.Block, iv blocks.Block) cipher.Stream {
	checkBlockSize(b)
	return &ctrStream{b: b, ctr: Counter(iv), used: blocks.Size}
}

func (s *ctrStream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("modes: output smaller than input")
	}
	for len(src) > 0 {
		if s.used == blocks.Size {
			s.b.Encrypt(s.ks[:], s.ctr[:])
			s.ctr.Inc()
			s.used = 0
		}
		n := min(len(src), blocks.Size-s.used)
		for i := range n {
			dst[i] = src[i] ^ s.ks[s.used+i]
		}
		s.used += n
		dst, src = dst[n:], src[n:]
	}
}

// Package blocks holds the fixed-size block type shared by the cipher, the
// padding schemes and the modes of operation, plus a few byte helpers.
package blocks

import (
	"fmt"
	"iter"
)

// Size is the block size in bytes.
const Size = 16

// Block is one 128-bit cipher block.
type Block [Size]byte

// From converts a slice of exactly Size bytes into a Block. Any other length
// is a caller bug and panics.
func From(b []byte) Block {
	if len(b) != Size {
		panic(fmt.Sprintf("blocks: slice length %d, want %d", len(b), Size))
	}
	return Block(b)
}

// XOR sets b to b ^ o.
func (b *Block) XOR(o *Block) {
	for i := range Size {
		b[i] ^= o[i]
	}
}

// Collect concatenates a stream of blocks. hint is the expected number of
// blocks and is only used for preallocation.
func Collect(seq iter.Seq[Block], hint int) []byte {
	out := make([]byte, 0, hint*Size)
	for b := range seq {
		out = append(out, b[:]...)
	}
	return out
}

// XORBytes returns a ^ b truncated to the shorter of the two.
func XORBytes(a, b []byte) []byte {
	n := min(len(a), len(b))
	out := make([]byte, n)
	for i := range n {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// XORInPlace sets acc to acc ^ op. op must be at least as long as acc,
// otherwise acc would be left half-updated, so shorter operands panic.
func XORInPlace(acc, op []byte) {
	if len(acc) > len(op) {
		panic(fmt.Sprintf("blocks: operand length %d shorter than accumulator %d", len(op), len(acc)))
	}
	for i := range acc {
		acc[i] ^= op[i]
	}
}

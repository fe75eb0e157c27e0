// Package gf implements the finite field arithmetic used by Rijndael: bytes as
// elements of GF(2^8) and 4-byte words as polynomials over GF(2^8).
package gf

import (
	"encoding/binary"
	"fmt"
)

// Byte is an element of GF(2^8) in polynomial representation, reduced modulo
// m(x) = x^8 + x^4 + x^3 + x + 1. Bit i is the coefficient of x^i.
type Byte uint8

// reduction is m(x) without its x^8 term.
const reduction = 0x1b

// Add returns a + b, which is bitwise XOR.
func (a Byte) Add(b Byte) Byte {
	return a ^ b
}

// Double returns a * x.
func (a Byte) Double() Byte {
	hiBit := a & 0x80
	a <<= 1
	if hiBit != 0 {
		a ^= reduction
	}
	return a
}

// Mul returns the reduced polynomial product a * b.
func (a Byte) Mul(b Byte) Byte {
	var p Byte
	for range 8 {
		if b&1 != 0 {
			p ^= a
		}
		a = a.Double()
		b >>= 1
	}
	return p
}

// Substitute returns the image of a through t.
func (a Byte) Substitute(t *Table) Byte {
	return Byte(t[a])
}

func (a Byte) String() string {
	return fmt.Sprintf("%02x", uint8(a))
}

// Word is a polynomial of degree < 4 with coefficients in GF(2^8), reduced
// modulo x^4 + 1. Word[0] is the constant term, which is also the first byte
// of the word in memory and the row 0 byte of a state column.
type Word [4]Byte

var (
	// MixColumn is a(x) = {03}x^3 + {01}x^2 + {01}x + {02}.
	MixColumn = Word{0x02, 0x01, 0x01, 0x03}
	// InvMixColumn is a^-1(x) = {0b}x^3 + {0d}x^2 + {09}x + {0e}.
	InvMixColumn = Word{0x0e, 0x09, 0x0d, 0x0b}
	// Identity is the multiplicative identity of word polynomials.
	Identity = Word{0x01, 0x00, 0x00, 0x00}
)

// NewWord builds a word from its four bytes in memory order.
func NewWord(b0, b1, b2, b3 byte) Word {
	return Word{Byte(b0), Byte(b1), Byte(b2), Byte(b3)}
}

// WordFromUint32 builds a word from a big-endian 32-bit value, so that
// 0x2b7e1516 has byte 0 == 0x2b.
func WordFromUint32(u uint32) Word {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], u)
	return NewWord(b[0], b[1], b[2], b[3])
}

// Uint32 is the inverse of WordFromUint32.
func (w Word) Uint32() uint32 {
	return binary.BigEndian.Uint32([]byte{byte(w[0]), byte(w[1]), byte(w[2]), byte(w[3])})
}

// Add returns the coefficient-wise sum of w and v.
func (w Word) Add(v Word) Word {
	return Word{w[0] ^ v[0], w[1] ^ v[1], w[2] ^ v[2], w[3] ^ v[3]}
}

// Mul returns w * v modulo x^4 + 1. Coefficient j of the result is the sum
// over k of w[(j-k) mod 4] * v[k].
func (w Word) Mul(v Word) Word {
	var r Word
	for j := range 4 {
		var acc Byte
		for k := range 4 {
			acc ^= w[(j-k+4)%4].Mul(v[k])
		}
		r[j] = acc
	}
	return r
}

// Rot returns w with its bytes cyclically rotated left by one position,
// i.e. RotWord from the key expansion.
func (w Word) Rot() Word {
	return Word{w[1], w[2], w[3], w[0]}
}

// Substitute applies t to each byte of w.
func (w Word) Substitute(t *Table) Word {
	return Word{w[0].Substitute(t), w[1].Substitute(t), w[2].Substitute(t), w[3].Substitute(t)}
}

func (w Word) String() string {
	return fmt.Sprintf("%08x", w.Uint32())
}

// Package padding turns arbitrary byte messages into whole cipher blocks.
package padding

import (
	"errors"
	"fmt"
	"iter"

	"github.com/HadrienG2/coursera-crypto/blocks"
)

// Scheme is a finite, restartable stream of padded blocks. Len is known
// before iteration starts so callers can size output buffers exactly.
type Scheme interface {
	// Next returns the next block, or false once the stream is exhausted.
	Next() (blocks.Block, bool)
	// Len is the total number of blocks the stream produces.
	Len() int
	// Remaining is the number of blocks Next has yet to return.
	Remaining() int
	// Reset restarts the stream from the beginning of the message.
	Reset()
}

// ErrInvalidPadding is returned by Unpad for data that does not end in a
// well-formed PKCS#7 pad.
var ErrInvalidPadding = errors.New("padding: invalid PKCS#7 padding")

// PKCS7 lazily pads a message with PKCS#7: the final short chunk is filled
// with bytes equal to the pad length, and a message that is already a
// multiple of the block size gets one extra block of blocks.Size bytes.
type PKCS7 struct {
	msg  []byte
	sent int
}

var _ Scheme = (*PKCS7)(nil)

// NewPKCS7 returns a padding stream over msg. msg is read, never modified,
// and must not change while the stream is in use.
func NewPKCS7(msg []byte) *PKCS7 {
	return &PKCS7{msg: msg}
}

func (p *PKCS7) Len() int { return len(p.msg)/blocks.Size + 1 }

func (p *PKCS7) Remaining() int { return p.Len() - p.sent }

func (p *PKCS7) Reset() { p.sent = 0 }

func (p *PKCS7) Next() (blocks.Block, bool) {
	if p.sent >= p.Len() {
		return blocks.Block{}, false
	}
	start := p.sent * blocks.Size
	p.sent++

	var b blocks.Block
	n := copy(b[:], p.msg[start:])
	if n == blocks.Size {
		return b, true
	}
	pad := byte(blocks.Size - n)
	for i := n; i < blocks.Size; i++ {
		b[i] = pad
	}
	return b, true
}

// All restarts the stream and yields every block.
func (p *PKCS7) All() iter.Seq[blocks.Block] {
	return func(yield func(blocks.Block) bool) {
		p.Reset()
		for {
			b, ok := p.Next()
			if !ok || !yield(b) {
				return
			}
		}
	}
}

// Pad returns msg with PKCS#7 padding appended, in a new buffer.
func Pad(msg []byte) []byte {
	p := NewPKCS7(msg)
	return blocks.Collect(p.All(), p.Len())
}

// Unpad strips and verifies PKCS#7 padding.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidPadding)
	}
	if len(data)%blocks.Size != 0 {
		return nil, fmt.Errorf("%w: data length %d is not a multiple of %d", ErrInvalidPadding, len(data), blocks.Size)
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blocks.Size {
		return nil, fmt.Errorf("%w: pad length %d", ErrInvalidPadding, pad)
	}
	for i := len(data) - pad; i < len(data); i++ {
		if data[i] != byte(pad) {
			return nil, fmt.Errorf("%w: pad byte at position %d", ErrInvalidPadding, i)
		}
	}
	return data[:len(data)-pad], nil
}

// Package modes turns a single-block cipher into a byte-stream transform.
//
// Every function takes the block cipher as a crypto/cipher.Block, so the
// rijndael package and the standard library AES are interchangeable here.
// The block size must be blocks.Size; anything else is a caller bug and
// panics.
//
// Nothing here detects IV or key reuse. Picking a fresh IV per message is
// the caller's job.
package modes

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/HadrienG2/coursera-crypto/blocks"
	"github.com/HadrienG2/coursera-crypto/padding"
)

var (
	// ErrNotBlockAligned is returned when CBC ciphertext is not a whole
	// number of blocks.
	ErrNotBlockAligned = errors.New("modes: input is not a multiple of the block size")
	// ErrEmptyInput is returned when CBC ciphertext is empty. A padded
	// message is never empty, so there is no pad byte to read.
	ErrEmptyInput = errors.New("modes: empty input")
	// ErrPaddingOutOfRange is returned when the trailing pad byte claims
	// more bytes than the decrypted message holds.
	ErrPaddingOutOfRange = errors.New("modes: pad length exceeds plaintext")
)

func checkBlockSize(b cipher.Block) {
	if n := b.BlockSize(); n != blocks.Size {
		panic(fmt.Sprintf("modes: block size %d, want %d", n, blocks.Size))
	}
}

// EncryptCBC consumes the padded blocks of in and chains them through b
// starting from iv. The output is exactly in.Remaining() blocks long.
func EncryptCBC(b cipher.Block, iv blocks.Block, in padding.Scheme) []byte {
	checkBlockSize(b)
	out := make([]byte, 0, in.Remaining()*blocks.Size)
	cursor := iv
	for {
		blk, ok := in.Next()
		if !ok {
			break
		}
		blk.XOR(&cursor)
		b.Encrypt(cursor[:], blk[:])
		out = append(out, cursor[:]...)
	}
	return out
}

// DecryptCBC reverses EncryptCBC. The last plaintext byte is taken as the
// pad length and that many bytes are dropped; the other pad bytes are not
// checked. Use padding.Unpad on the output of DecryptCBCRaw when strict
// verification is wanted.
func DecryptCBC(b cipher.Block, iv blocks.Block, in []byte) ([]byte, error) {
	out, err := DecryptCBCRaw(b, iv, in)
	if err != nil {
		return nil, err
	}
	return trimPadding(out)
}

// DecryptCBCRaw decrypts a CBC ciphertext without touching the padding.
func DecryptCBCRaw(b cipher.Block, iv blocks.Block, in []byte) ([]byte, error) {
	if err := checkCBCInput(b, in); err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	cursor := iv[:]
	for off := 0; off < len(in); off += blocks.Size {
		src := in[off : off+blocks.Size]
		dst := out[off : off+blocks.Size]
		b.Decrypt(dst, src)
		blocks.XORInPlace(dst, cursor)
		cursor = src
	}
	return out, nil
}

// DecryptCBCParallel is DecryptCBC with the blocks spread over up to
// workers goroutines. Each block only needs its own ciphertext and the one
// before it, so the result is identical.
func DecryptCBCParallel(b cipher.Block, iv blocks.Block, in []byte, workers int) ([]byte, error) {
	if err := checkCBCInput(b, in); err != nil {
		return nil, err
	}
	out := make([]byte, len(in))
	forEachRange(len(in)/blocks.Size, workers, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			off := i * blocks.Size
			dst := out[off : off+blocks.Size]
			b.Decrypt(dst, in[off:off+blocks.Size])
			if i == 0 {
				blocks.XORInPlace(dst, iv[:])
			} else {
				blocks.XORInPlace(dst, in[off-blocks.Size:off])
			}
		}
	})
	return trimPadding(out)
}

func checkCBCInput(b cipher.Block, in []byte) error {
	checkBlockSize(b)
	if len(in) == 0 {
		return ErrEmptyInput
	}
	if len(in)%blocks.Size != 0 {
		return fmt.Errorf("%w: got %d bytes", ErrNotBlockAligned, len(in))
	}
	return nil
}

func trimPadding(out []byte) ([]byte, error) {
	pad := int(out[len(out)-1])
	if pad > len(out) {
		return nil, fmt.Errorf("%w: pad %d, plaintext %d bytes", ErrPaddingOutOfRange, pad, len(out))
	}
	return out[:len(out)-pad], nil
}

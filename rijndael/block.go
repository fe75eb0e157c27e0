package rijndael

import (
	"crypto/cipher"

	"github.com/HadrienG2/coursera-crypto/blocks"
)

// BlockSize is the Rijndael/AES block size in bytes.
const BlockSize = blocks.Size

// Cipher binds a key schedule to the block cipher. It implements
// cipher.Block, so it can be handed to the mode implementations in package
// modes as well as to the standard library ones.
type Cipher struct {
	schedule Schedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher expands key, which must be 16, 24 or 32 bytes long.
func NewCipher(key []byte) (*Cipher, error) {
	s, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{schedule: s}, nil
}

// Rounds returns the number of rounds for the key size in use.
func (c *Cipher) Rounds() int { return c.schedule.Rounds() }

func (c *Cipher) BlockSize() int { return BlockSize }

// EncryptBlock encrypts a single block.
func (c *Cipher) EncryptBlock(b blocks.Block) blocks.Block {
	return Encrypt(b, c.schedule)
}

// DecryptBlock decrypts a single block.
func (c *Cipher) DecryptBlock(b blocks.Block) blocks.Block {
	return Decrypt(b, c.schedule)
}

// Encrypt encrypts the first block of src into dst. dst and src may overlap.
func (c *Cipher) Encrypt(dst, src []byte) {
	checkBuffers(dst, src)
	out := Encrypt(blocks.Block(src[:BlockSize]), c.schedule)
	copy(dst, out[:])
}

// Decrypt decrypts the first block of src into dst. dst and src may overlap.
func (c *Cipher) Decrypt(dst, src []byte) {
	checkBuffers(dst, src)
	out := Decrypt(blocks.Block(src[:BlockSize]), c.schedule)
	copy(dst, out[:])
}

func checkBuffers(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
}

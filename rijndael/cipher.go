// Package rijndael implements the AES block cipher (FIPS-197) on top of the
// field arithmetic in package gf. It is written for clarity and does not try
// to run in constant time.
package rijndael

import "github.com/HadrienG2/coursera-crypto/blocks"

// Encrypt runs the forward cipher on one block.
func Encrypt(in blocks.Block, s Schedule) blocks.Block {
	nr := s.Rounds()
	state := NewState(in)

	state.AddRoundKey(s.RoundKey(0))

	for round := 1; round < nr; round++ {
		state.SubBytes()
		state.ShiftRows()
		state.MixColumns()
		state.AddRoundKey(s.RoundKey(round))
	}

	// Final round (no MixColumns).
	state.SubBytes()
	state.ShiftRows()
	state.AddRoundKey(s.RoundKey(nr))

	return state.Block()
}

// Decrypt runs the inverse cipher on one block.
func Decrypt(in blocks.Block, s Schedule) blocks.Block {
	nr := s.Rounds()
	state := NewState(in)

	state.AddRoundKey(s.RoundKey(nr))

	for round := nr - 1; round > 0; round-- {
		state.InvShiftRows()
		state.InvSubBytes()
		state.AddRoundKey(s.RoundKey(round))
		state.InvMixColumns()
	}

	state.InvShiftRows()
	state.InvSubBytes()
	state.AddRoundKey(s.RoundKey(0))

	return state.Block()
}

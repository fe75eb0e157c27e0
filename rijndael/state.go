package rijndael

import (
	"fmt"
	"strings"

	"github.com/HadrienG2/coursera-crypto/blocks"
	"github.com/HadrienG2/coursera-crypto/gf"
)

// Nb is the number of 32-bit columns in the state.
const Nb = 4

// State is the 4x4 byte array the cipher operates on, stored column-major:
// word c holds rows 0..3 of column c.
type State [Nb]gf.Word

// NewState loads an input block into a state (column-major).
func NewState(in blocks.Block) State {
	var s State
	for c := range Nb {
		s[c] = gf.NewWord(in[4*c], in[4*c+1], in[4*c+2], in[4*c+3])
	}
	return s
}

// Block serializes the state with the same ordering NewState uses.
func (s *State) Block() blocks.Block {
	var out blocks.Block
	for c := range Nb {
		for r := range 4 {
			out[4*c+r] = byte(s[c][r])
		}
	}
	return out
}

// At returns the byte at (row, col).
func (s *State) At(row, col int) gf.Byte {
	return s[col][row]
}

// Set stores v at (row, col).
func (s *State) Set(row, col int, v gf.Byte) {
	s[col][row] = v
}

// SubBytes applies the S-box to every byte.
func (s *State) SubBytes() {
	s.substitute(&gf.SBox)
}

// InvSubBytes applies the inverse S-box to every byte.
func (s *State) InvSubBytes() {
	s.substitute(&gf.InvSBox)
}

func (s *State) substitute(t *gf.Table) {
	for c := range Nb {
		s[c] = s[c].Substitute(t)
	}
}

// ShiftRows rotates row r left by r positions. Row 0 is left alone.
func (s *State) ShiftRows() {
	for r := 1; r < 4; r++ {
		s.rotateRow(r, r)
	}
}

// InvShiftRows rotates row r right by r positions.
func (s *State) InvShiftRows() {
	for r := 1; r < 4; r++ {
		s.rotateRow(r, Nb-r)
	}
}

// rotateRow rotates a row left by n columns.
func (s *State) rotateRow(row, n int) {
	var tmp [Nb]gf.Byte
	for c := range Nb {
		tmp[c] = s.At(row, (c+n)%Nb)
	}
	for c := range Nb {
		s.Set(row, c, tmp[c])
	}
}

// MixColumns multiplies every column by gf.MixColumn.
func (s *State) MixColumns() {
	for c := range Nb {
		s[c] = s[c].Mul(gf.MixColumn)
	}
}

// InvMixColumns multiplies every column by gf.InvMixColumn.
func (s *State) InvMixColumns() {
	for c := range Nb {
		s[c] = s[c].Mul(gf.InvMixColumn)
	}
}

// AddRoundKey XORs the state with one round key, which must be exactly Nb
// words long. It is its own inverse.
func (s *State) AddRoundKey(key []gf.Word) {
	if len(key) != Nb {
		panic(fmt.Sprintf("rijndael: round key has %d words, want %d", len(key), Nb))
	}
	for c := range Nb {
		s[c] = s[c].Add(key[c])
	}
}

func (s State) String() string {
	var sb strings.Builder
	for c, w := range s {
		if c > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}

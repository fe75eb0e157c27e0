package rijndael

import (
	"fmt"
	"strconv"

	"github.com/HadrienG2/coursera-crypto/gf"
)

// KeySizeError is returned for keys that are not 16, 24 or 32 bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "rijndael: invalid key size " + strconv.Itoa(int(k))
}

// Schedule is an expanded key: Nb*(Nr+1) words, consumed Nb words per round.
type Schedule []gf.Word

// rcon[i] is x^(i-1) in GF(2^8), placed in the first byte of the round
// constant word. Index 0 is never used.
var rcon = [11]gf.Byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// ExpandKey derives the round key schedule for a 128, 192 or 256-bit key.
func ExpandKey(key []byte) (Schedule, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, KeySizeError(len(key))
	}
	return expandKey(key), nil
}

func expandKey(key []byte) Schedule {
	if len(key)%4 != 0 {
		panic(fmt.Sprintf("rijndael: key length %d is not a whole number of words", len(key)))
	}
	nk := len(key) / 4
	nr := nk + 6
	w := make(Schedule, Nb*(nr+1))

	for i := range nk {
		w[i] = gf.NewWord(key[4*i], key[4*i+1], key[4*i+2], key[4*i+3])
	}

	for i := nk; i < len(w); i++ {
		temp := w[i-1]
		if i%nk == 0 {
			temp = temp.Rot().Substitute(&gf.SBox).Add(gf.Word{rcon[i/nk]})
		} else if nk > 6 && i%nk == 4 {
			temp = temp.Substitute(&gf.SBox)
		}
		w[i] = w[i-nk].Add(temp)
	}
	return w
}

// Rounds returns Nr, the number of cipher rounds this schedule drives.
func (s Schedule) Rounds() int {
	checkSchedule(s)
	return len(s)/Nb - 1
}

// RoundKey returns the Nb words used by round r.
func (s Schedule) RoundKey(r int) []gf.Word {
	return s[r*Nb : (r+1)*Nb]
}

// checkSchedule panics on schedules no valid key expansion can produce.
func checkSchedule(s Schedule) {
	if len(s)%Nb != 0 || len(s) <= Nb {
		panic(fmt.Sprintf("rijndael: malformed key schedule of %d words", len(s)))
	}
}

package rijndael

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/HadrienG2/coursera-crypto/blocks"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex.DecodeString(%q) error = %v", s, err)
	}
	return b
}

func mustBlock(t testing.TB, s string) blocks.Block {
	t.Helper()
	return blocks.From(mustHex(t, s))
}

// FIPS-197 appendix A key expansion examples, one round key per line.
var keyExpansionVectors = []struct {
	name  string
	key   string
	words []string
}{
	{
		name: "128",
		key:  "2b7e151628aed2a6abf7158809cf4f3c",
		words: []string{
			"2b7e1516 28aed2a6 abf71588 09cf4f3c",
			"a0fafe17 88542cb1 23a33939 2a6c7605",
			"f2c295f2 7a96b943 5935807a 7359f67f",
			"3d80477d 4716fe3e 1e237e44 6d7a883b",
			"ef44a541 a8525b7f b671253b db0bad00",
			"d4d1c6f8 7c839d87 caf2b8bc 11f915bc",
			"6d88a37a 110b3efd dbf98641 ca0093fd",
			"4e54f70e 5f5fc9f3 84a64fb2 4ea6dc4f",
			"ead27321 b58dbad2 312bf560 7f8d292f",
			"ac7766f3 19fadc21 28d12941 575c006e",
			"d014f9a8 c9ee2589 e13f0cc8 b6630ca6",
		},
	},
	{
		name: "192",
		key:  "8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b",
		words: []string{
			"8e73b0f7 da0e6452 c810f32b 809079e5",
			"62f8ead2 522c6b7b fe0c91f7 2402f5a5",
			"ec12068e 6c827f6b 0e7a95b9 5c56fec2",
			"4db7b4bd 69b54118 85a74796 e92538fd",
			"e75fad44 bb095386 485af057 21efb14f",
			"a448f6d9 4d6dce24 aa326360 113b30e6",
			"a25e7ed5 83b1cf9a 27f93943 6a94f767",
			"c0a69407 d19da4e1 ec1786eb 6fa64971",
			"485f7032 22cb8755 e26d1352 33f0b7b3",
			"40beeb28 2f18a259 6747d26b 458c553e",
			"a7e1466c 9411f1df 821f750a ad07d753",
			"ca400538 8fcc5006 282d166a bc3ce7b5",
			"e98ba06f 448c773c 8ecc7204 01002202",
		},
	},
	{
		name: "256",
		key:  "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4",
		words: []string{
			"603deb10 15ca71be 2b73aef0 857d7781",
			"1f352c07 3b6108d7 2d9810a3 0914dff4",
			"9ba35411 8e6925af a51a8b5f 2067fcde",
			"a8b09c1a 93d194cd be49846e b75d5b9a",
			"d59aecb8 5bf3c917 fee94248 de8ebe96",
			"b5a9328a 2678a647 98312229 2f6c79b3",
			"812c81ad dadf48ba 24360af2 fab8b464",
			"98c5bfc9 bebd198e 268c3ba7 09e04214",
			"68007bac b2df3316 96e939e4 6c518d80",
			"c814e204 76a9fb8a 5025c02d 59c58239",
			"de136967 6ccc5a71 fa256395 9674ee15",
			"5886ca5d 2e2f31d7 7e0af1fa 27cf73c3",
			"749c47ab 18501dda e2757e4f 7401905a",
			"cafaaae3 e4d59b34 9adf6ace bd10190d",
			"fe4890d1 e6188d0b 046df344 706c631e",
		},
	},
}

func TestExpandKey(t *testing.T) {
	for _, tt := range keyExpansionVectors {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandKey(mustHex(t, tt.key))
			if err != nil {
				t.Fatalf("ExpandKey() error = %v", err)
			}
			want := strings.Fields(strings.Join(tt.words, " "))
			if len(got) != len(want) {
				t.Fatalf("len(ExpandKey()) = %d, want %d", len(got), len(want))
			}
			for i, w := range got {
				if w.String() != want[i] {
					t.Fatalf("w[%d] = %v, want %s", i, w, want[i])
				}
			}
			if nr := len(tt.key)/8 + 6; got.Rounds() != nr {
				t.Fatalf("Rounds() = %d, want %d", got.Rounds(), nr)
			}
		})
	}
}

func TestExpandKeyInvalidSize(t *testing.T) {
	for _, n := range []int{0, 8, 15, 17, 20, 33, 64} {
		_, err := ExpandKey(make([]byte, n))
		var kse KeySizeError
		if !errors.As(err, &kse) || int(kse) != n {
			t.Fatalf("ExpandKey(len %d) error = %v, want KeySizeError(%d)", n, err, n)
		}
		if _, err := NewCipher(make([]byte, n)); err == nil {
			t.Fatalf("NewCipher(len %d) expected error, got nil", n)
		}
	}
}

func TestCipherFIPS197(t *testing.T) {
	tests := []struct {
		name, key, plain, cipher string
	}{
		{
			name:   "appendix B",
			key:    "2b7e151628aed2a6abf7158809cf4f3c",
			plain:  "3243f6a8885a308d313198a2e0370734",
			cipher: "3925841d02dc09fbdc118597196a0b32",
		},
		{
			name:   "appendix C.1",
			key:    "000102030405060708090a0b0c0d0e0f",
			plain:  "00112233445566778899aabbccddeeff",
			cipher: "69c4e0d86a7b0430d8cdb78070b4c55a",
		},
		{
			name:   "appendix C.2",
			key:    "000102030405060708090a0b0c0d0e0f1011121314151617",
			plain:  "00112233445566778899aabbccddeeff",
			cipher: "dda97ca4864cdfe06eaf70a0ec0d7191",
		},
		{
			name:   "appendix C.3",
			key:    "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			plain:  "00112233445566778899aabbccddeeff",
			cipher: "8ea2b7ca516745bfeafc49904b496089",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ExpandKey(mustHex(t, tt.key))
			if err != nil {
				t.Fatalf("ExpandKey() error = %v", err)
			}
			plain := mustBlock(t, tt.plain)
			got := Encrypt(plain, s)
			if hex.EncodeToString(got[:]) != tt.cipher {
				t.Fatalf("Encrypt() = %x, want %s", got, tt.cipher)
			}
			if back := Decrypt(got, s); back != plain {
				t.Fatalf("Decrypt() = %x, want %x", back, plain)
			}
		})
	}
}

func TestCipherMatchesStdlib(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, keyLen := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("key-%d", keyLen*8), func(t *testing.T) {
			for range 50 {
				key := make([]byte, keyLen)
				for i := range key {
					key[i] = byte(rng.Uint32())
				}
				var in blocks.Block
				for i := range in {
					in[i] = byte(rng.Uint32())
				}

				ours, err := NewCipher(key)
				if err != nil {
					t.Fatalf("NewCipher() error = %v", err)
				}
				ref, err := aes.NewCipher(key)
				if err != nil {
					t.Fatalf("aes.NewCipher() error = %v", err)
				}

				got := make([]byte, BlockSize)
				want := make([]byte, BlockSize)
				ours.Encrypt(got, in[:])
				ref.Encrypt(want, in[:])
				if !bytes.Equal(got, want) {
					t.Fatalf("Encrypt(%x) = %x, want %x", in, got, want)
				}

				ours.Decrypt(got, want)
				if !bytes.Equal(got, in[:]) {
					t.Fatalf("Decrypt(%x) = %x, want %x", want, got, in)
				}
			}
		})
	}
}

func TestCipherInPlace(t *testing.T) {
	c, err := NewCipher(mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	buf := mustHex(t, "00112233445566778899aabbccddeeff")
	c.Encrypt(buf, buf)
	if hex.EncodeToString(buf) != "69c4e0d86a7b0430d8cdb78070b4c55a" {
		t.Fatalf("in-place Encrypt = %x", buf)
	}
	c.Decrypt(buf, buf)
	if hex.EncodeToString(buf) != "00112233445566778899aabbccddeeff" {
		t.Fatalf("in-place Decrypt = %x", buf)
	}
	if c.BlockSize() != 16 || c.Rounds() != 10 {
		t.Fatalf("BlockSize() = %d, Rounds() = %d", c.BlockSize(), c.Rounds())
	}
	plain := mustBlock(t, "00112233445566778899aabbccddeeff")
	if got := c.DecryptBlock(c.EncryptBlock(plain)); got != plain {
		t.Fatalf("DecryptBlock(EncryptBlock(x)) = %x, want %x", got, plain)
	}
}

func TestRoundTripAllKeySizes(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, tt := range keyExpansionVectors {
		s, err := ExpandKey(mustHex(t, tt.key))
		if err != nil {
			t.Fatalf("ExpandKey() error = %v", err)
		}
		for range 200 {
			var b blocks.Block
			for i := range b {
				b[i] = byte(rng.Uint32())
			}
			if got := Decrypt(Encrypt(b, s), s); got != b {
				t.Fatalf("key %s: Decrypt(Encrypt(%x)) = %x", tt.name, b, got)
			}
		}
	}
}

func TestMalformedSchedulePanics(t *testing.T) {
	schedules := map[string]Schedule{
		"empty":        {},
		"single round": make(Schedule, Nb),
		"ragged":       make(Schedule, 4*Nb+1),
	}
	for name, s := range schedules {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("Encrypt() with malformed schedule did not panic")
				}
			}()
			Encrypt(blocks.Block{}, s)
		})
	}
}

func TestCipherShortBufferPanics(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher() error = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Encrypt() with short src did not panic")
		}
	}()
	c.Encrypt(make([]byte, 16), make([]byte, 15))
}

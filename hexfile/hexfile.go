// Package hexfile moves byte material such as keys, IVs and ciphertexts in
// and out of hex-encoded text files.
package hexfile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
)

var (
	// ErrOddLength means the text cannot stand for whole bytes.
	ErrOddLength = errors.New("hexfile: odd number of hex digits")
	// ErrInvalidChars means the text holds something other than hex digits.
	ErrInvalidChars = errors.New("hexfile: invalid hex digit")
)

// Decode parses hex text. Trailing whitespace such as a final newline is
// ignored; anything else that is not a hex digit is an error.
func Decode(s string) ([]byte, error) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: %d digits", ErrOddLength, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChars, err)
	}
	return b, nil
}

// Load reads and decodes the hex file at path.
func Load(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hexfile: load %s: %w", path, err)
	}
	b, err := Decode(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Encode returns b as lowercase hex.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

// Save writes b to path as one line of lowercase hex.
func Save(path string, b []byte) error {
	if err := os.WriteFile(path, []byte(Encode(b)+"\n"), 0o644); err != nil {
		return fmt.Errorf("hexfile: save %s: %w", path, err)
	}
	return nil
}

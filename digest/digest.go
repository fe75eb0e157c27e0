// Package digest exposes hash functions through a single small interface.
// The cipher packages never depend on it.
package digest

import (
	"crypto/sha256"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Digester maps a message to a fixed-size digest.
type Digester interface {
	Name() string
	// Size is the digest length in bytes.
	Size() int
	Digest(msg []byte) []byte
}

type sum struct {
	name string
	size int
	fn   func([]byte) []byte
}

func (s sum) Name() string             { return s.name }
func (s sum) Size() int                { return s.size }
func (s sum) Digest(msg []byte) []byte { return s.fn(msg) }

// SHA256 is SHA-256 from FIPS 180-4.
func SHA256() Digester {
	return sum{name: "sha256", size: sha256.Size, fn: func(b []byte) []byte {
		d := sha256.Sum256(b)
		return d[:]
	}}
}

// SHA3256 is SHA3-256 from FIPS 202.
func SHA3256() Digester {
	return sum{name: "sha3-256", size: 32, fn: func(b []byte) []byte {
		d := sha3.Sum256(b)
		return d[:]
	}}
}

var registry = map[string]func() Digester{
	"sha256":   SHA256,
	"sha3-256": SHA3256,
}

// Names lists the names ByName accepts, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// ByName looks a digester up by its Name, ignoring case.
func ByName(name string) (Digester, error) {
	if f, ok := registry[strings.ToLower(name)]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("digest: unknown algorithm %q (have %s)", name, strings.Join(Names(), ", "))
}

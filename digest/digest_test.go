package digest

import (
	"encoding/hex"
	"slices"
	"testing"
)

func TestKnownAnswers(t *testing.T) {
	tests := []struct {
		name string
		d    Digester
		msg  string
		want string
	}{
		{name: "sha256 empty", d: SHA256(), msg: "", want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{name: "sha256 abc", d: SHA256(), msg: "abc", want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{name: "sha3-256 empty", d: SHA3256(), msg: "", want: "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{name: "sha3-256 abc", d: SHA3256(), msg: "abc", want: "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.d.Digest([]byte(tt.msg))
			if hex.EncodeToString(got) != tt.want {
				t.Fatalf("Digest(%q) = %x, want %s", tt.msg, got, tt.want)
			}
			if len(got) != tt.d.Size() {
				t.Fatalf("len(Digest()) = %d, Size() = %d", len(got), tt.d.Size())
			}
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"sha256", "SHA3-256"} {
		d, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) error = %v", name, err)
		}
		if d.Size() != 32 {
			t.Fatalf("ByName(%q).Size() = %d", name, d.Size())
		}
	}
	if _, err := ByName("md5"); err == nil {
		t.Fatal("ByName(md5) expected error, got nil")
	}
	if got := Names(); !slices.Equal(got, []string{"sha256", "sha3-256"}) {
		t.Fatalf("Names() = %q", got)
	}
}

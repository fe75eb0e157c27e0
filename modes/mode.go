package modes

import (
	"fmt"
	"strings"
)

// Mode names a mode of operation.
type Mode int

const (
	ModeCBC Mode = iota
	ModeCTR
)

func (m Mode) String() string {
	switch m {
	case ModeCBC:
		return "cbc"
	case ModeCTR:
		return "ctr"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "cbc" or "ctr" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cbc":
		return ModeCBC, nil
	case "ctr":
		return ModeCTR, nil
	}
	return 0, fmt.Errorf("modes: unknown mode %q", s)
}

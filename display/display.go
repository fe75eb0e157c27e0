// Package display prints messages side by side for manual inspection, each
// byte shown both as a character and as a number.
package display

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Unprintable stands in for bytes outside printable ASCII. It is not ASCII
// itself, so it cannot be mistaken for message content.
const Unprintable = '࿕'

var (
	ErrNoMessages    = errors.New("display: no messages")
	ErrLabelMismatch = errors.New("display: label count does not match message count")
)

// Printable returns b as a character when it is printable ASCII, and
// Unprintable otherwise.
func Printable(b byte) rune {
	if b >= 0x20 && b <= 0x7e {
		return rune(b)
	}
	return Unprintable
}

// MaxLength returns the length of the longest message. ok is false when
// there are no messages at all.
func MaxLength(messages [][]byte) (n int, ok bool) {
	for _, m := range messages {
		n = max(n, len(m))
	}
	return n, len(messages) > 0
}

// Columns writes one column per message under its label, one byte per row.
// Shorter messages leave their column blank once exhausted.
func Columns(w io.Writer, labels []string, messages [][]byte) error {
	if len(labels) != len(messages) {
		return fmt.Errorf("%w: %d labels, %d messages", ErrLabelMismatch, len(labels), len(messages))
	}
	rows, ok := MaxLength(messages)
	if !ok {
		return ErrNoMessages
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(labels, "\t")+"\t")
	for row := range rows {
		for _, m := range messages {
			if row < len(m) {
				fmt.Fprintf(tw, "%c %d", Printable(m[row]), m[row])
			}
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

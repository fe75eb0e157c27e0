// Package bench measures the throughput of the pure Go cipher and modes
// against the standard library, which uses hardware AES when available.
package bench

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"text/tabwriter"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/HadrienG2/coursera-crypto/blocks"
	"github.com/HadrienG2/coursera-crypto/logger"
	"github.com/HadrienG2/coursera-crypto/modes"
	"github.com/HadrienG2/coursera-crypto/padding"
	"github.com/HadrienG2/coursera-crypto/rijndael"
)

// HardwareAES names the AES instruction set of this CPU, if Go knows of
// one, and whether it is present.
func HardwareAES() (name string, ok bool) {
	switch runtime.GOARCH {
	case "amd64", "386":
		return "AES-NI", cpu.X86.HasAES
	case "arm64":
		return "ARMv8 AES", cpu.ARM64.HasAES
	case "s390x":
		return "CPACF AES", cpu.S390X.HasAES
	}
	return "", false
}

type Options struct {
	// Size is the message length in bytes.
	Size int
	// KeyBits is 128, 192 or 256.
	KeyBits int
	Workers int
	// MinTime is how long each case keeps repeating.
	MinTime time.Duration
}

func DefaultOptions() Options {
	return Options{
		Size:    1 << 20,
		KeyBits: 128,
		Workers: runtime.GOMAXPROCS(0),
		MinTime: 500 * time.Millisecond,
	}
}

type Result struct {
	Name    string
	Bytes   int64
	Elapsed time.Duration
}

// MBPerSecond is the throughput in 10^6 bytes per second.
func (r Result) MBPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Bytes) / r.Elapsed.Seconds() / 1e6
}

type benchCase struct {
	name string
	run  func()
}

func cases(opts Options, ours, ref cipher.Block, msg []byte) []benchCase {
	iv := blocks.From(msg[:blocks.Size])
	ct := modes.EncryptCBC(ours, iv, padding.NewPKCS7(msg))
	dst := make([]byte, len(msg))
	return []benchCase{
		{"rijndael ctr", func() { modes.CTR(ours, iv, msg) }},
		{"rijndael ctr parallel", func() { modes.CTRParallel(ours, iv, msg, opts.Workers) }},
		{"rijndael cbc encrypt", func() { modes.EncryptCBC(ours, iv, padding.NewPKCS7(msg)) }},
		{"rijndael cbc decrypt parallel", func() { modes.DecryptCBCParallel(ours, iv, ct, opts.Workers) }},
		{"crypto/aes ctr", func() { modes.CTR(ref, iv, msg) }},
		{"crypto/cipher ctr", func() { cipher.NewCTR(ref, iv[:]).XORKeyStream(dst, msg) }},
	}
}

// Run times every case for at least opts.MinTime and returns the results
// in a fixed order. It stops early when ctx is cancelled.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Size < blocks.Size {
		return nil, fmt.Errorf("bench: message size %d is smaller than one block", opts.Size)
	}
	key := make([]byte, opts.KeyBits/8)
	for i := range key {
		key[i] = byte(i*31 + 7)
	}
	ours, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	ref, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	msg := make([]byte, opts.Size)
	for i := range msg {
		msg[i] = byte(i)
	}

	ctx = logger.WithOperation(ctx, "bench")
	var results []Result
	for _, c := range cases(opts, ours, ref, msg) {
		r := Result{Name: c.name}
		start := time.Now()
		for r.Elapsed < opts.MinTime || r.Bytes == 0 {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			c.run()
			r.Bytes += int64(opts.Size)
			r.Elapsed = time.Since(start)
		}
		logger.LogAttrs(ctx, slog.LevelDebug, "bench case finished",
			slog.String("case", r.Name),
			slog.Int64("bytes", r.Bytes),
			slog.Duration("elapsed", r.Elapsed),
		)
		results = append(results, r)
	}
	return results, nil
}

// Report writes results as an aligned table, preceded by the CPU feature
// line.
func Report(w io.Writer, results []Result) error {
	name, ok := HardwareAES()
	switch {
	case name == "":
		fmt.Fprintf(w, "hardware AES: unknown on %s\n", runtime.GOARCH)
	case ok:
		fmt.Fprintf(w, "hardware AES: %s available\n", name)
	default:
		fmt.Fprintf(w, "hardware AES: %s not available\n", name)
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "case\tbytes\ttime\tMB/s\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%v\t%.1f\t\n", r.Name, r.Bytes, r.Elapsed.Round(time.Microsecond), r.MBPerSecond())
	}
	return tw.Flush()
}

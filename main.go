package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/HadrienG2/coursera-crypto/bench"
	"github.com/HadrienG2/coursera-crypto/blocks"
	"github.com/HadrienG2/coursera-crypto/config"
	"github.com/HadrienG2/coursera-crypto/digest"
	"github.com/HadrienG2/coursera-crypto/display"
	"github.com/HadrienG2/coursera-crypto/filecrypt"
	"github.com/HadrienG2/coursera-crypto/hexfile"
	"github.com/HadrienG2/coursera-crypto/logger"
	"github.com/HadrienG2/coursera-crypto/modes"
)

func main() {
	// Sub-commands.
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "encrypt":
		err = runCrypt(ctx, os.Args[1], false, os.Args[2:])
	case "decrypt":
		err = runCrypt(ctx, os.Args[1], true, os.Args[2:])
	case "digest":
		err = runDigest(os.Args[2:])
	case "columns":
		err = runColumns(os.Args[2:])
	case "keygen":
		err = runKeygen(os.Args[2:])
	case "bench":
		err = runBench(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func printUsage() {
	fmt.Println("coursera-crypto: AES toolkit")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  coursera-crypto encrypt [options]      Encrypt a hex file (CBC or CTR)")
	fmt.Println("  coursera-crypto decrypt [options]      Decrypt a hex file (CBC or CTR)")
	fmt.Println("  coursera-crypto digest [options] FILE  Hash files")
	fmt.Println("  coursera-crypto columns FILE...        Show hex messages side by side")
	fmt.Println("  coursera-crypto keygen [options]       Write a random key as hex")
	fmt.Println("  coursera-crypto bench [options]        Measure cipher throughput")
	fmt.Println()
	fmt.Println("Run 'coursera-crypto <command> -h' for details.")
	fmt.Println()
	fmt.Printf("Environment: %s, %s, %s\n", config.EnvLogLevel, config.EnvLogFormat, config.EnvWorkers)
}

func runCrypt(ctx context.Context, name string, decrypt bool, args []string) error {
	cfg := config.Default().FromEnv()
	cfg.Decrypt = decrypt

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	mode := fs.String("mode", cfg.Mode.String(), "Mode of operation: cbc or ctr")
	fs.StringVar(&cfg.KeyFile, "key", "", "Hex file holding a 16, 24 or 32-byte key")
	fs.StringVar(&cfg.IVFile, "iv", "", "Hex file holding the IV (default: first block of the ciphertext)")
	fs.StringVar(&cfg.InFile, "in", "", "Input hex file")
	fs.StringVar(&cfg.OutFile, "out", "", "Output hex file")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Goroutines for parallel CBC decryption and CTR")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "DEBUG, INFO, WARN or ERROR")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")

	fs.Parse(args)

	m, err := modes.ParseMode(*mode)
	if err != nil {
		return err
	}
	cfg.Mode = m
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.GetLogger().Debug("starting job", "config", cfg.String())

	return filecrypt.Run(ctx, cfg)
}

func runDigest(args []string) error {
	fs := flag.NewFlagSet("digest", flag.ExitOnError)
	alg := fs.String("alg", "sha256", "Hash algorithm: sha256 or sha3-256")
	isHex := fs.Bool("hex", false, "Inputs are hex files; hash the decoded bytes")

	fs.Parse(args)

	d, err := digest.ByName(*alg)
	if err != nil {
		return err
	}
	if fs.NArg() == 0 {
		msg, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		fmt.Printf("%x  -\n", d.Digest(msg))
		return nil
	}
	for _, path := range fs.Args() {
		var msg []byte
		if *isHex {
			msg, err = hexfile.Load(path)
		} else {
			msg, err = os.ReadFile(path)
		}
		if err != nil {
			return err
		}
		fmt.Printf("%x  %s\n", d.Digest(msg), path)
	}
	return nil
}

func runColumns(args []string) error {
	fs := flag.NewFlagSet("columns", flag.ExitOnError)
	xorWith := fs.Int("xor", -1, "XOR every message with the message at this index first")

	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("no input files")
	}
	labels := fs.Args()
	messages := make([][]byte, len(labels))
	for i, path := range labels {
		msg, err := hexfile.Load(path)
		if err != nil {
			return err
		}
		messages[i] = msg
	}

	if *xorWith >= 0 {
		if *xorWith >= len(messages) {
			return fmt.Errorf("-xor index %d out of range for %d files", *xorWith, len(messages))
		}
		ref := messages[*xorWith]
		for i := range messages {
			messages[i] = blocks.XORBytes(messages[i], ref)
			labels[i] = labels[i] + "^" + strconv.Itoa(*xorWith)
		}
	}
	return display.Columns(os.Stdout, labels, messages)
}

func runKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	size := fs.Int("bytes", 16, "Length in bytes: 16, 24 or 32")
	out := fs.String("out", "", "Output hex file (default: stdout)")

	fs.Parse(args)

	switch *size {
	case 16, 24, 32:
	default:
		return fmt.Errorf("invalid key length %d", *size)
	}
	key := make([]byte, *size)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	if *out == "" {
		fmt.Println(hexfile.Encode(key))
		return nil
	}
	return hexfile.Save(*out, key)
}

func runBench(ctx context.Context, args []string) error {
	cfg := config.Default().FromEnv()
	opts := bench.DefaultOptions()
	opts.Workers = cfg.Workers

	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	fs.IntVar(&opts.Size, "size", opts.Size, "Message size in bytes")
	fs.IntVar(&opts.KeyBits, "key-bits", opts.KeyBits, "Key size: 128, 192 or 256")
	fs.IntVar(&opts.Workers, "workers", opts.Workers, "Goroutines for the parallel cases")
	fs.DurationVar(&opts.MinTime, "time", opts.MinTime, "Minimum time per case")
	logLevel := fs.String("log-level", cfg.LogLevel, "DEBUG, INFO, WARN or ERROR")

	fs.Parse(args)

	logger.Init(*logLevel, cfg.LogFormat)
	results, err := bench.Run(ctx, opts)
	if err != nil {
		return err
	}
	return bench.Report(os.Stdout, results)
}

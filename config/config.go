// Package config holds the settings of one file encryption or decryption
// job as assembled by the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/HadrienG2/coursera-crypto/logger"
	"github.com/HadrienG2/coursera-crypto/modes"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel  = "COURSERA_CRYPTO_LOG_LEVEL"
	EnvLogFormat = "COURSERA_CRYPTO_LOG_FORMAT"
	EnvWorkers   = "COURSERA_CRYPTO_WORKERS"
)

var ErrInvalid = errors.New("config: invalid configuration")

// Config describes one encrypt or decrypt job. Key, IV, input and output
// files all hold hex text.
type Config struct {
	Mode    modes.Mode
	Decrypt bool
	KeyFile string
	// IVFile is optional. When empty, encryption draws a random IV and
	// prepends it to the output, and decryption takes the IV from the
	// first block of the input.
	IVFile  string
	InFile  string
	OutFile string
	Workers int

	LogLevel  string
	LogFormat string
}

func Default() *Config {
	return &Config{
		Mode:      modes.ModeCBC,
		Workers:   runtime.GOMAXPROCS(0),
		LogLevel:  logger.DefaultLevel,
		LogFormat: logger.DefaultFormat,
	}
}

// FromEnv overlays the environment onto c. Malformed numbers are ignored
// and leave the current value in place.
func (c *Config) FromEnv() *Config {
	c.LogLevel = strings.ToUpper(getEnv(EnvLogLevel, c.LogLevel))
	c.LogFormat = strings.ToLower(getEnv(EnvLogFormat, c.LogFormat))
	c.Workers = getEnvInt(EnvWorkers, c.Workers)
	return c
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var errs []error
	if c.KeyFile == "" {
		errs = append(errs, errors.New("key file is required"))
	}
	if c.InFile == "" {
		errs = append(errs, errors.New("input file is required"))
	}
	if c.OutFile == "" {
		errs = append(errs, errors.New("output file is required"))
	}
	if c.Mode != modes.ModeCBC && c.Mode != modes.ModeCTR {
		errs = append(errs, fmt.Errorf("unknown mode %v", c.Mode))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func (c *Config) String() string {
	op := "encrypt"
	if c.Decrypt {
		op = "decrypt"
	}
	return fmt.Sprintf("Config{%s %v key=%s iv=%s in=%s out=%s workers=%d log=%s/%s}",
		op, c.Mode, c.KeyFile, c.IVFile, c.InFile, c.OutFile, c.Workers, c.LogLevel, c.LogFormat)
}

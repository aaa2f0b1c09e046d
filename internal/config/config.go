// Package config loads the optional mbx CLI configuration file.
//
// The file is located by the --config flag or, failing that, the MBX_CONFIG
// environment variable. There is no automatic discovery: without either, the
// defaults apply. Command-line flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"xdao.co/mbx/mbx"
)

// EnvVar names the environment variable consulted when no --config flag is
// given.
const EnvVar = "MBX_CONFIG"

// Config holds CLI defaults.
type Config struct {
	// DecodeBase renders payload bytes in decode output.
	// Default: base16lower
	DecodeBase string `yaml:"decode_base"`

	// HashBase encodes hashes produced by the hash command.
	// Default: base64url
	HashBase string `yaml:"hash_base"`

	// HashFunction is the default for the hash command.
	// Default: blake3
	HashFunction string `yaml:"hash_function"`

	// KeyBase encodes keys produced by keygen.
	// Default: base58btc
	KeyBase string `yaml:"key_base"`

	// StoreDir is the content store root. Empty disables the store unless a
	// command names one. $VAR references and a leading ~ are expanded.
	StoreDir string `yaml:"store_dir"`

	// LogLevel is a slog level name: debug, info, warn or error.
	// Default: warn
	LogLevel string `yaml:"log_level"`

	// Output is the report format of decode: text, json, cbor or diag.
	// Default: text
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DecodeBase:   "base16lower",
		HashBase:     "base64url",
		HashFunction: "blake3",
		KeyBase:      "base58btc",
		LogLevel:     "warn",
		Output:       "text",
	}
}

// Load reads the file named by path, or by MBX_CONFIG when path is empty.
// With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML file over the defaults and validates the result.
// Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: empty config path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.StoreDir = expandPath(cfg.StoreDir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return os.ExpandEnv(p)
}

// Validate checks every value resolves.
func (c *Config) Validate() error {
	for _, b := range []struct{ key, value string }{
		{"decode_base", c.DecodeBase},
		{"hash_base", c.HashBase},
		{"key_base", c.KeyBase},
	} {
		if _, err := mbx.ParseBase(b.value); err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
	}
	if _, err := mbx.ParseHashFunction(c.HashFunction); err != nil {
		return fmt.Errorf("hash_function: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Output {
	case "text", "json", "cbor", "diag":
	default:
		return fmt.Errorf("output: invalid value %q (want text, json, cbor or diag)", c.Output)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

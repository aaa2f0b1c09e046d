package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

// SeedSize is the length of seeds produced by DeriveSeed.
const SeedSize = 32

const hkdfSalt = "xdao-mbx-keys-v1"

// DeriveSeed deterministically derives a label-specific seed from a root
// seed with HKDF-SHA256. Distinct labels yield independent seeds.
func DeriveSeed(root []byte, label string) ([]byte, error) {
	if len(root) < SeedSize {
		return nil, fmt.Errorf("root seed must be at least %d bytes, got %d", SeedSize, len(root))
	}
	if err := CheckLabel(label); err != nil {
		return nil, err
	}
	out := make([]byte, SeedSize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, root, []byte(hkdfSalt), []byte("label:"+label)), out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckLabel accepts ASCII letters, digits, '-' and '_'.
func CheckLabel(label string) error {
	if label == "" {
		return errors.New("label cannot be empty")
	}
	for _, char := range label {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in label", char)
	}
	return nil
}

// ParseSeedHex decodes a hex seed with an optional 0x prefix. At least
// SeedSize bytes are required.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) < SeedSize {
		return nil, fmt.Errorf("expected a seed of at least %d bytes, got %d", SeedSize, len(data))
	}
	return data, nil
}

// seedReader expands seed into a deterministic byte stream for Generate.
func seedReader(seed []byte) io.Reader {
	return hkdf.New(sha256.New, seed, []byte(hkdfSalt), []byte("generate"))
}

package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/multiformats/go-multicodec"
)

var codeNames = func() map[uint64]string {
	known := multicodec.KnownCodes()
	m := make(map[uint64]string, len(known))
	for _, c := range known {
		m[uint64(c)] = c.String()
	}
	return m
}()

// Name returns the registry name of code (for example "ed25519-pub").
func Name(code uint64) (string, bool) {
	name, ok := codeNames[code]
	return name, ok
}

// DisplayName is Name with "UnknownCodec" for unregistered codes.
func DisplayName(code uint64) string {
	if name, ok := Name(code); ok {
		return name
	}
	return "UnknownCodec"
}

// Hex renders code the way diagnostics print it: 0x followed by at least two
// lowercase hex digits.
func Hex(code uint64) string {
	return fmt.Sprintf("0x%02x", code)
}

// Lookup resolves a registry name or a numeric literal (decimal or 0x hex)
// to a code.
func Lookup(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return n, nil
	}
	var c multicodec.Code
	if err := c.Set(strings.ToLower(s)); err != nil {
		return 0, err
	}
	return uint64(c), nil
}

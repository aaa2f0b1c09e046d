package mbx

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	b32 "github.com/multiformats/go-base32"
)

// go-multibase reserves the prefixes of base8, base10 and base32z but has
// no codec for them.

var zBase32 = b32.NewEncoding("ybndrfg8ejkmcpqxot1uwisza345h769").WithPadding(b32.NoPadding)

func encodeLocal(b Base, data []byte) (string, bool) {
	var body string
	switch b {
	case Base8:
		body = encodeOctal(data)
	case Base10:
		body = encodeDecimal(data)
	case Base32Z:
		body = zBase32.EncodeToString(data)
	default:
		return "", false
	}
	return string(b.Char()) + body, true
}

// decodeLocal reports ok=false when b is left to go-multibase.
func decodeLocal(b Base, body string) (data []byte, ok bool, err error) {
	switch b {
	case Base8:
		data, err = decodeOctal(body)
	case Base10:
		data, err = decodeDecimal(body)
	case Base32Z:
		data, err = zBase32.DecodeString(body)
		if err == nil && zBase32.EncodeToString(data) != body {
			err = errors.New("non-canonical base32z text")
		}
	default:
		return nil, false, nil
	}
	return data, true, err
}

// encodeOctal packs data most significant bit first, three bits per digit.
// A final partial group is padded with zero bits.
func encodeOctal(data []byte) string {
	var sb strings.Builder
	sb.Grow((len(data)*8 + 2) / 3)
	var acc uint
	bits := 0
	for _, c := range data {
		acc = acc<<8 | uint(c)
		bits += 8
		for bits >= 3 {
			bits -= 3
			sb.WriteByte('0' + byte(acc>>uint(bits)&7))
		}
		acc &= 1<<uint(bits) - 1
	}
	if bits > 0 {
		sb.WriteByte('0' + byte(acc<<uint(3-bits)&7))
	}
	return sb.String()
}

func decodeOctal(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*3/8)
	var acc uint
	bits := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '7' {
			return nil, fmt.Errorf("invalid base8 character %q", c)
		}
		acc = acc<<3 | uint(c-'0')
		bits += 3
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(acc>>uint(bits)))
			acc &= 1<<uint(bits) - 1
		}
	}
	if bits >= 3 {
		return nil, fmt.Errorf("invalid base8 length %d", len(s))
	}
	if acc != 0 {
		return nil, errors.New("non-zero base8 padding bits")
	}
	return out, nil
}

// encodeDecimal writes data as a big-endian integer, with one '0' per
// leading zero byte.
func encodeDecimal(data []byte) string {
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}
	s := strings.Repeat("0", zeros)
	if zeros < len(data) {
		s += new(big.Int).SetBytes(data[zeros:]).String()
	}
	return s
}

func decodeDecimal(s string) ([]byte, error) {
	zeros := 0
	for zeros < len(s) && s[zeros] == '0' {
		zeros++
	}
	out := make([]byte, zeros)
	rest := s[zeros:]
	if rest == "" {
		return out, nil
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return nil, fmt.Errorf("invalid base10 character %q", rest[i])
		}
	}
	n, ok := new(big.Int).SetString(rest, 10)
	if !ok {
		return nil, errors.New("invalid base10 text")
	}
	return append(out, n.Bytes()...), nil
}

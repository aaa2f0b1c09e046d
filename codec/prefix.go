package codec

import (
	"errors"

	"github.com/multiformats/go-varint"
)

// ErrCodeTooLarge is returned for codes that cannot be written as a uint63 varint.
var ErrCodeTooLarge = errors.New("codec: code exceeds the varint range")

// Prefix returns varint(code) ++ data in a freshly allocated buffer.
func Prefix(code uint64, data []byte) ([]byte, error) {
	if code > varint.MaxValueUvarint63 {
		return nil, ErrCodeTooLarge
	}
	buf := make([]byte, varint.UvarintSize(code)+len(data))
	n := varint.PutUvarint(buf, code)
	copy(buf[n:], data)
	return buf, nil
}

// SplitPrefix reads the leading varint code from buf and returns it with the
// remaining bytes, which alias buf. Non-minimal and over-long varints are
// rejected.
func SplitPrefix(buf []byte) (uint64, []byte, error) {
	code, n, err := varint.FromUvarint(buf)
	if err != nil {
		return 0, nil, err
	}
	return code, buf[n:], nil
}

package codec

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
)

func TestPrefixRoundTrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	for _, code := range []uint64{0, 0x12, 0x7f, 0x80, uint64(multicodec.Ed25519Pub), uint64(multicodec.Es256), varint.MaxValueUvarint63} {
		buf, err := Prefix(code, payload)
		if err != nil {
			t.Fatalf("Prefix(%#x): %v", code, err)
		}
		gotCode, rest, err := SplitPrefix(buf)
		if err != nil {
			t.Fatalf("SplitPrefix(%#x): %v", code, err)
		}
		if gotCode != code {
			t.Fatalf("code mismatch: got %#x want %#x", gotCode, code)
		}
		if !bytes.Equal(rest, payload) {
			t.Fatalf("payload mismatch for %#x", code)
		}
	}
}

func TestPrefixEd25519PubBytes(t *testing.T) {
	buf, err := Prefix(uint64(multicodec.Ed25519Pub), nil)
	if err != nil {
		t.Fatalf("Prefix: %v", err)
	}
	if !bytes.Equal(buf, []byte{0xed, 0x01}) {
		t.Fatalf("got %x want ed01", buf)
	}
}

func TestPrefixRejectsOversizedCode(t *testing.T) {
	if _, err := Prefix(math.MaxUint64, nil); !errors.Is(err, ErrCodeTooLarge) {
		t.Fatalf("got %v want ErrCodeTooLarge", err)
	}
}

func TestSplitPrefixErrors(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want error
	}{
		{"empty", nil, varint.ErrUnderflow},
		{"truncated", []byte{0x80}, varint.ErrUnderflow},
		{"not minimal", []byte{0x81, 0x00}, varint.ErrNotMinimal},
		{"overflow", bytes.Repeat([]byte{0xff}, 10), varint.ErrOverflow},
	}
	for _, tc := range cases {
		if _, _, err := SplitPrefix(tc.buf); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
	}
}

func TestExpectedLength(t *testing.T) {
	if n, ok := ExpectedLength(uint64(multicodec.Ed448Pub)); !ok || n != 57 {
		t.Fatalf("ed448-pub: got %d,%v", n, ok)
	}
	if n, ok := ExpectedLength(uint64(multicodec.Secp256k1Pub)); !ok || n != 33 {
		t.Fatalf("secp256k1-pub: got %d,%v", n, ok)
	}
	if _, ok := ExpectedLength(uint64(multicodec.P521Priv)); ok {
		t.Fatalf("p521-priv should have no fixed length")
	}
	if _, ok := ExpectedLength(uint64(multicodec.Sha2_256)); ok {
		t.Fatalf("hash codes should have no fixed length here")
	}
}

func TestNames(t *testing.T) {
	if name, ok := Name(uint64(multicodec.Ed25519Pub)); !ok || name != "ed25519-pub" {
		t.Fatalf("Name(ed25519-pub) = %q,%v", name, ok)
	}
	if got := DisplayName(0x3fffff); got != "UnknownCodec" {
		t.Fatalf("DisplayName(unknown) = %q", got)
	}
	if got := Hex(0xed); got != "0xed" {
		t.Fatalf("Hex = %q", got)
	}
	if got := Hex(0x1); got != "0x01" {
		t.Fatalf("Hex = %q", got)
	}
	for _, in := range []string{"ed25519-pub", "ED25519-PUB", "0xed", "237"} {
		code, err := Lookup(in)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", in, err)
		}
		if code != uint64(multicodec.Ed25519Pub) {
			t.Fatalf("Lookup(%q) = %#x", in, code)
		}
	}
	if _, err := Lookup("no-such-codec"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}

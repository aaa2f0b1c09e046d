package mbx

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/multiformats/go-multibase"
)

// Base identifies a multibase alphabet. Its value is the leading character
// that marks text encoded with it.
type Base rune

const (
	Base2             = Base(multibase.Base2)
	Base8             = Base(multibase.Base8)
	Base10            = Base(multibase.Base10)
	Base16Lower       = Base(multibase.Base16)
	Base16Upper       = Base(multibase.Base16Upper)
	Base32Lower       = Base(multibase.Base32)
	Base32Upper       = Base(multibase.Base32Upper)
	Base32PadLower    = Base(multibase.Base32pad)
	Base32PadUpper    = Base(multibase.Base32padUpper)
	Base32HexLower    = Base(multibase.Base32hex)
	Base32HexUpper    = Base(multibase.Base32hexUpper)
	Base32HexPadLower = Base(multibase.Base32hexPad)
	Base32HexPadUpper = Base(multibase.Base32hexPadUpper)
	Base32Z           = Base('h')
	Base36Lower       = Base(multibase.Base36)
	Base36Upper       = Base(multibase.Base36Upper)
	Base58BTC         = Base(multibase.Base58BTC)
	Base58Flickr      = Base(multibase.Base58Flickr)
	Base64            = Base(multibase.Base64)
	Base64Pad         = Base(multibase.Base64pad)
	Base64URL         = Base(multibase.Base64url)
	Base64URLPad      = Base(multibase.Base64urlPad)
	Base256Emoji      = Base(multibase.Base256Emoji)
)

// title is the name used in human-readable decode reports.
var baseNames = []struct {
	base  Base
	name  string
	title string
}{
	{Base2, "base2", "Base2"},
	{Base8, "base8", "Base8"},
	{Base10, "base10", "Base10"},
	{Base16Lower, "base16lower", "Base16Lower"},
	{Base16Upper, "base16upper", "Base16Upper"},
	{Base32Lower, "base32lower", "Base32Lower"},
	{Base32Upper, "base32upper", "Base32Upper"},
	{Base32PadLower, "base32padlower", "Base32PadLower"},
	{Base32PadUpper, "base32padupper", "Base32PadUpper"},
	{Base32HexLower, "base32hexlower", "Base32HexLower"},
	{Base32HexUpper, "base32hexupper", "Base32HexUpper"},
	{Base32HexPadLower, "base32hexpadlower", "Base32HexPadLower"},
	{Base32HexPadUpper, "base32hexpadupper", "Base32HexPadUpper"},
	{Base32Z, "base32z", "Base32Z"},
	{Base36Lower, "base36lower", "Base36Lower"},
	{Base36Upper, "base36upper", "Base36Upper"},
	{Base58Flickr, "base58flickr", "Base58Flickr"},
	{Base58BTC, "base58btc", "Base58Btc"},
	{Base64, "base64", "Base64"},
	{Base64Pad, "base64pad", "Base64Pad"},
	{Base64URL, "base64url", "Base64Url"},
	{Base64URLPad, "base64urlpad", "Base64UrlPad"},
	{Base256Emoji, "base256emoji", "Base256Emoji"},
}

// Bases lists every supported base in a fixed order.
func Bases() []Base {
	out := make([]Base, len(baseNames))
	for i, b := range baseNames {
		out[i] = b.base
	}
	return out
}

// BaseNames lists the names accepted by ParseBase.
func BaseNames() []string {
	out := make([]string, len(baseNames))
	for i, b := range baseNames {
		out[i] = b.name
	}
	return out
}

// ParseBase resolves a base name such as "base58btc" (case-insensitive).
// The go-multibase short names ("base16", "base32", ...) are accepted as
// aliases for the lowercase variants.
func ParseBase(name string) (Base, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "identity" {
		return 0, newError(KindBase, "MBX-BASE-003", "base identity is not supported")
	}
	for _, b := range baseNames {
		if b.name == s {
			return b.base, nil
		}
	}
	if enc, ok := multibase.Encodings[s]; ok && enc != multibase.Identity {
		return Base(enc), nil
	}
	return 0, newError(KindBase, "MBX-BASE-004",
		fmt.Sprintf("invalid base %q; supported bases are: %s", name, strings.Join(BaseNames(), ", ")))
}

// BaseFromChar returns the base whose leading character is r.
func BaseFromChar(r rune) (Base, bool) {
	b := Base(r)
	return b, b.Valid()
}

// Valid reports whether b is one of the supported bases.
func (b Base) Valid() bool {
	for _, n := range baseNames {
		if n.base == b {
			return true
		}
	}
	return false
}

// Char is the leading character of text encoded in b.
func (b Base) Char() rune { return rune(b) }

func (b Base) String() string {
	for _, n := range baseNames {
		if n.base == b {
			return n.name
		}
	}
	return fmt.Sprintf("Base(%q)", rune(b))
}

// Title is the CamelCase name of b, as in "Base58Btc".
func (b Base) Title() string {
	for _, n := range baseNames {
		if n.base == b {
			return n.title
		}
	}
	return b.String()
}

// Encode renders data in b, leading character included.
func (b Base) Encode(data []byte) (string, error) {
	if !b.Valid() {
		return "", newError(KindBase, "MBX-BASE-004", fmt.Sprintf("unsupported base %s", b))
	}
	if s, ok := encodeLocal(b, data); ok {
		return s, nil
	}
	s, err := multibase.Encode(multibase.Encoding(b), data)
	if err != nil {
		return "", wrapError(KindBase, "MBX-BASE-004", fmt.Sprintf("encode %s", b), err)
	}
	return s, nil
}

// MarshalText encodes the base as its name.
func (b Base) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, newError(KindBase, "MBX-BASE-004", fmt.Sprintf("unsupported base %s", b))
	}
	return []byte(b.String()), nil
}

func (b *Base) UnmarshalText(text []byte) error {
	v, err := ParseBase(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// leadingBase identifies the base of s from its first character.
func leadingBase(s string) (Base, error) {
	if s == "" {
		return 0, newError(KindBase, "MBX-BASE-002", "empty multibase text")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == multibase.Identity {
		return 0, newError(KindBase, "MBX-BASE-003", "base identity is not supported")
	}
	b, ok := BaseFromChar(r)
	if !ok {
		return 0, newError(KindBase, "MBX-BASE-001", fmt.Sprintf("unsupported multibase prefix %q", r))
	}
	return b, nil
}

// decodeBase decodes multibase text.
func decodeBase(s string) (Base, []byte, error) {
	b, err := leadingBase(s)
	if err != nil {
		return 0, nil, err
	}
	data, ok, err := decodeLocal(b, s[utf8.RuneLen(b.Char()):])
	if !ok {
		_, data, err = multibase.Decode(s)
	}
	if err != nil {
		return 0, nil, wrapError(KindBase, "MBX-BASE-001", fmt.Sprintf("not valid %s text", b), err)
	}
	return b, data, nil
}

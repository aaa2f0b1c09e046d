package mbx

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"xdao.co/mbx/codec"
)

// MBXStr is a borrowed view over text of the form
// multibase(base, varint(codec) ++ bytes) whose codec lies in category C and,
// for codecs with a fixed size, whose bytes have that size.
//
// The zero value is empty and holds no text.
type MBXStr[C Marker] struct {
	s string
}

// Viewer is implemented by both forms of a restricted string.
type Viewer[C Marker] interface {
	View() MBXStr[C]
}

// ParseMBXStr validates s and returns a view over it without copying.
func ParseMBXStr[C Marker](s string) (MBXStr[C], error) {
	if _, err := validate(s, categoryOf[C]()); err != nil {
		return MBXStr[C]{}, err
	}
	return MBXStr[C]{s: s}, nil
}

func ParsePrivKeyStr(s string) (PrivKeyStr, error) { return ParseMBXStr[PrivKeyCategory](s) }
func ParsePubKeyStr(s string) (PubKeyStr, error)   { return ParseMBXStr[PubKeyCategory](s) }
func ParseSignatureStr(s string) (SignatureStr, error) {
	return ParseMBXStr[SignatureCategory](s)
}
func ParseSymmetricKeyStr(s string) (SymmetricKeyStr, error) {
	return ParseMBXStr[SymmetricKeyCategory](s)
}

func (v MBXStr[C]) View() MBXStr[C] { return v }

// Own copies the text into an owned value. No validation is repeated.
func (v MBXStr[C]) Own() MBX[C] { return MBX[C]{s: strings.Clone(v.s)} }

func (v MBXStr[C]) IsZero() bool { return v.s == "" }

// Category is the category marker of the type, not a decoded value.
func (v MBXStr[C]) Category() codec.Category { return categoryOf[C]() }

// BaseChar is the leading character of the text.
func (v MBXStr[C]) BaseChar() rune {
	r, _ := utf8.DecodeRuneInString(v.s)
	return r
}

// Base is the alphabet the text is encoded in.
func (v MBXStr[C]) Base() Base { return Base(v.BaseChar()) }

// Decoded base-decodes the text and splits off the codec. Category and length
// were checked at construction and are not checked again.
func (v MBXStr[C]) Decoded() (Decoded, error) {
	if v.s == "" {
		return Decoded{}, emptyValue()
	}
	return decodeMultiformat(v.s)
}

// Codec is shorthand for Decoded().Codec.
func (v MBXStr[C]) Codec() (uint64, error) {
	d, err := v.Decoded()
	if err != nil {
		return 0, err
	}
	return d.Codec, nil
}

// Reveal returns the full text, secret categories included.
func (v MBXStr[C]) Reveal() string { return v.s }

// Display renders the value; secret categories show their text only when show is set.
func (v MBXStr[C]) Display(show bool) string {
	if show || !secret(categoryOf[C]()) {
		return v.s
	}
	return redacted(v.s)
}

// String redacts private and symmetric keys.
func (v MBXStr[C]) String() string { return v.Display(false) }

func (v MBXStr[C]) GoString() string {
	return fmt.Sprintf("mbx.MBXStr[%v](%q)", categoryOf[C](), v.String())
}

func (v MBXStr[C]) LogValue() slog.Value { return slog.StringValue(v.String()) }

// MarshalText emits the full text, secret categories included.
func (v MBXStr[C]) MarshalText() ([]byte, error) {
	if v.s == "" {
		return nil, emptyValue()
	}
	return []byte(v.s), nil
}

// UnmarshalText validates text. The view keeps a private copy, since the
// caller's buffer may be reused.
func (v *MBXStr[C]) UnmarshalText(text []byte) error {
	parsed, err := ParseMBXStr[C](string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

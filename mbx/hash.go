package mbx

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/multiformats/go-multihash"
	"github.com/multiformats/go-varint"

	"xdao.co/mbx/codec"
)

// MaxDigestSize is the largest digest an MBHash may carry (SHA2-512).
const MaxDigestSize = 64

// Multihash is a decoded multihash: varint(Code) ++ varint(Size) ++ Digest.
type Multihash struct {
	Code   uint64
	Size   int
	Digest []byte
}

// Name is the registry name of m.Code, or "UnknownCodec".
func (m Multihash) Name() string { return codec.DisplayName(m.Code) }

// Bytes returns the multihash wire form.
func (m Multihash) Bytes() []byte {
	// The error return of multihash.Encode is always nil.
	b, _ := multihash.Encode(m.Digest, m.Code)
	return b
}

// Equal reports whether m and o carry the same code and digest. The base a
// hash was rendered in does not take part.
func (m Multihash) Equal(o Multihash) bool {
	return m.Code == o.Code && bytes.Equal(m.Digest, o.Digest)
}

// MBHashStr is a borrowed view over multibase(base, multihash(code, digest))
// where code is in the Multihash category.
type MBHashStr struct {
	s string
}

// HashViewer is implemented by MBHashStr and MBHash.
type HashViewer interface {
	View() MBHashStr
}

// ParseMBHashStr validates s and returns a view over it without copying.
func ParseMBHashStr(s string) (MBHashStr, error) {
	if _, err := validateHash(s); err != nil {
		return MBHashStr{}, err
	}
	return MBHashStr{s: s}, nil
}

func decodeHash(s string) (Multihash, []byte, error) {
	_, raw, err := decodeBase(s)
	if err != nil {
		return Multihash{}, nil, err
	}
	dm, err := multihash.Decode(raw)
	if err != nil {
		return Multihash{}, nil, wrapError(KindPrefix, "MBX-PREFIX-003", "malformed multihash", err)
	}
	return Multihash{Code: dm.Code, Size: dm.Length, Digest: dm.Digest}, raw, nil
}

func validateHash(s string) (Multihash, error) {
	mh, raw, err := decodeHash(s)
	if err != nil {
		return Multihash{}, err
	}
	if err := checkCategory(mh.Code, codec.Multihash); err != nil {
		return Multihash{}, err
	}

	// The declared size is re-read here rather than taken from go-multihash.
	_, rest, err := codec.SplitPrefix(raw)
	if err != nil {
		return Multihash{}, wrapError(KindPrefix, "MBX-PREFIX-001", "malformed codec prefix", err)
	}
	declared, _, err := varint.FromUvarint(rest)
	if err != nil {
		return Multihash{}, wrapError(KindPrefix, "MBX-PREFIX-003", "malformed multihash length", err)
	}
	if declared != uint64(len(mh.Digest)) {
		return Multihash{}, newError(KindLength, "MBX-LEN-002", fmt.Sprintf(
			"codec %s (%s) declares %d digest bytes but carries %d",
			mh.Name(), codec.Hex(mh.Code), declared, len(mh.Digest)))
	}
	if len(mh.Digest) > MaxDigestSize {
		return Multihash{}, newError(KindLength, "MBX-LEN-003", fmt.Sprintf(
			"codec %s (%s) digest of %d bytes exceeds %d",
			mh.Name(), codec.Hex(mh.Code), len(mh.Digest), MaxDigestSize))
	}
	return mh, nil
}

func (h MBHashStr) View() MBHashStr { return h }

// Own copies the text into an owned value. No validation is repeated.
func (h MBHashStr) Own() MBHash { return MBHash{s: strings.Clone(h.s)} }

func (h MBHashStr) IsZero() bool { return h.s == "" }

func (h MBHashStr) BaseChar() rune {
	r, _ := utf8.DecodeRuneInString(h.s)
	return r
}

func (h MBHashStr) Base() Base { return Base(h.BaseChar()) }

// Decoded returns the code, declared size and digest.
func (h MBHashStr) Decoded() (Multihash, error) {
	if h.s == "" {
		return Multihash{}, emptyValue()
	}
	mh, _, err := decodeHash(h.s)
	return mh, err
}

func (h MBHashStr) String() string { return h.s }

func (h MBHashStr) GoString() string { return fmt.Sprintf("mbx.MBHashStr(%q)", h.s) }

func (h MBHashStr) LogValue() slog.Value { return slog.StringValue(h.s) }

func (h MBHashStr) MarshalText() ([]byte, error) {
	if h.s == "" {
		return nil, emptyValue()
	}
	return []byte(h.s), nil
}

func (h *MBHashStr) UnmarshalText(text []byte) error {
	v, err := ParseMBHashStr(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// MBHash is the owned counterpart of MBHashStr.
type MBHash struct {
	s string
}

// EncodeHash builds multibase(base, multihash(code, digest)). Like Encode, it
// trusts code to be a hash function; digests longer than MaxDigestSize are
// rejected because they could never be parsed back.
func EncodeHash(base Base, code uint64, digest []byte) (MBHash, error) {
	if len(digest) > MaxDigestSize {
		return MBHash{}, newError(KindLength, "MBX-LEN-003", fmt.Sprintf(
			"codec %s (%s) digest of %d bytes exceeds %d",
			codec.DisplayName(code), codec.Hex(code), len(digest), MaxDigestSize))
	}
	if code > varint.MaxValueUvarint63 {
		return MBHash{}, wrapError(KindPrefix, "MBX-PREFIX-002",
			fmt.Sprintf("cannot prefix codec %s", codec.Hex(code)), codec.ErrCodeTooLarge)
	}
	mh := Multihash{Code: code, Size: len(digest), Digest: digest}
	s, err := base.Encode(mh.Bytes())
	if err != nil {
		return MBHash{}, err
	}
	return MBHash{s: s}, nil
}

// HashFromMultihash encodes an already-assembled multihash.
func HashFromMultihash(base Base, mh Multihash) (MBHash, error) {
	if mh.Size != len(mh.Digest) {
		return MBHash{}, newError(KindLength, "MBX-LEN-002", fmt.Sprintf(
			"codec %s (%s) declares %d digest bytes but carries %d",
			mh.Name(), codec.Hex(mh.Code), mh.Size, len(mh.Digest)))
	}
	return EncodeHash(base, mh.Code, mh.Digest)
}

func (h MBHash) View() MBHashStr              { return MBHashStr{s: h.s} }
func (h MBHash) IsZero() bool                 { return h.s == "" }
func (h MBHash) BaseChar() rune               { return h.View().BaseChar() }
func (h MBHash) Base() Base                   { return h.View().Base() }
func (h MBHash) Decoded() (Multihash, error)  { return h.View().Decoded() }
func (h MBHash) String() string               { return h.s }
func (h MBHash) GoString() string             { return fmt.Sprintf("mbx.MBHash(%q)", h.s) }
func (h MBHash) LogValue() slog.Value         { return slog.StringValue(h.s) }
func (h MBHash) MarshalText() ([]byte, error) { return h.View().MarshalText() }

func (h *MBHash) UnmarshalText(text []byte) error {
	v, err := ParseMBHashStr(string(text))
	if err != nil {
		return err
	}
	*h = MBHash{s: v.s}
	return nil
}

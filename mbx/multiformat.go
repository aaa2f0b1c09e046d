package mbx

import (
	"fmt"

	"xdao.co/mbx/codec"
)

// Decoded is a base-decoded multiformat payload: varint(Codec) ++ Data.
type Decoded struct {
	Base  Base
	Codec uint64
	Data  []byte
}

// Category classifies d.Codec.
func (d Decoded) Category() codec.Category { return codec.CategoryOf(d.Codec) }

// CodecName is the registry name of d.Codec, or "UnknownCodec".
func (d Decoded) CodecName() string { return codec.DisplayName(d.Codec) }

func decodeMultiformat(s string) (Decoded, error) {
	b, raw, err := decodeBase(s)
	if err != nil {
		return Decoded{}, err
	}
	code, data, err := codec.SplitPrefix(raw)
	if err != nil {
		return Decoded{}, wrapError(KindPrefix, "MBX-PREFIX-001", "malformed codec prefix", err)
	}
	return Decoded{Base: b, Codec: code, Data: data}, nil
}

func encodeMultiformat(base Base, code uint64, data []byte) (string, error) {
	buf, err := codec.Prefix(code, data)
	if err != nil {
		return "", wrapError(KindPrefix, "MBX-PREFIX-002", fmt.Sprintf("cannot prefix codec %s", codec.Hex(code)), err)
	}
	return base.Encode(buf)
}

// checkCategory enforces that code is in category want.
func checkCategory(code uint64, want codec.Category) error {
	if got := codec.CategoryOf(code); got != want {
		return newError(KindCategory, "MBX-CAT-001", fmt.Sprintf(
			"expected codec %s (%s) to be in category %v but it was in category %v",
			codec.DisplayName(code), codec.Hex(code), want, got))
	}
	return nil
}

// checkLength enforces the fixed payload length of code, when it has one.
func checkLength(code uint64, n int) error {
	want, ok := codec.ExpectedLength(code)
	if ok && n != want {
		return newError(KindLength, "MBX-LEN-001", fmt.Sprintf(
			"codec %s (%s) expected %d bytes but got %d",
			codec.DisplayName(code), codec.Hex(code), want, n))
	}
	return nil
}

// validate runs the full check sequence on untrusted text.
func validate(s string, want codec.Category) (Decoded, error) {
	d, err := decodeMultiformat(s)
	if err != nil {
		return Decoded{}, err
	}
	if err := checkCategory(d.Codec, want); err != nil {
		return Decoded{}, err
	}
	if err := checkLength(d.Codec, len(d.Data)); err != nil {
		return Decoded{}, err
	}
	return d, nil
}

// Probe decodes s without any category or length check. It is meant for
// diagnostics over text of unknown kind; values used for anything else must
// come from a Parse function.
func Probe(s string) (Decoded, error) {
	return decodeMultiformat(s)
}

func emptyValue() error {
	return newError(KindInternal, "MBX-INT-001", "empty value")
}

func redacted(s string) string {
	d, err := decodeMultiformat(s)
	if err != nil {
		return "<REDACTED>"
	}
	return "<REDACTED " + d.CodecName() + ">"
}

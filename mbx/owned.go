package mbx

import (
	"fmt"
	"log/slog"

	"xdao.co/mbx/codec"
)

// MBX is the owned counterpart of MBXStr. Values are produced by the encode
// path, by Own, or by unmarshalling, and are valid by construction.
type MBX[C Marker] struct {
	s string
}

// Encode builds multibase(base, varint(code) ++ data).
//
// Encode trusts its caller: it does not check that code lies in category C or
// that data has the code's fixed length. The algorithm adapters in this
// package always pass matching values. Use EncodeChecked for codes that come
// from outside the program.
func Encode[C Marker](base Base, code uint64, data []byte) (MBX[C], error) {
	s, err := encodeMultiformat(base, code, data)
	if err != nil {
		return MBX[C]{}, err
	}
	return MBX[C]{s: s}, nil
}

// EncodeChecked is Encode followed by the category and length checks that
// parsing applies.
func EncodeChecked[C Marker](base Base, code uint64, data []byte) (MBX[C], error) {
	if err := checkCategory(code, categoryOf[C]()); err != nil {
		return MBX[C]{}, err
	}
	if err := checkLength(code, len(data)); err != nil {
		return MBX[C]{}, err
	}
	return Encode[C](base, code, data)
}

func EncodePrivKey(base Base, code uint64, data []byte) (PrivKey, error) {
	return Encode[PrivKeyCategory](base, code, data)
}

func EncodePubKey(base Base, code uint64, data []byte) (PubKey, error) {
	return Encode[PubKeyCategory](base, code, data)
}

func EncodeSignature(base Base, code uint64, data []byte) (Signature, error) {
	return Encode[SignatureCategory](base, code, data)
}

func EncodeSymmetricKey(base Base, code uint64, data []byte) (SymmetricKey, error) {
	return Encode[SymmetricKeyCategory](base, code, data)
}

// View borrows the owned text. No validation is repeated.
func (m MBX[C]) View() MBXStr[C] { return MBXStr[C]{s: m.s} }

func (m MBX[C]) IsZero() bool                 { return m.s == "" }
func (m MBX[C]) Category() codec.Category     { return categoryOf[C]() }
func (m MBX[C]) BaseChar() rune               { return m.View().BaseChar() }
func (m MBX[C]) Base() Base                   { return m.View().Base() }
func (m MBX[C]) Decoded() (Decoded, error)    { return m.View().Decoded() }
func (m MBX[C]) Codec() (uint64, error)       { return m.View().Codec() }
func (m MBX[C]) Reveal() string               { return m.s }
func (m MBX[C]) Display(show bool) string     { return m.View().Display(show) }
func (m MBX[C]) String() string               { return m.View().String() }
func (m MBX[C]) LogValue() slog.Value         { return m.View().LogValue() }
func (m MBX[C]) MarshalText() ([]byte, error) { return m.View().MarshalText() }

func (m MBX[C]) GoString() string {
	return fmt.Sprintf("mbx.MBX[%v](%q)", categoryOf[C](), m.String())
}

func (m *MBX[C]) UnmarshalText(text []byte) error {
	v, err := ParseMBXStr[C](string(text))
	if err != nil {
		return err
	}
	*m = MBX[C]{s: v.s}
	return nil
}

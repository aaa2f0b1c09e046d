package mbx

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/multiformats/go-multicodec"

	"xdao.co/mbx/codec"
)

func payload(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i)*7
	}
	return b
}

func checkRoundTrip[C Marker](t *testing.T, base Base, code multicodec.Code, n int) {
	t.Helper()
	data := payload(n, 1)
	owned, err := Encode[C](base, uint64(code), data)
	if err != nil {
		t.Fatalf("Encode(%s, %s): %v", base, code, err)
	}
	view, err := ParseMBXStr[C](owned.Reveal())
	if err != nil {
		t.Fatalf("Parse(%s, %s): %v", base, code, err)
	}
	d, err := view.Decoded()
	if err != nil {
		t.Fatalf("Decoded: %v", err)
	}
	if d.Base != base || view.Base() != base {
		t.Fatalf("base: got %s/%s want %s", d.Base, view.Base(), base)
	}
	if d.Codec != uint64(code) {
		t.Fatalf("codec: got %#x want %#x", d.Codec, uint64(code))
	}
	if !bytes.Equal(d.Data, data) {
		t.Fatalf("%s %s: payload mismatch", base, code)
	}
}

func TestRoundTripAllBases(t *testing.T) {
	for _, base := range Bases() {
		checkRoundTrip[PubKeyCategory](t, base, multicodec.Ed25519Pub, 32)
		checkRoundTrip[PubKeyCategory](t, base, multicodec.Secp256k1Pub, 33)
		checkRoundTrip[PubKeyCategory](t, base, multicodec.P521Pub, 67)
		checkRoundTrip[PubKeyCategory](t, base, multicodec.Sr25519Pub, 32)
		checkRoundTrip[PrivKeyCategory](t, base, multicodec.Ed25519Priv, 32)
		checkRoundTrip[PrivKeyCategory](t, base, multicodec.P384Priv, 48)
		checkRoundTrip[PrivKeyCategory](t, base, multicodec.P521Priv, 66)
		checkRoundTrip[SignatureCategory](t, base, multicodec.Es256k, 64)
		checkRoundTrip[SignatureCategory](t, base, multicodec.Eddsa, 64)
		checkRoundTrip[SymmetricKeyCategory](t, base, multicodec.Aes256, 32)
		checkRoundTrip[SymmetricKeyCategory](t, base, multicodec.Chacha256, 32)
	}
}

func TestLeadingCharacterRecoversBase(t *testing.T) {
	for _, base := range Bases() {
		k, err := EncodePubKey(base, uint64(multicodec.Ed25519Pub), payload(32, 9))
		if err != nil {
			t.Fatalf("EncodePubKey(%s): %v", base, err)
		}
		r, _ := utf8.DecodeRuneInString(k.Reveal())
		got, ok := BaseFromChar(r)
		if !ok || got != base {
			t.Fatalf("BaseFromChar(%q): got %s ok=%v want %s", r, got, ok, base)
		}
		if k.BaseChar() != base.Char() {
			t.Fatalf("BaseChar: got %q want %q", k.BaseChar(), base.Char())
		}
		parsed, err := ParseBase(base.String())
		if err != nil || parsed != base {
			t.Fatalf("ParseBase(%s): got %s err %v", base, parsed, err)
		}
	}
}

func TestCategoryRejection(t *testing.T) {
	pub, err := EncodePubKey(Base58BTC, uint64(multicodec.Ed25519Pub), payload(32, 3))
	if err != nil {
		t.Fatalf("EncodePubKey: %v", err)
	}
	_, err = ParsePrivKeyStr(pub.Reveal())
	if !IsKind(err, KindCategory) || RuleID(err) != "MBX-CAT-001" {
		t.Fatalf("public key as private key: expected MBX-CAT-001, got %v", err)
	}
	want := "expected codec ed25519-pub (0xed) to be in category PrivKey but it was in category PubKey"
	if err.Error() != want {
		t.Fatalf("message:\n got %q\nwant %q", err.Error(), want)
	}

	sig, err := EncodeSignature(Base64URL, uint64(multicodec.Es256), payload(64, 5))
	if err != nil {
		t.Fatalf("EncodeSignature: %v", err)
	}
	_, err = ParsePubKeyStr(sig.Reveal())
	if !IsKind(err, KindCategory) {
		t.Fatalf("signature as public key: expected KindCategory, got %v", err)
	}

	priv, err := EncodePrivKey(Base16Lower, uint64(multicodec.Ed25519Priv), payload(32, 4))
	if err != nil {
		t.Fatalf("EncodePrivKey: %v", err)
	}
	if _, err := ParseSymmetricKeyStr(priv.Reveal()); !IsKind(err, KindCategory) {
		t.Fatalf("private key as symmetric key: expected KindCategory, got %v", err)
	}
	if _, err := ParseMBHashStr(priv.Reveal()); !IsKind(err, KindCategory) && !IsKind(err, KindPrefix) {
		t.Fatalf("private key as hash: expected a structural rejection, got %v", err)
	}
}

func TestUnspecifiedCodecIsRejected(t *testing.T) {
	raw, err := Encode[PubKeyCategory](Base32Lower, uint64(multicodec.Raw), payload(8, 1))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, err = ParsePubKeyStr(raw.Reveal())
	if !IsKind(err, KindCategory) {
		t.Fatalf("raw codec: expected KindCategory, got %v", err)
	}
	if !strings.Contains(err.Error(), "category Unspecified") {
		t.Fatalf("message should name the actual category: %v", err)
	}
}

type lengthCase struct {
	code multicodec.Code
	n    int
	cat  codec.Category
}

var knownLengths = []lengthCase{
	{multicodec.Ed25519Priv, 32, codec.PrivKey},
	{multicodec.P256Priv, 32, codec.PrivKey},
	{multicodec.P384Priv, 48, codec.PrivKey},
	{multicodec.Secp256k1Priv, 32, codec.PrivKey},
	{multicodec.Ed25519Pub, 32, codec.PubKey},
	{multicodec.Ed448Pub, 57, codec.PubKey},
	{multicodec.P256Pub, 33, codec.PubKey},
	{multicodec.P384Pub, 49, codec.PubKey},
	{multicodec.P521Pub, 67, codec.PubKey},
	{multicodec.Secp256k1Pub, 33, codec.PubKey},
	{multicodec.X25519Pub, 32, codec.PubKey},
}

func parseAs(cat codec.Category, s string) error {
	var err error
	switch cat {
	case codec.PrivKey:
		_, err = ParsePrivKeyStr(s)
	case codec.PubKey:
		_, err = ParsePubKeyStr(s)
	}
	return err
}

func TestLengthEnforcement(t *testing.T) {
	for _, tc := range knownLengths {
		for _, n := range []int{tc.n - 1, tc.n + 1} {
			// The unchecked encode path accepts any length.
			s, err := encodeMultiformat(Base58BTC, uint64(tc.code), payload(n, 2))
			if err != nil {
				t.Fatalf("encode %s/%d: %v", tc.code, n, err)
			}
			err = parseAs(tc.cat, s)
			if !IsKind(err, KindLength) || RuleID(err) != "MBX-LEN-001" {
				t.Fatalf("%s with %d bytes: expected MBX-LEN-001, got %v", tc.code, n, err)
			}
		}
		s, err := encodeMultiformat(Base58BTC, uint64(tc.code), payload(tc.n, 2))
		if err != nil {
			t.Fatalf("encode %s: %v", tc.code, err)
		}
		if err := parseAs(tc.cat, s); err != nil {
			t.Fatalf("%s with %d bytes: %v", tc.code, tc.n, err)
		}
	}
}

func TestLengthMessage(t *testing.T) {
	s, err := encodeMultiformat(Base58BTC, uint64(multicodec.Ed25519Pub), payload(31, 0))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err = ParsePubKeyStr(s)
	want := "codec ed25519-pub (0xed) expected 32 bytes but got 31"
	if err == nil || err.Error() != want {
		t.Fatalf("got %v want %q", err, want)
	}
}

func TestEncodeCheckedStrengthensEncode(t *testing.T) {
	if _, err := EncodeChecked[PrivKeyCategory](Base58BTC, uint64(multicodec.Ed25519Pub), payload(32, 0)); !IsKind(err, KindCategory) {
		t.Fatalf("expected KindCategory, got %v", err)
	}
	if _, err := EncodeChecked[PubKeyCategory](Base58BTC, uint64(multicodec.Ed25519Pub), payload(33, 0)); !IsKind(err, KindLength) {
		t.Fatalf("expected KindLength, got %v", err)
	}
	if _, err := EncodeChecked[PubKeyCategory](Base58BTC, uint64(multicodec.Ed25519Pub), payload(32, 0)); err != nil {
		t.Fatalf("EncodeChecked: %v", err)
	}

	// The unchecked path keeps its documented trust.
	k, err := Encode[PrivKeyCategory](Base58BTC, uint64(multicodec.Ed25519Pub), payload(32, 0))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if c, _ := k.Codec(); c != uint64(multicodec.Ed25519Pub) {
		t.Fatalf("codec: got %#x", c)
	}
}

func TestOwnAndView(t *testing.T) {
	owned, err := EncodePubKey(Base32Lower, uint64(multicodec.Ed25519Pub), payload(32, 6))
	if err != nil {
		t.Fatalf("EncodePubKey: %v", err)
	}
	text := owned.Reveal()
	view, err := ParsePubKeyStr(text)
	if err != nil {
		t.Fatalf("ParsePubKeyStr: %v", err)
	}
	if view.Own() != owned {
		t.Fatalf("Own should equal the encoded value")
	}
	if owned.View() != view {
		t.Fatalf("View should equal the parsed value")
	}
	if view.Category() != codec.PubKey || owned.Category() != codec.PubKey {
		t.Fatalf("category marker: %v/%v", view.Category(), owned.Category())
	}
}

func TestZeroValues(t *testing.T) {
	var v PubKeyStr
	if !v.IsZero() {
		t.Fatalf("zero view should be empty")
	}
	if _, err := v.Decoded(); !IsKind(err, KindInternal) {
		t.Fatalf("Decoded on zero: expected KindInternal, got %v", err)
	}
	if _, err := v.MarshalText(); !IsKind(err, KindInternal) {
		t.Fatalf("MarshalText on zero: expected KindInternal, got %v", err)
	}
	var k PrivKey
	if _, err := k.Codec(); !IsKind(err, KindInternal) {
		t.Fatalf("Codec on zero: expected KindInternal, got %v", err)
	}
	var h MBHash
	if _, err := h.Decoded(); !IsKind(err, KindInternal) {
		t.Fatalf("hash Decoded on zero: expected KindInternal, got %v", err)
	}
}

func TestBaseErrors(t *testing.T) {
	cases := []struct {
		in   string
		rule string
	}{
		{"", "MBX-BASE-002"},
		{"\x00abc", "MBX-BASE-003"},
		{"#abc", "MBX-BASE-001"},
		{"fzz", "MBX-BASE-001"},
		{"z0OIl", "MBX-BASE-001"},
	}
	for _, tc := range cases {
		_, err := ParsePubKeyStr(tc.in)
		if !IsKind(err, KindBase) || RuleID(err) != tc.rule {
			t.Fatalf("%q: expected %s, got %v", tc.in, tc.rule, err)
		}
	}
	if _, err := ParseBase("identity"); RuleID(err) != "MBX-BASE-003" {
		t.Fatalf("ParseBase(identity): got %v", err)
	}
	if _, err := ParseBase("base99"); RuleID(err) != "MBX-BASE-004" {
		t.Fatalf("ParseBase(base99): got %v", err)
	}
	if b, err := ParseBase("BASE58BTC"); err != nil || b != Base58BTC {
		t.Fatalf("ParseBase is case-insensitive: got %s %v", b, err)
	}
	if b, err := ParseBase("base16"); err != nil || b != Base16Lower {
		t.Fatalf("ParseBase(base16): got %s %v", b, err)
	}
}

func TestPrefixErrors(t *testing.T) {
	// 0x80 alone is a truncated varint; 0x80 0x00 is not minimal.
	for _, raw := range [][]byte{{0x80}, {0x80, 0x00}} {
		s, err := Base16Lower.Encode(raw)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if _, err := ParsePubKeyStr(s); !IsKind(err, KindPrefix) || RuleID(err) != "MBX-PREFIX-001" {
			t.Fatalf("%x: expected MBX-PREFIX-001, got %v", raw, err)
		}
	}
}

func TestEd25519VectorDecodes(t *testing.T) {
	v, err := ParsePubKeyStr("z6MkiTBz1ymuepAQ4HEHYSF1H8quG5GLVVQR3djdX3mDooWp")
	if err != nil {
		t.Fatalf("ParsePubKeyStr: %v", err)
	}
	d, err := v.Decoded()
	if err != nil {
		t.Fatalf("Decoded: %v", err)
	}
	if d.Codec != uint64(multicodec.Ed25519Pub) || len(d.Data) != 32 {
		t.Fatalf("got codec %#x with %d bytes", d.Codec, len(d.Data))
	}
	if d.CodecName() != "ed25519-pub" || d.Category() != codec.PubKey {
		t.Fatalf("name %s category %v", d.CodecName(), d.Category())
	}
}

func TestProbe(t *testing.T) {
	d, err := Probe("z6MkiTBz1ymuepAQ4HEHYSF1H8quG5GLVVQR3djdX3mDooWp")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if d.Base != Base58BTC || d.Codec != uint64(multicodec.Ed25519Pub) {
		t.Fatalf("Probe: %+v", d)
	}
}

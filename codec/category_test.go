package codec

import (
	"math"
	"testing"

	"github.com/multiformats/go-multicodec"
)

func TestCategoryOf(t *testing.T) {
	cases := []struct {
		code multicodec.Code
		want Category
	}{
		{multicodec.Identity, Multihash},
		{multicodec.Sha2_256, Multihash},
		{multicodec.Sha2_384, Multihash},
		{multicodec.Sha2_512, Multihash},
		{multicodec.Sha2_224, Multihash},
		{multicodec.Sha3_256, Multihash},
		{multicodec.Sha3_512, Multihash},
		{multicodec.Blake3, Multihash},
		{multicodec.Blake2b256, Multihash},
		{multicodec.Md5, Multihash},
		{multicodec.Skein1024_1024, Multihash},

		{multicodec.Ed25519Priv, PrivKey},
		{multicodec.Secp256k1Priv, PrivKey},
		{multicodec.P256Priv, PrivKey},
		{multicodec.P384Priv, PrivKey},
		{multicodec.P521Priv, PrivKey},

		{multicodec.Secp256k1Pub, PubKey},
		{multicodec.Ed25519Pub, PubKey},
		{multicodec.X25519Pub, PubKey},
		{multicodec.Bls12_381G2Pub, PubKey},
		{multicodec.P256Pub, PubKey},
		{multicodec.Ed448Pub, PubKey},
		{multicodec.Jwk_jcsPub, PubKey},

		{multicodec.Aes256, SymmetricKey},
		{multicodec.Chacha128, SymmetricKey},

		{multicodec.Eddsa, Signature},
		{multicodec.Es256k, Signature},
		{multicodec.Es284, Signature},
		{multicodec.Rs256, Signature},

		{multicodec.Cidv1, Unspecified},
		{multicodec.DagCbor, Unspecified},
		{multicodec.Raw, Unspecified},
	}
	for _, tc := range cases {
		if got := CategoryOf(uint64(tc.code)); got != tc.want {
			t.Fatalf("CategoryOf(%s) = %v want %v", tc.code, got, tc.want)
		}
	}
}

func TestCategoryOfIsTotal(t *testing.T) {
	for _, code := range []uint64{
		0x01, 0x10, 0x1f, 0x21, 0xe8, 0xf0, 0x1309, 0x12ff, 0xffff,
		1 << 40, math.MaxUint64 - 1, math.MaxUint64,
	} {
		if got := CategoryOf(code); got != Unspecified {
			t.Fatalf("CategoryOf(%#x) = %v want Unspecified", code, got)
		}
	}
}

func TestRulesDoNotOverlap(t *testing.T) {
	for i, a := range rules {
		if a.lo > a.hi {
			t.Fatalf("rule %d has lo > hi", i)
		}
		for j, b := range rules {
			if i == j {
				continue
			}
			if a.lo <= b.hi && b.lo <= a.hi {
				t.Fatalf("rules %d (%s..%s) and %d (%s..%s) overlap", i, a.lo, a.hi, j, b.lo, b.hi)
			}
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range []Category{Unspecified, Multihash, PrivKey, PubKey, Signature, SymmetricKey} {
		got, err := ParseCategory(c.String())
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", c.String(), err)
		}
		if got != c {
			t.Fatalf("ParseCategory(%q) = %v", c.String(), got)
		}
	}
	if got, err := ParseCategory("pubkey"); err != nil || got != PubKey {
		t.Fatalf("ParseCategory(pubkey) = %v, %v", got, err)
	}
	if _, err := ParseCategory("nope"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if s := Category(200).String(); s != "Category(200)" {
		t.Fatalf("String() for out-of-range category = %q", s)
	}
}

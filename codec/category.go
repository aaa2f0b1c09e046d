package codec

import (
	"fmt"
	"strings"

	"github.com/multiformats/go-multicodec"
)

// Category groups codec tags by the role their payload plays.
type Category uint8

const (
	// Unspecified covers every tag this package does not classify. It is a
	// valid classification, not an error: newer registry entries land here.
	Unspecified Category = iota
	Multihash
	PrivKey
	PubKey
	Signature
	SymmetricKey
)

var categoryNames = [...]string{
	Unspecified:  "Unspecified",
	Multihash:    "Multihash",
	PrivKey:      "PrivKey",
	PubKey:       "PubKey",
	Signature:    "Signature",
	SymmetricKey: "SymmetricKey",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// ParseCategory accepts the names returned by Category.String, case-insensitively.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return Unspecified, fmt.Errorf("codec: unknown category %q", s)
}

type rule struct {
	lo, hi   multicodec.Code
	category Category
}

func one(c multicodec.Code, cat Category) rule { return rule{lo: c, hi: c, category: cat} }

func span(lo, hi multicodec.Code, cat Category) rule { return rule{lo: lo, hi: hi, category: cat} }

// rules must not overlap.
var rules = []rule{
	one(multicodec.Identity, Multihash),
	span(multicodec.Sha1, multicodec.Blake3, Multihash),
	one(multicodec.Sha2_384, Multihash),
	one(multicodec.DblSha2_256, Multihash),
	one(multicodec.Md4, Multihash),
	one(multicodec.Md5, Multihash),
	span(multicodec.Sha2_256Trunc254Padded, multicodec.Sha2_512_256, Multihash),
	span(multicodec.Ripemd128, multicodec.Ripemd320, Multihash),
	one(multicodec.X11, Multihash),
	one(multicodec.Kangarootwelve, Multihash),
	one(multicodec.Sm3_256, Multihash),
	span(multicodec.Blake2b8, multicodec.Blake2s256, Multihash),
	span(multicodec.Skein256_8, multicodec.Skein1024_1024, Multihash),

	span(multicodec.Ed25519Priv, multicodec.P521Priv, PrivKey),

	one(multicodec.Secp256k1Pub, PubKey),
	span(multicodec.Bls12_381G1Pub, multicodec.Sr25519Pub, PubKey),
	span(multicodec.P256Pub, multicodec.Sm2Pub, PubKey),
	one(multicodec.Jwk_jcsPub, PubKey),

	one(multicodec.Aes128, SymmetricKey),
	one(multicodec.Aes192, SymmetricKey),
	one(multicodec.Aes256, SymmetricKey),
	one(multicodec.Chacha128, SymmetricKey),
	one(multicodec.Chacha256, SymmetricKey),

	one(multicodec.Es256k, Signature),
	one(multicodec.Bls12381G1Sig, Signature),
	one(multicodec.Bls12381G2Sig, Signature),
	one(multicodec.Eddsa, Signature),
	one(multicodec.Eip191, Signature),
	one(multicodec.Es256, Signature),
	// Es284 is the registry's spelling of ES384.
	one(multicodec.Es284, Signature),
	one(multicodec.Es512, Signature),
	one(multicodec.Rs256, Signature),
}

// CategoryOf classifies a codec tag. It is total: tags outside every known
// range yield Unspecified.
func CategoryOf(code uint64) Category {
	for _, r := range rules {
		if code >= uint64(r.lo) && code <= uint64(r.hi) {
			return r.category
		}
	}
	return Unspecified
}

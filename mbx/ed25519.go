package mbx

import (
	"crypto/ed25519"

	"github.com/multiformats/go-multicodec"
)

// PubKeyFromEd25519 encodes an Ed25519 public key as ed25519-pub.
func PubKeyFromEd25519(base Base, pub ed25519.PublicKey) (PubKey, error) {
	if len(pub) != ed25519.PublicKeySize {
		return PubKey{}, keyLength("ed25519 public", ed25519.PublicKeySize, len(pub))
	}
	return Encode[PubKeyCategory](base, uint64(multicodec.Ed25519Pub), pub)
}

// Ed25519PublicKey returns the key carried by an ed25519-pub value.
func Ed25519PublicKey(v Viewer[PubKeyCategory]) (ed25519.PublicKey, error) {
	b, err := payloadOf(v, uint64(multicodec.Ed25519Pub))
	if err != nil {
		return nil, err
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, keyLength("ed25519 public", ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}

// PrivKeyFromEd25519 encodes the 32-byte RFC 8032 seed of priv as
// ed25519-priv.
func PrivKeyFromEd25519(base Base, priv ed25519.PrivateKey) (PrivKey, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return PrivKey{}, keyLength("ed25519 private", ed25519.PrivateKeySize, len(priv))
	}
	return Encode[PrivKeyCategory](base, uint64(multicodec.Ed25519Priv), priv.Seed())
}

// Ed25519PrivateKey expands the seed carried by an ed25519-priv value.
func Ed25519PrivateKey(v Viewer[PrivKeyCategory]) (ed25519.PrivateKey, error) {
	seed, err := payloadOf(v, uint64(multicodec.Ed25519Priv))
	if err != nil {
		return nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return nil, keyLength("ed25519 seed", ed25519.SeedSize, len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

package mbx

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/multiformats/go-multicodec"
)

var (
	errSecp256k1Scalar = errors.New("scalar is zero or not below the group order")
	errNilKey          = errors.New("nil key")
)

// PubKeyFromSecp256k1 encodes pub in SEC1 compressed form as secp256k1-pub.
func PubKeyFromSecp256k1(base Base, pub *secp256k1.PublicKey) (PubKey, error) {
	if pub == nil {
		return PubKey{}, libraryError("secp256k1 public key", errNilKey)
	}
	return Encode[PubKeyCategory](base, uint64(multicodec.Secp256k1Pub), pub.SerializeCompressed())
}

// Secp256k1PublicKey parses the point carried by a secp256k1-pub value.
func Secp256k1PublicKey(v Viewer[PubKeyCategory]) (*secp256k1.PublicKey, error) {
	b, err := payloadOf(v, uint64(multicodec.Secp256k1Pub))
	if err != nil {
		return nil, err
	}
	if len(b) != secp256k1.PubKeyBytesLenCompressed {
		return nil, keyLength("secp256k1 public", secp256k1.PubKeyBytesLenCompressed, len(b))
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, libraryError("secp256k1 public key", err)
	}
	return pub, nil
}

// PrivKeyFromSecp256k1 encodes the 32-byte scalar of priv as secp256k1-priv.
func PrivKeyFromSecp256k1(base Base, priv *secp256k1.PrivateKey) (PrivKey, error) {
	if priv == nil {
		return PrivKey{}, libraryError("secp256k1 private key", errNilKey)
	}
	return Encode[PrivKeyCategory](base, uint64(multicodec.Secp256k1Priv), priv.Serialize())
}

// Secp256k1PrivateKey returns the key carried by a secp256k1-priv value.
// Scalars that are zero or not below the group order are rejected rather
// than reduced.
func Secp256k1PrivateKey(v Viewer[PrivKeyCategory]) (*secp256k1.PrivateKey, error) {
	b, err := payloadOf(v, uint64(multicodec.Secp256k1Priv))
	if err != nil {
		return nil, err
	}
	if len(b) != secp256k1.PrivKeyBytesLen {
		return nil, keyLength("secp256k1 private", secp256k1.PrivKeyBytesLen, len(b))
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(b); overflow || k.IsZero() {
		return nil, libraryError("secp256k1 private key", errSecp256k1Scalar)
	}
	return secp256k1.NewPrivateKey(&k), nil
}

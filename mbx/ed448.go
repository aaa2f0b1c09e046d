package mbx

import (
	"github.com/cloudflare/circl/ecc/goldilocks"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/multiformats/go-multicodec"
)

// The registry has no ed448 private key codec, so only public keys have
// adapters.

// PubKeyFromEd448 encodes an Ed448 public key as ed448-pub after checking
// that it is a point on the curve.
func PubKeyFromEd448(base Base, pub ed448.PublicKey) (PubKey, error) {
	if err := checkEd448(pub); err != nil {
		return PubKey{}, err
	}
	return Encode[PubKeyCategory](base, uint64(multicodec.Ed448Pub), pub)
}

// Ed448PublicKey returns the key carried by an ed448-pub value.
func Ed448PublicKey(v Viewer[PubKeyCategory]) (ed448.PublicKey, error) {
	b, err := payloadOf(v, uint64(multicodec.Ed448Pub))
	if err != nil {
		return nil, err
	}
	if err := checkEd448(b); err != nil {
		return nil, err
	}
	return ed448.PublicKey(b), nil
}

func checkEd448(b []byte) error {
	if len(b) != ed448.PublicKeySize {
		return keyLength("ed448 public", ed448.PublicKeySize, len(b))
	}
	if _, err := goldilocks.FromBytes(b); err != nil {
		return libraryError("ed448 public key", err)
	}
	return nil
}

package mbx

import (
	"github.com/cloudflare/circl/dh/x25519"
	"github.com/cloudflare/circl/dh/x448"
	"github.com/multiformats/go-multicodec"
)

// PubKeyFromX25519 encodes pub as x25519-pub.
func PubKeyFromX25519(base Base, pub x25519.Key) (PubKey, error) {
	return Encode[PubKeyCategory](base, uint64(multicodec.X25519Pub), pub[:])
}

func X25519PublicKey(v Viewer[PubKeyCategory]) (x25519.Key, error) {
	var k x25519.Key
	b, err := payloadOf(v, uint64(multicodec.X25519Pub))
	if err != nil {
		return k, err
	}
	if len(b) != x25519.Size {
		return k, keyLength("x25519 public", x25519.Size, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// PrivKeyFromX25519 encodes secret as x25519-priv. The secret is stored
// unclamped.
func PrivKeyFromX25519(base Base, secret x25519.Key) (PrivKey, error) {
	return Encode[PrivKeyCategory](base, uint64(multicodec.X25519Priv), secret[:])
}

func X25519PrivateKey(v Viewer[PrivKeyCategory]) (x25519.Key, error) {
	var k x25519.Key
	b, err := payloadOf(v, uint64(multicodec.X25519Priv))
	if err != nil {
		return k, err
	}
	if len(b) != x25519.Size {
		return k, keyLength("x25519 private", x25519.Size, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// PubKeyFromX448 encodes pub as x448-pub. There is no x448 private key
// codec.
func PubKeyFromX448(base Base, pub x448.Key) (PubKey, error) {
	return Encode[PubKeyCategory](base, uint64(multicodec.X448Pub), pub[:])
}

func X448PublicKey(v Viewer[PubKeyCategory]) (x448.Key, error) {
	var k x448.Key
	b, err := payloadOf(v, uint64(multicodec.X448Pub))
	if err != nil {
		return k, err
	}
	if len(b) != x448.Size {
		return k, keyLength("x448 public", x448.Size, len(b))
	}
	copy(k[:], b)
	return k, nil
}

package mbx

import (
	"crypto/ed25519"

	"github.com/cloudflare/circl/dh/x25519"
)

// DerivePubKey computes the public key of v and encodes it in the same base.
func DerivePubKey(v Viewer[PrivKeyCategory]) (PubKey, error) {
	view := v.View()
	kt, err := KeyTypeOfPrivKey(view)
	if err != nil {
		return PubKey{}, err
	}
	base := view.Base()
	switch kt {
	case Ed25519:
		priv, err := Ed25519PrivateKey(view)
		if err != nil {
			return PubKey{}, err
		}
		return PubKeyFromEd25519(base, priv.Public().(ed25519.PublicKey))
	case Secp256k1:
		priv, err := Secp256k1PrivateKey(view)
		if err != nil {
			return PubKey{}, err
		}
		return PubKeyFromSecp256k1(base, priv.PubKey())
	case P256, P384, P521:
		priv, err := ECDSAPrivateKey(view)
		if err != nil {
			return PubKey{}, err
		}
		return PubKeyFromECDSA(base, &priv.PublicKey)
	case X25519:
		secret, err := X25519PrivateKey(view)
		if err != nil {
			return PubKey{}, err
		}
		var pub x25519.Key
		x25519.KeyGen(&pub, &secret)
		return PubKeyFromX25519(base, pub)
	}
	return PubKey{}, unsupportedKey(kt.PubKeyCodec())
}

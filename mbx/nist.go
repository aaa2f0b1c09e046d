package mbx

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	"github.com/multiformats/go-multicodec"

	"xdao.co/mbx/codec"
)

type nistCurve struct {
	name   string
	pub    multicodec.Code
	priv   multicodec.Code
	curve  elliptic.Curve
	ecdh   ecdh.Curve
	scalar int
}

var nistCurves = []nistCurve{
	{"P-256", multicodec.P256Pub, multicodec.P256Priv, elliptic.P256(), ecdh.P256(), 32},
	{"P-384", multicodec.P384Pub, multicodec.P384Priv, elliptic.P384(), ecdh.P384(), 48},
	{"P-521", multicodec.P521Pub, multicodec.P521Priv, elliptic.P521(), ecdh.P521(), 66},
}

func nistByCurve(c elliptic.Curve) (nistCurve, error) {
	for _, n := range nistCurves {
		if c != nil && n.curve.Params().Name == c.Params().Name {
			return n, nil
		}
	}
	name := "nil"
	if c != nil {
		name = c.Params().Name
	}
	return nistCurve{}, newError(KindUnsupported, "MBX-KEY-001", fmt.Sprintf("unsupported ecdsa curve %s", name))
}

func wrongNISTCodec(want string, got uint64) error {
	return newError(KindCodec, "MBX-CODEC-001", fmt.Sprintf(
		"expected a NIST curve codec (%s), got %s", want, codec.Hex(got)))
}

func nistByCode(code uint64) (nistCurve, bool) {
	for _, n := range nistCurves {
		if uint64(n.pub) == code || uint64(n.priv) == code {
			return n, true
		}
	}
	return nistCurve{}, false
}

// PubKeyFromECDSA encodes a P-256, P-384 or P-521 public key in SEC1
// compressed form under the matching codec.
func PubKeyFromECDSA(base Base, pub *ecdsa.PublicKey) (PubKey, error) {
	if pub == nil || pub.X == nil || pub.Y == nil {
		return PubKey{}, libraryError("ecdsa public key", errNilKey)
	}
	n, err := nistByCurve(pub.Curve)
	if err != nil {
		return PubKey{}, err
	}
	return Encode[PubKeyCategory](base, uint64(n.pub), elliptic.MarshalCompressed(n.curve, pub.X, pub.Y))
}

// ECDSAPublicKey returns the key carried by a p256-pub, p384-pub or
// p521-pub value.
func ECDSAPublicKey(v Viewer[PubKeyCategory]) (*ecdsa.PublicKey, error) {
	d, err := v.View().Decoded()
	if err != nil {
		return nil, err
	}
	n, ok := nistByCode(d.Codec)
	if !ok || uint64(n.pub) != d.Codec {
		return nil, wrongNISTCodec("p256-pub, p384-pub or p521-pub", d.Codec)
	}
	x, y := elliptic.UnmarshalCompressed(n.curve, d.Data)
	if x == nil {
		return nil, libraryError(n.name+" public key", errors.New("invalid compressed point"))
	}
	return &ecdsa.PublicKey{Curve: n.curve, X: x, Y: y}, nil
}

// PrivKeyFromECDSA encodes the fixed-width big-endian scalar of priv.
func PrivKeyFromECDSA(base Base, priv *ecdsa.PrivateKey) (PrivKey, error) {
	if priv == nil {
		return PrivKey{}, libraryError("ecdsa private key", errNilKey)
	}
	n, err := nistByCurve(priv.Curve)
	if err != nil {
		return PrivKey{}, err
	}
	if priv.D == nil || priv.D.Sign() <= 0 || priv.D.BitLen() > n.scalar*8 {
		return PrivKey{}, libraryError(n.name+" private key", errors.New("scalar out of range"))
	}
	return Encode[PrivKeyCategory](base, uint64(n.priv), priv.D.FillBytes(make([]byte, n.scalar)))
}

// ECDSAPrivateKey returns the key carried by a p256-priv, p384-priv or
// p521-priv value. The scalar must be in [1, N-1]. A p521-priv scalar may
// omit leading zero bytes.
func ECDSAPrivateKey(v Viewer[PrivKeyCategory]) (*ecdsa.PrivateKey, error) {
	d, err := v.View().Decoded()
	if err != nil {
		return nil, err
	}
	n, ok := nistByCode(d.Codec)
	if !ok || uint64(n.priv) != d.Codec {
		return nil, wrongNISTCodec("p256-priv, p384-priv or p521-priv", d.Codec)
	}
	if len(d.Data) > n.scalar || (len(d.Data) < n.scalar && n.priv != multicodec.P521Priv) {
		return nil, keyLength(n.name+" private", n.scalar, len(d.Data))
	}
	scalar := new(big.Int).SetBytes(d.Data)
	k, err := n.ecdh.NewPrivateKey(scalar.FillBytes(make([]byte, n.scalar)))
	if err != nil {
		return nil, libraryError(n.name+" private key", err)
	}
	// Uncompressed SEC1: 0x04 || X || Y.
	point := k.PublicKey().Bytes()
	size := (len(point) - 1) / 2
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: n.curve,
			X:     new(big.Int).SetBytes(point[1 : 1+size]),
			Y:     new(big.Int).SetBytes(point[1+size:]),
		},
		D: scalar,
	}, nil
}

package mbx

import (
	"fmt"
	"strings"

	"github.com/multiformats/go-multicodec"

	"xdao.co/mbx/codec"
)

// KeyType is the dynamic counterpart of the typed key adapters.
type KeyType uint8

const (
	Ed25519 KeyType = iota + 1
	Ed448
	Secp256k1
	P256
	P384
	P521
	X25519
	X448
)

type keySpec struct {
	kt      KeyType
	name    string
	aliases []string
	pub     multicodec.Code
	priv    multicodec.Code
	hasPriv bool
}

var keySpecs = []keySpec{
	{Ed25519, "ed25519", nil, multicodec.Ed25519Pub, multicodec.Ed25519Priv, true},
	{Ed448, "ed448", nil, multicodec.Ed448Pub, 0, false},
	{Secp256k1, "secp256k1", []string{"k256"}, multicodec.Secp256k1Pub, multicodec.Secp256k1Priv, true},
	{P256, "p256", []string{"p-256", "secp256r1"}, multicodec.P256Pub, multicodec.P256Priv, true},
	{P384, "p384", []string{"p-384", "secp384r1"}, multicodec.P384Pub, multicodec.P384Priv, true},
	{P521, "p521", []string{"p-521", "secp521r1"}, multicodec.P521Pub, multicodec.P521Priv, true},
	{X25519, "x25519", nil, multicodec.X25519Pub, multicodec.X25519Priv, true},
	{X448, "x448", nil, multicodec.X448Pub, 0, false},
}

func (k KeyType) spec() (keySpec, bool) {
	for _, s := range keySpecs {
		if s.kt == k {
			return s, true
		}
	}
	return keySpec{}, false
}

// KeyTypes lists every supported key type.
func KeyTypes() []KeyType {
	out := make([]KeyType, len(keySpecs))
	for i, s := range keySpecs {
		out[i] = s.kt
	}
	return out
}

func ParseKeyType(name string) (KeyType, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, spec := range keySpecs {
		if spec.name == s {
			return spec.kt, nil
		}
		for _, a := range spec.aliases {
			if a == s {
				return spec.kt, nil
			}
		}
	}
	names := make([]string, len(keySpecs))
	for i, spec := range keySpecs {
		names[i] = spec.name
	}
	return 0, newError(KindUnsupported, "MBX-KEY-002",
		fmt.Sprintf("unknown key type %q; supported: %s", name, strings.Join(names, ", ")))
}

func (k KeyType) String() string {
	if s, ok := k.spec(); ok {
		return s.name
	}
	return fmt.Sprintf("KeyType(%d)", uint8(k))
}

// PubKeyCodec is the public key codec of k, or 0 for an unknown type.
func (k KeyType) PubKeyCodec() uint64 {
	s, _ := k.spec()
	return uint64(s.pub)
}

// PrivKeyCodec is the private key codec of k. ok is false for types the
// registry has no private key codec for.
func (k KeyType) PrivKeyCodec() (code uint64, ok bool) {
	s, found := k.spec()
	if !found || !s.hasPriv {
		return 0, false
	}
	return uint64(s.priv), true
}

func (k KeyType) MarshalText() ([]byte, error) {
	if _, ok := k.spec(); !ok {
		return nil, newError(KindUnsupported, "MBX-KEY-002", "unknown key type "+k.String())
	}
	return []byte(k.String()), nil
}

func (k *KeyType) UnmarshalText(text []byte) error {
	v, err := ParseKeyType(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func KeyTypeFromPubKeyCodec(code uint64) (KeyType, error) {
	for _, s := range keySpecs {
		if uint64(s.pub) == code {
			return s.kt, nil
		}
	}
	return 0, unsupportedKey(code)
}

func KeyTypeFromPrivKeyCodec(code uint64) (KeyType, error) {
	for _, s := range keySpecs {
		if s.hasPriv && uint64(s.priv) == code {
			return s.kt, nil
		}
	}
	return 0, unsupportedKey(code)
}

func unsupportedKey(code uint64) error {
	return newError(KindUnsupported, "MBX-KEY-001", fmt.Sprintf(
		"no key adapter for codec %s (%s)", codec.DisplayName(code), codec.Hex(code)))
}

func KeyTypeOfPubKey(v Viewer[PubKeyCategory]) (KeyType, error) {
	c, err := v.View().Codec()
	if err != nil {
		return 0, err
	}
	return KeyTypeFromPubKeyCodec(c)
}

func KeyTypeOfPrivKey(v Viewer[PrivKeyCategory]) (KeyType, error) {
	c, err := v.View().Codec()
	if err != nil {
		return 0, err
	}
	return KeyTypeFromPrivKeyCodec(c)
}

// SignerBytes is a private key with its type resolved at runtime.
type SignerBytes struct {
	KeyType KeyType
	Bytes   []byte
}

// VerifierBytes is a public key with its type resolved at runtime.
type VerifierBytes struct {
	KeyType KeyType
	Bytes   []byte
}

func SignerBytesOf(v Viewer[PrivKeyCategory]) (SignerBytes, error) {
	d, err := v.View().Decoded()
	if err != nil {
		return SignerBytes{}, err
	}
	kt, err := KeyTypeFromPrivKeyCodec(d.Codec)
	if err != nil {
		return SignerBytes{}, err
	}
	return SignerBytes{KeyType: kt, Bytes: d.Data}, nil
}

func VerifierBytesOf(v Viewer[PubKeyCategory]) (VerifierBytes, error) {
	d, err := v.View().Decoded()
	if err != nil {
		return VerifierBytes{}, err
	}
	kt, err := KeyTypeFromPubKeyCodec(d.Codec)
	if err != nil {
		return VerifierBytes{}, err
	}
	return VerifierBytes{KeyType: kt, Bytes: d.Data}, nil
}

// PrivKeyFromSignerBytes encodes sb under its type's codec. The length is
// checked, since the bytes did not come from a typed adapter.
func PrivKeyFromSignerBytes(base Base, sb SignerBytes) (PrivKey, error) {
	code, ok := sb.KeyType.PrivKeyCodec()
	if !ok {
		return PrivKey{}, newError(KindUnsupported, "MBX-KEY-001",
			fmt.Sprintf("key type %s has no private key codec", sb.KeyType))
	}
	return EncodeChecked[PrivKeyCategory](base, code, sb.Bytes)
}

func PubKeyFromVerifierBytes(base Base, vb VerifierBytes) (PubKey, error) {
	if _, ok := vb.KeyType.spec(); !ok {
		return PubKey{}, newError(KindUnsupported, "MBX-KEY-002", "unknown key type "+vb.KeyType.String())
	}
	return EncodeChecked[PubKeyCategory](base, vb.KeyType.PubKeyCodec(), vb.Bytes)
}

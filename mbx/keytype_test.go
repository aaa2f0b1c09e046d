package mbx

import (
	"bytes"
	"testing"

	"github.com/multiformats/go-multicodec"
)

func TestKeyTypeTable(t *testing.T) {
	for _, kt := range KeyTypes() {
		parsed, err := ParseKeyType(kt.String())
		if err != nil || parsed != kt {
			t.Fatalf("ParseKeyType(%s): %v %v", kt, parsed, err)
		}
		byPub, err := KeyTypeFromPubKeyCodec(kt.PubKeyCodec())
		if err != nil || byPub != kt {
			t.Fatalf("KeyTypeFromPubKeyCodec(%s): %v %v", kt, byPub, err)
		}
		if code, ok := kt.PrivKeyCodec(); ok {
			byPriv, err := KeyTypeFromPrivKeyCodec(code)
			if err != nil || byPriv != kt {
				t.Fatalf("KeyTypeFromPrivKeyCodec(%s): %v %v", kt, byPriv, err)
			}
		}
	}
	if _, ok := Ed448.PrivKeyCodec(); ok {
		t.Fatalf("ed448 has no private key codec")
	}
	if kt, err := ParseKeyType("P-256"); err != nil || kt != P256 {
		t.Fatalf("ParseKeyType(P-256): %v %v", kt, err)
	}
	if _, err := ParseKeyType("rsa"); !IsKind(err, KindUnsupported) {
		t.Fatalf("expected KindUnsupported, got %v", err)
	}
	if _, err := KeyTypeFromPubKeyCodec(uint64(multicodec.Sr25519Pub)); !IsKind(err, KindUnsupported) {
		t.Fatalf("sr25519: expected KindUnsupported, got %v", err)
	}
}

func TestSignerAndVerifierBytes(t *testing.T) {
	priv, err := EncodePrivKey(Base58BTC, uint64(multicodec.Secp256k1Priv), payload(32, 9))
	if err != nil {
		t.Fatalf("EncodePrivKey: %v", err)
	}
	sb, err := SignerBytesOf(priv)
	if err != nil {
		t.Fatalf("SignerBytesOf: %v", err)
	}
	if sb.KeyType != Secp256k1 || !bytes.Equal(sb.Bytes, payload(32, 9)) {
		t.Fatalf("SignerBytesOf: %+v", sb)
	}
	again, err := PrivKeyFromSignerBytes(Base58BTC, sb)
	if err != nil || again != priv {
		t.Fatalf("PrivKeyFromSignerBytes: %v", err)
	}

	vb := VerifierBytes{KeyType: Ed25519, Bytes: payload(31, 1)}
	if _, err := PubKeyFromVerifierBytes(Base58BTC, vb); !IsKind(err, KindLength) {
		t.Fatalf("short verifier bytes: expected KindLength, got %v", err)
	}
	vb.Bytes = payload(32, 1)
	pub, err := PubKeyFromVerifierBytes(Base58BTC, vb)
	if err != nil {
		t.Fatalf("PubKeyFromVerifierBytes: %v", err)
	}
	got, err := VerifierBytesOf(pub)
	if err != nil || got.KeyType != Ed25519 || !bytes.Equal(got.Bytes, vb.Bytes) {
		t.Fatalf("VerifierBytesOf: %+v %v", got, err)
	}

	if _, err := PrivKeyFromSignerBytes(Base58BTC, SignerBytes{KeyType: X448, Bytes: payload(56, 1)}); !IsKind(err, KindUnsupported) {
		t.Fatalf("x448 signer: expected KindUnsupported, got %v", err)
	}
}

func TestDerivePubKeyUnsupported(t *testing.T) {
	rsa, err := EncodePrivKey(Base58BTC, uint64(multicodec.RsaPriv), payload(64, 1))
	if err != nil {
		t.Fatalf("EncodePrivKey: %v", err)
	}
	if _, err := DerivePubKey(rsa); !IsKind(err, KindUnsupported) {
		t.Fatalf("expected KindUnsupported, got %v", err)
	}
}

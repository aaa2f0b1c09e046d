package keys

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"xdao.co/mbx/mbx"
)

// maxScalarAttempts bounds rejection sampling of NIST scalars. A single
// attempt fails with probability below 2^-32 on every supported curve.
const maxScalarAttempts = 16

// Generate creates a private key of type kt from rand.
func Generate(kt mbx.KeyType, rand io.Reader, base mbx.Base) (mbx.PrivKey, error) {
	switch kt {
	case mbx.Ed25519:
		seed := make([]byte, ed25519.SeedSize)
		if _, err := io.ReadFull(rand, seed); err != nil {
			return mbx.PrivKey{}, err
		}
		return mbx.PrivKeyFromEd25519(base, ed25519.NewKeyFromSeed(seed))
	case mbx.Secp256k1:
		priv, err := secp256k1.GeneratePrivateKeyFromRand(rand)
		if err != nil {
			return mbx.PrivKey{}, err
		}
		return mbx.PrivKeyFromSecp256k1(base, priv)
	case mbx.P256:
		return generateNIST(kt, ecdh.P256(), 32, 0xff, rand, base)
	case mbx.P384:
		return generateNIST(kt, ecdh.P384(), 48, 0xff, rand, base)
	case mbx.P521:
		return generateNIST(kt, ecdh.P521(), 66, 0x01, rand, base)
	case mbx.X25519:
		var secret x25519.Key
		if _, err := io.ReadFull(rand, secret[:]); err != nil {
			return mbx.PrivKey{}, err
		}
		return mbx.PrivKeyFromX25519(base, secret)
	}
	return mbx.PrivKey{}, fmt.Errorf("keys: cannot generate %s private keys", kt)
}

// generateNIST samples big-endian scalars until one lies in [1, N-1]. mask
// clears the unused high bits of the first byte.
func generateNIST(kt mbx.KeyType, curve ecdh.Curve, size int, mask byte, rand io.Reader, base mbx.Base) (mbx.PrivKey, error) {
	scalar := make([]byte, size)
	for i := 0; i < maxScalarAttempts; i++ {
		if _, err := io.ReadFull(rand, scalar); err != nil {
			return mbx.PrivKey{}, err
		}
		scalar[0] &= mask
		if _, err := curve.NewPrivateKey(scalar); err != nil {
			continue
		}
		return mbx.PrivKeyFromSignerBytes(base, mbx.SignerBytes{KeyType: kt, Bytes: scalar})
	}
	return mbx.PrivKey{}, fmt.Errorf("keys: no valid %s scalar after %d attempts", kt, maxScalarAttempts)
}

// FromSeed deterministically generates a key of type kt from seed.
func FromSeed(kt mbx.KeyType, seed []byte, base mbx.Base) (mbx.PrivKey, error) {
	if len(seed) < SeedSize {
		return mbx.PrivKey{}, fmt.Errorf("seed must be at least %d bytes, got %d", SeedSize, len(seed))
	}
	return Generate(kt, seedReader(seed), base)
}

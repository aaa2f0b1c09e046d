package codec

import "github.com/multiformats/go-multicodec"

// Public keys of the NIST and secp256k1 curves are in SEC1 compressed form.
// p521-priv is unchecked.
var expectedLengths = map[multicodec.Code]int{
	multicodec.Ed25519Priv:   32,
	multicodec.P256Priv:      32,
	multicodec.P384Priv:      48,
	multicodec.Secp256k1Priv: 32,

	multicodec.Ed25519Pub:   32,
	multicodec.Ed448Pub:     57,
	multicodec.P256Pub:      33,
	multicodec.P384Pub:      49,
	multicodec.P521Pub:      67,
	multicodec.Secp256k1Pub: 33,
	multicodec.X25519Pub:    32,
}

// ExpectedLength reports the exact payload length required for code, if the
// code has one.
func ExpectedLength(code uint64) (int, bool) {
	n, ok := expectedLengths[multicodec.Code(code)]
	return n, ok
}

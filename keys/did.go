package keys

import (
	"errors"
	"fmt"
	"strings"

	"xdao.co/mbx/mbx"
)

// DIDKeyPrefix starts every did:key identifier.
const DIDKeyPrefix = "did:key:"

// DIDKey renders pub as a did:key identifier. The method requires base58btc,
// so keys in other bases are re-encoded.
func DIDKey(pub mbx.Viewer[mbx.PubKeyCategory]) (string, error) {
	view := pub.View()
	if view.Base() == mbx.Base58BTC {
		return DIDKeyPrefix + view.Reveal(), nil
	}
	d, err := view.Decoded()
	if err != nil {
		return "", err
	}
	k, err := mbx.EncodePubKey(mbx.Base58BTC, d.Codec, d.Data)
	if err != nil {
		return "", err
	}
	return DIDKeyPrefix + k.Reveal(), nil
}

// ParseDIDKey extracts and validates the multikey of a did:key identifier.
// A trailing fragment ("#...") is ignored.
func ParseDIDKey(did string) (mbx.PubKeyStr, error) {
	rest, ok := strings.CutPrefix(did, DIDKeyPrefix)
	if !ok {
		return mbx.PubKeyStr{}, fmt.Errorf("keys: %q is not a did:key identifier", did)
	}
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	if !strings.HasPrefix(rest, "z") {
		return mbx.PubKeyStr{}, errors.New("keys: did:key multikey must be base58btc")
	}
	return mbx.ParsePubKeyStr(rest)
}

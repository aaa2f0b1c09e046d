// Package cidutil bridges MBHash values and IPFS CIDs.
//
// A CIDv1 with the raw codec carries exactly a multihash, so the two forms
// convert losslessly in both directions.
package cidutil

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/mbx/mbx"
)

var ErrUndefinedCID = errors.New("cidutil: undefined CID")

// FromMBHash returns the CIDv1 (raw codec) carrying h's multihash.
func FromMBHash(h mbx.HashViewer) (cid.Cid, error) {
	mh, err := h.View().Decoded()
	if err != nil {
		return cid.Undef, err
	}
	cast, err := multihash.Cast(mh.Bytes())
	if err != nil {
		return cid.Undef, fmt.Errorf("cidutil: %w", err)
	}
	return cid.NewCidV1(cid.Raw, cast), nil
}

// ToMBHash re-encodes the multihash of c in base. Any CID version and codec
// is accepted; only the hash is kept.
func ToMBHash(base mbx.Base, c cid.Cid) (mbx.MBHash, error) {
	if !c.Defined() {
		return mbx.MBHash{}, ErrUndefinedCID
	}
	dm, err := multihash.Decode(c.Hash())
	if err != nil {
		return mbx.MBHash{}, fmt.Errorf("cidutil: %w", err)
	}
	h, err := mbx.HashFromMultihash(base, mbx.Multihash{Code: dm.Code, Size: dm.Length, Digest: dm.Digest})
	if err != nil {
		return mbx.MBHash{}, err
	}
	// Round trip through the parser so category and size rules apply.
	if _, err := mbx.ParseMBHashStr(h.String()); err != nil {
		return mbx.MBHash{}, err
	}
	return h, nil
}

// CIDv1Raw hashes data with fn and returns the raw-codec CIDv1.
func CIDv1Raw(data []byte, fn mbx.HashFunction) (cid.Cid, error) {
	h, err := fn.Sum(mbx.Base32Lower, data)
	if err != nil {
		return cid.Undef, err
	}
	return FromMBHash(h)
}

// Parse decodes a CID string of any version.
func Parse(s string) (cid.Cid, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return cid.Undef, fmt.Errorf("cidutil: %w", err)
	}
	return c, nil
}

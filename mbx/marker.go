package mbx

import "xdao.co/mbx/codec"

// Marker selects the codec category a restricted string may carry.
type Marker interface {
	Category() codec.Category
}

type (
	PrivKeyCategory      struct{}
	PubKeyCategory       struct{}
	SignatureCategory    struct{}
	SymmetricKeyCategory struct{}
)

func (PrivKeyCategory) Category() codec.Category      { return codec.PrivKey }
func (PubKeyCategory) Category() codec.Category       { return codec.PubKey }
func (SignatureCategory) Category() codec.Category    { return codec.Signature }
func (SymmetricKeyCategory) Category() codec.Category { return codec.SymmetricKey }

type (
	PrivKey         = MBX[PrivKeyCategory]
	PrivKeyStr      = MBXStr[PrivKeyCategory]
	PubKey          = MBX[PubKeyCategory]
	PubKeyStr       = MBXStr[PubKeyCategory]
	Signature       = MBX[SignatureCategory]
	SignatureStr    = MBXStr[SignatureCategory]
	SymmetricKey    = MBX[SymmetricKeyCategory]
	SymmetricKeyStr = MBXStr[SymmetricKeyCategory]
)

func categoryOf[C Marker]() codec.Category {
	var c C
	return c.Category()
}

// secret categories are redacted when rendered.
func secret(c codec.Category) bool {
	return c == codec.PrivKey || c == codec.SymmetricKey
}

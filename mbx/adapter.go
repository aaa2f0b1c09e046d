package mbx

import (
	"fmt"

	"xdao.co/mbx/codec"
)

func wrongCodec(want, got uint64) error {
	return newError(KindCodec, "MBX-CODEC-001", fmt.Sprintf(
		"expected codec %s (%s), got %s", codec.DisplayName(want), codec.Hex(want), codec.Hex(got)))
}

func libraryError(what string, err error) error {
	return wrapError(KindLibrary, "MBX-LIB-001", what, err)
}

// payloadOf decodes v and checks its codec is want.
func payloadOf[C Marker](v Viewer[C], want uint64) ([]byte, error) {
	d, err := v.View().Decoded()
	if err != nil {
		return nil, err
	}
	if d.Codec != want {
		return nil, wrongCodec(want, d.Codec)
	}
	return d.Data, nil
}

// digestInto decodes h, checks its codec is want and copies the digest into out.
func digestInto(h HashViewer, want uint64, out []byte) error {
	mh, err := h.View().Decoded()
	if err != nil {
		return err
	}
	if mh.Code != want {
		return wrongCodec(want, mh.Code)
	}
	if len(mh.Digest) != len(out) {
		return newError(KindLength, "MBX-LEN-004", fmt.Sprintf(
			"codec %s (%s) expected %d digest bytes but got %d",
			mh.Name(), codec.Hex(mh.Code), len(out), len(mh.Digest)))
	}
	copy(out, mh.Digest)
	return nil
}

func keyLength(name string, want, got int) error {
	return newError(KindLength, "MBX-LEN-001", fmt.Sprintf("%s key must be %d bytes, got %d", name, want, got))
}

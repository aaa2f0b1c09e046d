package storage

import (
	"fmt"

	"xdao.co/mbx/mbx"
)

// NamedCAS associates a CAS with a stable backend name.
type NamedCAS struct {
	Name string
	CAS  CAS
}

// ReplicatingCAS writes to all configured backends.
//
// Reads fall back in order. Writes go to every backend and all returned
// hashes must carry the same multihash, otherwise ErrHashMismatch is
// returned. Backends may use different bases.
type ReplicatingCAS struct {
	Backends []NamedCAS
}

var _ CAS = ReplicatingCAS{}

// PutAll writes the same bytes to all backends. It returns the hash from the
// first backend and a map of backend name to returned hash.
func (r ReplicatingCAS) PutAll(data []byte) (mbx.MBHash, map[string]mbx.MBHash, error) {
	if len(r.Backends) == 0 {
		return mbx.MBHash{}, nil, fmt.Errorf("storage: ReplicatingCAS has no backends")
	}

	var want mbx.Multihash
	var first mbx.MBHash
	out := make(map[string]mbx.MBHash, len(r.Backends))
	for i, b := range r.Backends {
		if b.CAS == nil {
			return mbx.MBHash{}, nil, fmt.Errorf("storage: nil CAS for backend %q", b.Name)
		}
		got, err := b.CAS.Put(data)
		if err != nil {
			return mbx.MBHash{}, nil, fmt.Errorf("storage: backend %q: %w", b.Name, err)
		}
		out[b.Name] = got
		mh, err := got.Decoded()
		if err != nil {
			return mbx.MBHash{}, out, err
		}
		if i == 0 {
			want, first = mh, got
			continue
		}
		if !mh.Equal(want) {
			return mbx.MBHash{}, out, ErrHashMismatch
		}
	}
	return first, out, nil
}

func (r ReplicatingCAS) Put(data []byte) (mbx.MBHash, error) {
	h, _, err := r.PutAll(data)
	return h, err
}

func (r ReplicatingCAS) Get(h mbx.HashViewer) ([]byte, error) {
	for _, b := range r.Backends {
		if b.CAS == nil {
			continue
		}
		out, err := b.CAS.Get(h)
		if err == nil {
			return out, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, err
	}
	return nil, ErrNotFound
}

func (r ReplicatingCAS) Has(h mbx.HashViewer) bool {
	for _, b := range r.Backends {
		if b.CAS != nil && b.CAS.Has(h) {
			return true
		}
	}
	return false
}

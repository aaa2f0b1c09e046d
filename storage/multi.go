package storage

import (
	"errors"

	"xdao.co/mbx/mbx"
)

// MultiCAS provides deterministic, ordered fallback across multiple CAS adapters.
//
// Lookup order is the slice order in Adapters. Put writes only to the first
// adapter.
type MultiCAS struct {
	Adapters []CAS
}

var _ CAS = MultiCAS{}

func (m MultiCAS) Put(data []byte) (mbx.MBHash, error) {
	if len(m.Adapters) == 0 {
		return mbx.MBHash{}, errors.New("storage: MultiCAS has no adapters")
	}
	return m.Adapters[0].Put(data)
}

func (m MultiCAS) Get(h mbx.HashViewer) ([]byte, error) {
	for _, cas := range m.Adapters {
		b, err := cas.Get(h)
		if err == nil {
			return b, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, err
	}
	return nil, ErrNotFound
}

func (m MultiCAS) Has(h mbx.HashViewer) bool {
	for _, cas := range m.Adapters {
		if cas.Has(h) {
			return true
		}
	}
	return false
}

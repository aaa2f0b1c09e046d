package storage

import "xdao.co/mbx/mbx"

// CAS is a minimal content-addressable storage interface keyed by MBHash.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - The returned hash MUST be computed from the bytes written.
// - Get MUST return ErrNotFound when the hash is absent, and MUST verify the
//   bytes it returns against the requested hash.
// - The same digest in different bases names the same object.
type CAS interface {
	Put(data []byte) (mbx.MBHash, error)
	Get(h mbx.HashViewer) ([]byte, error)
	Has(h mbx.HashViewer) bool
}

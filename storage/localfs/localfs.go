// Package localfs is a filesystem-backed content store keyed by MBHash.
package localfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"xdao.co/mbx/cidutil"
	"xdao.co/mbx/mbx"
	"xdao.co/mbx/storage"
)

// Options configures a CAS. The zero value hashes with sha2-256, renders
// hashes in base32 and does not log.
type Options struct {
	Hash   mbx.HashFunction
	Base   mbx.Base
	Logger *slog.Logger
}

// CAS is a local filesystem-backed content-addressable store.
//
// Objects are written once and named by the CIDv1 of their multihash, so a
// hash rendered in any base finds the same file. Reads verify the bytes
// against the requested hash.
type CAS struct {
	root   string
	hash   mbx.HashFunction
	base   mbx.Base
	logger *slog.Logger
}

var _ storage.CAS = (*CAS)(nil)

// New constructs a filesystem CAS rooted at root. The directory will be created if needed.
func New(root string, opts Options) (*CAS, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if opts.Hash == 0 {
		opts.Hash = mbx.SHA2_256
	}
	if _, err := opts.Hash.MarshalText(); err != nil {
		return nil, fmt.Errorf("localfs: %w", err)
	}
	if opts.Base == 0 {
		opts.Base = mbx.Base32Lower
	}
	if !opts.Base.Valid() {
		return nil, fmt.Errorf("localfs: invalid base %q", opts.Base.Char())
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &CAS{root: root, hash: opts.Hash, base: opts.Base, logger: opts.Logger}, nil
}

func (c *CAS) Put(data []byte) (mbx.MBHash, error) {
	h, err := c.hash.Sum(c.base, data)
	if err != nil {
		return mbx.MBHash{}, err
	}
	path, err := c.pathFor(h)
	if err != nil {
		return mbx.MBHash{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return mbx.MBHash{}, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			existing, rerr := c.Get(h)
			if rerr != nil || !bytes.Equal(existing, data) {
				c.logger.Warn("stored object does not match its hash", "hash", h, "path", path)
				return mbx.MBHash{}, storage.ErrImmutable
			}
			c.logger.Debug("object already stored", "hash", h)
			return h, nil
		}
		return mbx.MBHash{}, err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return mbx.MBHash{}, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return mbx.MBHash{}, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return mbx.MBHash{}, err
	}

	c.logger.Debug("stored object", "hash", h, "bytes", len(data))
	return h, nil
}

func (c *CAS) Get(h mbx.HashViewer) ([]byte, error) {
	path, err := c.pathFor(h)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	if err := mbx.Verify(h, b); err != nil {
		switch {
		case mbx.IsKind(err, mbx.KindMismatch):
			return nil, storage.ErrHashMismatch
		case mbx.IsKind(err, mbx.KindUnsupported):
			return nil, fmt.Errorf("%w: %v", storage.ErrUnsupportedHash, err)
		}
		return nil, err
	}
	return b, nil
}

func (c *CAS) Has(h mbx.HashViewer) bool {
	path, err := c.pathFor(h)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// pathFor shards objects by the last two characters of their CID, since
// every raw CIDv1 shares its leading characters.
func (c *CAS) pathFor(h mbx.HashViewer) (string, error) {
	if h.View().IsZero() {
		return "", storage.ErrInvalidHash
	}
	id, err := cidutil.FromMBHash(h)
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrInvalidHash, err)
	}
	s := id.String()
	return filepath.Join(c.root, s[len(s)-2:], s), nil
}

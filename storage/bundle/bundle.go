// Package bundle moves content-store objects between stores as a
// deterministic TAR archive.
//
// Layout:
//
//	blocks/<cid>   object bytes, named by the raw-codec CIDv1 of their hash
//	index.json     optional, non-authoritative listing
package bundle

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"xdao.co/mbx/cidutil"
	"xdao.co/mbx/mbx"
	"xdao.co/mbx/storage"
)

// FormatVersion is the current bundle index schema version.
const FormatVersion = 1

var epoch0 = time.Unix(0, 0).UTC()

// ExportOptions controls bundle export behavior.
type ExportOptions struct {
	// Labels is optional, non-authoritative metadata mapping names to hashes.
	Labels map[string]mbx.MBHash
	// IncludeIndex controls whether index.json is included.
	IncludeIndex bool
}

// Export writes a deterministic TAR bundle containing the objects for the
// given hashes.
//
// Entry order is lexicographic by CID and TAR headers are normalized, so the
// same objects always produce the same bytes. A hash given in several bases
// is exported once. Every exported object is verified against its hash.
func Export(w io.Writer, cas storage.CAS, hashes []mbx.HashViewer, opts ExportOptions) error {
	if cas == nil {
		return fmt.Errorf("bundle: nil CAS")
	}

	// Hashes are keyed by CID and recorded in base32, so the base a caller
	// used does not reach the output.
	uniq := make(map[string]mbx.MBHash, len(hashes))
	for _, h := range hashes {
		id, err := cidutil.FromMBHash(h)
		if err != nil {
			return fmt.Errorf("%w: %v", storage.ErrInvalidHash, err)
		}
		norm, err := cidutil.ToMBHash(mbx.Base32Lower, id)
		if err != nil {
			return fmt.Errorf("%w: %v", storage.ErrInvalidHash, err)
		}
		uniq[id.String()] = norm
	}

	names := make([]string, 0, len(uniq))
	for s := range uniq {
		names = append(names, s)
	}
	sort.Strings(names)

	tw := tar.NewWriter(w)

	blocks := make([]indexBlock, 0, len(names))
	for _, name := range names {
		h := uniq[name]
		b, err := cas.Get(h)
		if err != nil {
			_ = tw.Close()
			return err
		}
		if err := mbx.Verify(h, b); err != nil {
			_ = tw.Close()
			return storage.ErrHashMismatch
		}
		if err := writeFile(tw, "blocks/"+name, b); err != nil {
			_ = tw.Close()
			return err
		}
		blocks = append(blocks, indexBlock{CID: name, Hash: h.String(), Size: len(b)})
	}

	if opts.IncludeIndex {
		idx := indexJSON{Version: FormatVersion, CIDCodec: "raw", Blocks: blocks}

		if len(opts.Labels) > 0 {
			keys := make([]string, 0, len(opts.Labels))
			for k := range opts.Labels {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			labels := make([]indexLabel, 0, len(keys))
			for _, k := range keys {
				if k == "" {
					_ = tw.Close()
					return fmt.Errorf("bundle: empty label key")
				}
				v := opts.Labels[k]
				if v.IsZero() {
					_ = tw.Close()
					return storage.ErrInvalidHash
				}
				labels = append(labels, indexLabel{Name: k, Hash: v.String()})
			}
			idx.Labels = labels
		}

		b, err := marshalIndexJSON(idx)
		if err != nil {
			_ = tw.Close()
			return err
		}
		if err := writeFile(tw, "index.json", b); err != nil {
			_ = tw.Close()
			return err
		}
	}

	return tw.Close()
}

// ImportOptions controls bundle import behavior.
type ImportOptions struct {
	// IgnoreUnknown controls whether unknown TAR entries are ignored.
	//
	// Default (false) is fail-closed: unknown entries cause Import to return an error.
	IgnoreUnknown bool
}

// Import reads a bundle from r and imports all objects into cas.
func Import(r io.Reader, cas storage.CAS) ([]mbx.MBHash, error) {
	return ImportWithOptions(r, cas, ImportOptions{})
}

// ImportWithOptions reads a bundle from r and imports all objects into cas,
// returning the hashes cas assigned in entry order.
//
// Each object must match the hash carried by its entry name, and cas must
// store it under the same multihash. Importing into a store that hashes with
// a different function fails with storage.ErrHashMismatch.
func ImportWithOptions(r io.Reader, cas storage.CAS, opts ImportOptions) ([]mbx.MBHash, error) {
	if cas == nil {
		return nil, fmt.Errorf("bundle: nil CAS")
	}

	tr := tar.NewReader(r)
	seen := map[string]struct{}{}
	var out []mbx.MBHash

	for {
		h, err := tr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return out, fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}

		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return out, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}

		// Non-authoritative metadata.
		if name == "index.json" {
			_, _ = io.Copy(io.Discard, tr)
			continue
		}

		if !strings.HasPrefix(name, "blocks/") {
			if opts.IgnoreUnknown {
				_, _ = io.Copy(io.Discard, tr)
				continue
			}
			return out, fmt.Errorf("bundle: unknown entry: %s", name)
		}

		key := strings.TrimPrefix(name, "blocks/")
		id, err := cidutil.Parse(key)
		if err != nil {
			return out, fmt.Errorf("%w: %v", storage.ErrInvalidHash, err)
		}
		want, err := cidutil.ToMBHash(mbx.Base32Lower, id)
		if err != nil {
			return out, fmt.Errorf("%w: %v", storage.ErrInvalidHash, err)
		}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return out, err
		}
		if err := mbx.Verify(want, payload); err != nil {
			if mbx.IsKind(err, mbx.KindUnsupported) {
				return out, fmt.Errorf("%w: %v", storage.ErrUnsupportedHash, err)
			}
			return out, storage.ErrHashMismatch
		}

		if _, ok := seen[key]; ok {
			return out, fmt.Errorf("bundle: duplicate block entry: %s", key)
		}
		seen[key] = struct{}{}

		got, err := cas.Put(payload)
		if err != nil {
			return out, err
		}
		if !sameMultihash(got, want) {
			return out, fmt.Errorf("bundle: %s stored as %s: %w", want, got, storage.ErrHashMismatch)
		}
		out = append(out, got)
	}
}

func sameMultihash(a, b mbx.HashViewer) bool {
	am, err := a.View().Decoded()
	if err != nil {
		return false
	}
	bm, err := b.View().Decoded()
	if err != nil {
		return false
	}
	return am.Equal(bm)
}

type indexJSON struct {
	Version  int          `json:"version"`
	CIDCodec string       `json:"cidCodec"`
	Blocks   []indexBlock `json:"blocks"`
	Labels   []indexLabel `json:"labels,omitempty"`
}

type indexBlock struct {
	CID  string `json:"cid"`
	Hash string `json:"hash"`
	Size int    `json:"size"`
}

type indexLabel struct {
	Name string `json:"name"`
	Hash string `json:"hash"`
}

func marshalIndexJSON(idx indexJSON) ([]byte, error) {
	// indexJSON holds only structs and slices, so encoding/json output is stable.
	b, err := json.Marshal(idx)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := io.Copy(tw, bytes.NewReader(content))
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}

	parts := strings.Split(name, "/")
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return strings.Join(parts, "/")
}

package bundle_test

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"xdao.co/mbx/cidutil"
	"xdao.co/mbx/mbx"
	"xdao.co/mbx/storage"
	"xdao.co/mbx/storage/bundle"
	"xdao.co/mbx/storage/localfs"
)

func newStore(t *testing.T, opts localfs.Options) *localfs.CAS {
	t.Helper()
	cas, err := localfs.New(t.TempDir(), opts)
	if err != nil {
		t.Fatal(err)
	}
	return cas
}

func TestBundle_ExportIsDeterministic(t *testing.T) {
	cas := newStore(t, localfs.Options{})

	h1, err := cas.Put([]byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	h2, err := cas.Put([]byte("world"))
	if err != nil {
		t.Fatal(err)
	}
	mh2, err := h2.Decoded()
	if err != nil {
		t.Fatal(err)
	}
	h2b58, err := mbx.HashFromMultihash(mbx.Base58BTC, mh2)
	if err != nil {
		t.Fatal(err)
	}

	labels := map[string]mbx.MBHash{"greeting": h1}
	var outA bytes.Buffer
	if err := bundle.Export(&outA, cas, []mbx.HashViewer{h2, h1, h2b58}, bundle.ExportOptions{IncludeIndex: true, Labels: labels}); err != nil {
		t.Fatal(err)
	}
	var outB bytes.Buffer
	if err := bundle.Export(&outB, cas, []mbx.HashViewer{h1, h2}, bundle.ExportOptions{IncludeIndex: true, Labels: labels}); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(outA.Bytes(), outB.Bytes()) {
		t.Fatalf("expected deterministic bundle bytes")
	}

	names := entryNames(t, outA.Bytes())
	if len(names) != 3 || names[2] != "index.json" {
		t.Fatalf("unexpected entries %v", names)
	}
}

func TestBundle_ImportRoundTrip(t *testing.T) {
	src := newStore(t, localfs.Options{Hash: mbx.BLAKE3})

	payload := []byte("payload")
	h, err := src.Put(payload)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := bundle.Export(&buf, src, []mbx.HashViewer{h}, bundle.ExportOptions{IncludeIndex: true}); err != nil {
		t.Fatal(err)
	}

	dst := newStore(t, localfs.Options{Hash: mbx.BLAKE3, Base: mbx.Base58BTC})
	got, err := bundle.Import(bytes.NewReader(buf.Bytes()), dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Base() != mbx.Base58BTC {
		t.Fatalf("unexpected imported hashes %v", got)
	}

	b, err := dst.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, payload) {
		t.Fatalf("payload mismatch")
	}

	// A store hashing with another function cannot hold the object under
	// the bundle's hash.
	other := newStore(t, localfs.Options{})
	if _, err := bundle.Import(bytes.NewReader(buf.Bytes()), other); !errors.Is(err, storage.ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestBundle_ImportRejectsHashMismatch(t *testing.T) {
	other, err := cidutil.CIDv1Raw([]byte("other"), mbx.SHA2_256)
	if err != nil {
		t.Fatal(err)
	}

	// Name says "other" but bytes are "good".
	bundleBytes := makeDeterministicTar(t, "blocks/"+other.String(), []byte("good"))

	dst := newStore(t, localfs.Options{})
	if _, err := bundle.Import(bytes.NewReader(bundleBytes), dst); !errors.Is(err, storage.ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestBundle_ImportRejectsUnknownEntries(t *testing.T) {
	bundleBytes := makeDeterministicTar(t, "notes.txt", []byte("hi"))
	dst := newStore(t, localfs.Options{})

	if _, err := bundle.Import(bytes.NewReader(bundleBytes), dst); err == nil {
		t.Fatalf("expected unknown entry to be rejected")
	}
	got, err := bundle.ImportWithOptions(bytes.NewReader(bundleBytes), dst, bundle.ImportOptions{IgnoreUnknown: true})
	if err != nil || len(got) != 0 {
		t.Fatalf("IgnoreUnknown: got %v, %v", got, err)
	}

	for _, name := range []string{"blocks/not-a-cid", "../escape"} {
		if _, err := bundle.Import(bytes.NewReader(makeDeterministicTar(t, name, []byte("x"))), dst); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestBundle_ExportMissingObject(t *testing.T) {
	cas := newStore(t, localfs.Options{})
	h, err := mbx.SHA2_256.Sum(mbx.Base32Lower, []byte("never stored"))
	if err != nil {
		t.Fatal(err)
	}
	if err := bundle.Export(io.Discard, cas, []mbx.HashViewer{h}, bundle.ExportOptions{}); !storage.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func entryNames(t *testing.T, b []byte) []string {
	t.Helper()
	var names []string
	tr := tar.NewReader(bytes.NewReader(b))
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return names
		}
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, h.Name)
	}
}

func makeDeterministicTar(t *testing.T, name string, content []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	h := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  time.Unix(0, 0).UTC(),
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(h); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

package storage_test

import (
	"bytes"
	"errors"
	"testing"

	"xdao.co/mbx/mbx"
	"xdao.co/mbx/storage"
	"xdao.co/mbx/storage/localfs"
	"xdao.co/mbx/storage/testkit"
)

func newLocal(t *testing.T, opts localfs.Options) *localfs.CAS {
	t.Helper()
	cas, err := localfs.New(t.TempDir(), opts)
	if err != nil {
		t.Fatalf("localfs.New failed: %v", err)
	}
	return cas
}

func TestMultiCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.MultiCAS{Adapters: []storage.CAS{newLocal(t, localfs.Options{}), newLocal(t, localfs.Options{})}}
	})
}

func TestReplicatingCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.ReplicatingCAS{Backends: []storage.NamedCAS{
			{Name: "a", CAS: newLocal(t, localfs.Options{})},
			{Name: "b", CAS: newLocal(t, localfs.Options{Base: mbx.Base58BTC})},
		}}
	})
}

func TestMultiCAS_FallsBackInOrder(t *testing.T) {
	first := newLocal(t, localfs.Options{})
	second := newLocal(t, localfs.Options{})
	data := []byte("only in second")
	h, err := second.Put(data)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	m := storage.MultiCAS{Adapters: []storage.CAS{first, second}}
	if !m.Has(h) {
		t.Fatalf("Has should find the object in the second adapter")
	}
	got, err := m.Get(h)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("Get bytes mismatch")
	}
	if first.Has(h) {
		t.Fatalf("Get must not write through to the first adapter")
	}

	if _, err := (storage.MultiCAS{}).Put(data); err == nil {
		t.Fatalf("expected an error without adapters")
	}
}

func TestReplicatingCAS_PutAll(t *testing.T) {
	a := newLocal(t, localfs.Options{})
	b := newLocal(t, localfs.Options{Base: mbx.Base58BTC})
	r := storage.ReplicatingCAS{Backends: []storage.NamedCAS{{Name: "a", CAS: a}, {Name: "b", CAS: b}}}

	data := []byte("replicated")
	h, per, err := r.PutAll(data)
	if err != nil {
		t.Fatalf("PutAll failed: %v", err)
	}
	if len(per) != 2 {
		t.Fatalf("expected two backend hashes, got %d", len(per))
	}
	if per["a"] != h {
		t.Fatalf("first backend hash should be returned: %s vs %s", per["a"], h)
	}
	if per["b"].Base() != mbx.Base58BTC {
		t.Fatalf("backend b should render in base58btc, got %s", per["b"].Base())
	}
	if !a.Has(h) || !b.Has(h) {
		t.Fatalf("object should be in every backend")
	}
}

func TestReplicatingCAS_HashFunctionMismatch(t *testing.T) {
	r := storage.ReplicatingCAS{Backends: []storage.NamedCAS{
		{Name: "sha", CAS: newLocal(t, localfs.Options{})},
		{Name: "blake", CAS: newLocal(t, localfs.Options{Hash: mbx.BLAKE3})},
	}}
	if _, err := r.Put([]byte("x")); !errors.Is(err, storage.ErrHashMismatch) {
		t.Fatalf("got %v want %v", err, storage.ErrHashMismatch)
	}

	if _, err := (storage.ReplicatingCAS{}).Put([]byte("x")); err == nil {
		t.Fatalf("expected an error without backends")
	}
	nilBackend := storage.ReplicatingCAS{Backends: []storage.NamedCAS{{Name: "nil"}}}
	if _, err := nilBackend.Put([]byte("x")); err == nil {
		t.Fatalf("expected an error for a nil backend")
	}
}

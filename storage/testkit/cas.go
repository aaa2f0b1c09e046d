// Package testkit holds a conformance suite shared by CAS implementations.
package testkit

import (
	"bytes"
	"testing"

	"xdao.co/mbx/mbx"
	"xdao.co/mbx/storage"
)

// NewCAS constructs a fresh, empty CAS instance for a test.
// The returned CAS MUST be isolated from other tests.
type NewCAS func(t *testing.T) storage.CAS

func RunCASConformance(t *testing.T, newCAS NewCAS) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		cas := newCAS(t)
		want := []byte("hello, mbx storage")

		h, err := cas.Put(want)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := mbx.Verify(h, want); err != nil {
			t.Fatalf("Put returned a hash that does not verify: %v", err)
		}

		got, err := cas.Get(h)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch")
		}
	})

	t.Run("PutIdempotent", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte("same bytes")

		h1, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		h2, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		if h1 != h2 {
			t.Fatalf("Put not idempotent: %s vs %s", h1, h2)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte("missing")
		probe, err := cas.Put([]byte("probe"))
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		mh, err := probe.Decoded()
		if err != nil {
			t.Fatalf("Decoded failed: %v", err)
		}
		fn, err := mbx.HashFunctionFromCodec(mh.Code)
		if err != nil {
			t.Fatalf("HashFunctionFromCodec failed: %v", err)
		}
		h, err := fn.Sum(probe.Base(), b)
		if err != nil {
			t.Fatalf("Sum failed: %v", err)
		}

		if cas.Has(h) {
			t.Fatalf("Has returned true for missing hash")
		}
		_, err = cas.Get(h)
		if !storage.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}

		if _, err := cas.Put(b); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !cas.Has(h) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("AnyBaseFindsObject", func(t *testing.T) {
		cas := newCAS(t)
		b := []byte("base independent")
		h, err := cas.Put(b)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		mh, err := h.Decoded()
		if err != nil {
			t.Fatalf("Decoded failed: %v", err)
		}
		other, err := mbx.HashFromMultihash(mbx.Base58BTC, mh)
		if err != nil {
			t.Fatalf("HashFromMultihash failed: %v", err)
		}
		got, err := cas.Get(other)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", other, err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("Get bytes mismatch")
		}
	})

	t.Run("RejectZeroHash", func(t *testing.T) {
		cas := newCAS(t)
		var zero mbx.MBHashStr
		if cas.Has(zero) {
			t.Fatalf("Has should be false for the zero hash")
		}
		if _, err := cas.Get(zero); err == nil {
			t.Fatalf("Get should fail for the zero hash")
		}
	})
}

package mbx

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	"xdao.co/mbx/codec"
)

// HashFunction names a hash function that can produce an MBHash.
type HashFunction uint8

const (
	BLAKE3 HashFunction = iota + 1
	SHA2_224
	SHA2_256
	SHA2_384
	SHA2_512
	SHA2_512_224
	SHA2_512_256
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	BLAKE2b_256
	BLAKE2b_512
)

type hashSpec struct {
	fn   HashFunction
	name string
	code multicodec.Code
	size int
	new  func() hash.Hash
}

var hashSpecs = []hashSpec{
	{BLAKE3, "blake3", multicodec.Blake3, 32, func() hash.Hash { return blake3.New(32, nil) }},
	{SHA2_224, "sha-224", multicodec.Sha2_224, sha256.Size224, sha256.New224},
	{SHA2_256, "sha-256", multicodec.Sha2_256, sha256.Size, sha256.New},
	{SHA2_384, "sha-384", multicodec.Sha2_384, sha512.Size384, sha512.New384},
	{SHA2_512, "sha-512", multicodec.Sha2_512, sha512.Size, sha512.New},
	{SHA2_512_224, "sha-512-224", multicodec.Sha2_512_224, sha512.Size224, sha512.New512_224},
	{SHA2_512_256, "sha-512-256", multicodec.Sha2_512_256, sha512.Size256, sha512.New512_256},
	{SHA3_224, "sha3-224", multicodec.Sha3_224, 28, func() hash.Hash { return sha3.New224() }},
	{SHA3_256, "sha3-256", multicodec.Sha3_256, 32, func() hash.Hash { return sha3.New256() }},
	{SHA3_384, "sha3-384", multicodec.Sha3_384, 48, func() hash.Hash { return sha3.New384() }},
	{SHA3_512, "sha3-512", multicodec.Sha3_512, 64, func() hash.Hash { return sha3.New512() }},
	{BLAKE2b_256, "blake2b-256", multicodec.Blake2b256, blake2b.Size256, func() hash.Hash { return mustBLAKE2b(blake2b.New256(nil)) }},
	{BLAKE2b_512, "blake2b-512", multicodec.Blake2b512, blake2b.Size, func() hash.Hash { return mustBLAKE2b(blake2b.New512(nil)) }},
}

// blake2b constructors only fail for over-long keys.
func mustBLAKE2b(h hash.Hash, err error) hash.Hash {
	if err != nil {
		panic("mbx: blake2b: " + err.Error())
	}
	return h
}

func (f HashFunction) spec() (hashSpec, bool) {
	for _, s := range hashSpecs {
		if s.fn == f {
			return s, true
		}
	}
	return hashSpec{}, false
}

// HashFunctions lists every supported function, BLAKE3 first.
func HashFunctions() []HashFunction {
	out := make([]HashFunction, len(hashSpecs))
	for i, s := range hashSpecs {
		out[i] = s.fn
	}
	return out
}

// ParseHashFunction accepts the names returned by String ("sha-256",
// "sha3-512", ...) and the registry names of the same functions
// ("sha2-256", "sha3-512", ...).
func ParseHashFunction(name string) (HashFunction, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for _, spec := range hashSpecs {
		if spec.name == s || spec.code.String() == s {
			return spec.fn, nil
		}
	}
	names := make([]string, len(hashSpecs))
	for i, spec := range hashSpecs {
		names[i] = spec.name
	}
	return 0, newError(KindUnsupported, "MBX-HASH-001",
		fmt.Sprintf("unknown hash function %q; supported: %s", name, strings.Join(names, ", ")))
}

// HashFunctionFromCodec maps a multihash code to its function.
func HashFunctionFromCodec(code uint64) (HashFunction, error) {
	for _, s := range hashSpecs {
		if uint64(s.code) == code {
			return s.fn, nil
		}
	}
	return 0, newError(KindUnsupported, "MBX-HASH-002",
		fmt.Sprintf("no hash function for codec %s (%s)", codec.DisplayName(code), codec.Hex(code)))
}

func (f HashFunction) String() string {
	if s, ok := f.spec(); ok {
		return s.name
	}
	return fmt.Sprintf("HashFunction(%d)", uint8(f))
}

// Codec is the multihash code of f, or 0 for an unknown function.
func (f HashFunction) Codec() uint64 {
	s, _ := f.spec()
	return uint64(s.code)
}

// Size is the digest length of f in bytes.
func (f HashFunction) Size() int {
	s, _ := f.spec()
	return s.size
}

// New starts a streaming hash. It panics for an unknown function, as
// crypto.Hash.New does.
func (f HashFunction) New() *Hasher {
	s, ok := f.spec()
	if !ok {
		panic("mbx: unknown hash function " + f.String())
	}
	return &Hasher{fn: f, h: s.new()}
}

// Sum hashes data in one call.
func (f HashFunction) Sum(base Base, data []byte) (MBHash, error) {
	if _, ok := f.spec(); !ok {
		return MBHash{}, newError(KindUnsupported, "MBX-HASH-001", "unknown hash function "+f.String())
	}
	h := f.New()
	_, _ = h.Write(data)
	return h.Sum(base)
}

func (f HashFunction) MarshalText() ([]byte, error) {
	if _, ok := f.spec(); !ok {
		return nil, newError(KindUnsupported, "MBX-HASH-001", "unknown hash function "+f.String())
	}
	return []byte(f.String()), nil
}

func (f *HashFunction) UnmarshalText(text []byte) error {
	v, err := ParseHashFunction(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Hasher accumulates input for one HashFunction. It is an io.Writer.
type Hasher struct {
	fn HashFunction
	h  hash.Hash
}

func (h *Hasher) Write(p []byte) (int, error) { return h.h.Write(p) }

func (h *Hasher) Reset() { h.h.Reset() }

func (h *Hasher) Function() HashFunction { return h.fn }

// Sum finalizes the digest of everything written so far. The hasher may
// continue to be written to afterwards.
func (h *Hasher) Sum(base Base) (MBHash, error) {
	return EncodeHash(base, h.fn.Codec(), h.h.Sum(nil))
}

// Verify recomputes the digest of data with the function named by h's codec.
// Codes outside HashFunctions fall back to the go-multihash registry.
func Verify(h HashViewer, data []byte) error {
	mh, err := h.View().Decoded()
	if err != nil {
		return err
	}
	var got []byte
	if fn, ferr := HashFunctionFromCodec(mh.Code); ferr == nil {
		hh := fn.New()
		_, _ = hh.Write(data)
		got = hh.h.Sum(nil)
	} else {
		sum, serr := multihash.Sum(data, mh.Code, len(mh.Digest))
		if serr != nil {
			return wrapError(KindUnsupported, "MBX-HASH-002",
				fmt.Sprintf("cannot compute codec %s (%s)", mh.Name(), codec.Hex(mh.Code)), serr)
		}
		dm, derr := multihash.Decode(sum)
		if derr != nil {
			return libraryError("multihash", derr)
		}
		got = dm.Digest
	}
	if !bytes.Equal(got, mh.Digest) {
		return newError(KindMismatch, "MBX-VERIFY-001",
			fmt.Sprintf("%s digest does not match the data", mh.Name()))
	}
	return nil
}

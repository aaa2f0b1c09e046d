package mbx

import "github.com/multiformats/go-multicodec"

// The ...Hash functions trust their input to be a digest of the named
// function. The ...Digest functions check the codec and the digest size.

// SHA2_224Hash wraps a SHA2-224 digest.
func SHA2_224Hash(base Base, digest [28]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha2_224), digest[:])
}

func SHA2_224Digest(h HashViewer) ([28]byte, error) {
	var d [28]byte
	err := digestInto(h, uint64(multicodec.Sha2_224), d[:])
	return d, err
}

// SHA2_256Hash wraps a SHA2-256 digest.
func SHA2_256Hash(base Base, digest [32]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha2_256), digest[:])
}

func SHA2_256Digest(h HashViewer) ([32]byte, error) {
	var d [32]byte
	err := digestInto(h, uint64(multicodec.Sha2_256), d[:])
	return d, err
}

// SHA2_384Hash wraps a SHA2-384 digest.
func SHA2_384Hash(base Base, digest [48]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha2_384), digest[:])
}

func SHA2_384Digest(h HashViewer) ([48]byte, error) {
	var d [48]byte
	err := digestInto(h, uint64(multicodec.Sha2_384), d[:])
	return d, err
}

// SHA2_512Hash wraps a SHA2-512 digest.
func SHA2_512Hash(base Base, digest [64]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha2_512), digest[:])
}

func SHA2_512Digest(h HashViewer) ([64]byte, error) {
	var d [64]byte
	err := digestInto(h, uint64(multicodec.Sha2_512), d[:])
	return d, err
}

// SHA3_224Hash wraps a SHA3-224 digest.
func SHA3_224Hash(base Base, digest [28]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha3_224), digest[:])
}

func SHA3_224Digest(h HashViewer) ([28]byte, error) {
	var d [28]byte
	err := digestInto(h, uint64(multicodec.Sha3_224), d[:])
	return d, err
}

// SHA3_256Hash wraps a SHA3-256 digest.
func SHA3_256Hash(base Base, digest [32]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha3_256), digest[:])
}

func SHA3_256Digest(h HashViewer) ([32]byte, error) {
	var d [32]byte
	err := digestInto(h, uint64(multicodec.Sha3_256), d[:])
	return d, err
}

// SHA3_384Hash wraps a SHA3-384 digest.
func SHA3_384Hash(base Base, digest [48]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha3_384), digest[:])
}

func SHA3_384Digest(h HashViewer) ([48]byte, error) {
	var d [48]byte
	err := digestInto(h, uint64(multicodec.Sha3_384), d[:])
	return d, err
}

// SHA3_512Hash wraps a SHA3-512 digest.
func SHA3_512Hash(base Base, digest [64]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Sha3_512), digest[:])
}

func SHA3_512Digest(h HashViewer) ([64]byte, error) {
	var d [64]byte
	err := digestInto(h, uint64(multicodec.Sha3_512), d[:])
	return d, err
}

// BLAKE2b256Hash wraps a BLAKE2b-256 digest.
func BLAKE2b256Hash(base Base, digest [32]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Blake2b256), digest[:])
}

func BLAKE2b256Digest(h HashViewer) ([32]byte, error) {
	var d [32]byte
	err := digestInto(h, uint64(multicodec.Blake2b256), d[:])
	return d, err
}

// BLAKE2b512Hash wraps a BLAKE2b-512 digest.
func BLAKE2b512Hash(base Base, digest [64]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Blake2b512), digest[:])
}

func BLAKE2b512Digest(h HashViewer) ([64]byte, error) {
	var d [64]byte
	err := digestInto(h, uint64(multicodec.Blake2b512), d[:])
	return d, err
}

// BLAKE3Hash wraps a BLAKE3 (default 32-byte output) digest.
func BLAKE3Hash(base Base, digest [32]byte) (MBHash, error) {
	return EncodeHash(base, uint64(multicodec.Blake3), digest[:])
}

func BLAKE3Digest(h HashViewer) ([32]byte, error) {
	var d [32]byte
	err := digestInto(h, uint64(multicodec.Blake3), d[:])
	return d, err
}

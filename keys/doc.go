// Package keys generates keys as mbx values and renders them as did:key
// identifiers.
//
// API stability:
//
// Stable (SemVer-protected):
//   - Pure, deterministic primitives: DeriveSeed, FromSeed, DIDKey and
//     ParseDIDKey.
//
// Experimental:
//   - Generate with caller-supplied randomness. The bytes consumed from the
//     reader per key type may change between versions.
package keys

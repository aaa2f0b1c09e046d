// Package mbx implements typed multiformat strings: multibase text carrying
// a varint codec tag and a payload, restricted to one codec category.
//
// Every value exists in two forms. MBXStr[C] and MBHashStr are borrowed views
// over caller-owned text; constructing one runs the full validation and the
// view never copies the text. MBX[C] and MBHash own their text and are built
// either by encoding raw parts or by calling Own on a view. Both forms are
// immutable and expose the same read-only API through View.
//
// The category marker C makes public-key, private-key, signature and
// symmetric-key strings distinct types that share one implementation:
//
//	pub, err := mbx.ParsePubKeyStr("z6MkiTBz1ymuepAQ4HEHYSF1H8quG5GLVVQR3djdX3mDooWp")
//	key, err := mbx.Ed25519PublicKey(pub)
//
// Private and symmetric keys render as "<REDACTED ...>" through fmt and
// log/slog. Reveal returns the full text; MarshalText and JSON always carry it.
//
// API stability:
//
// Stable:
//   - MBXStr/MBX, MBHashStr/MBHash, Parse*, Encode*, Decoded and the Error taxonomy.
//
// Experimental:
//   - HashFunction/Hasher and KeyType helpers; the set of supported algorithms may grow.
package mbx

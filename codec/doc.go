// Package codec classifies multicodec tags and frames payloads with a
// varint codec prefix.
//
// The tables in this package are read-only data mirrored from the shared
// multicodec registry. Adding a registry entry is a table update, never a
// change to the classification logic.
package codec

// Command mbx_vector_gen regenerates the hash and key vectors under
// testdata/vectors. did_key.txt is collected from published did:key test
// suites and is not produced here.
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"xdao.co/mbx/keys"
	"xdao.co/mbx/mbx"
)

var hashInputs = [][]byte{nil, []byte("abc"), []byte("multiformat")}

var keyVectors = []struct {
	kt     mbx.KeyType
	scalar string
}{
	// RFC 8032 section 7.1, test 1.
	{mbx.Ed25519, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"},
	{mbx.Secp256k1, "0000000000000000000000000000000000000000000000000000000000000001"},
	{mbx.P256, "0000000000000000000000000000000000000000000000000000000000000001"},
}

func main() {
	out := flag.String("out", filepath.Join("testdata", "vectors"), "Output directory")
	flag.Parse()

	mh, err := multihashVectors()
	if err != nil {
		fail(err)
	}
	kv, err := keyVectorFile()
	if err != nil {
		fail(err)
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		fail(err)
	}
	for _, f := range []struct {
		name string
		data []byte
	}{{"multihash.txt", mh}, {"keys.txt", kv}} {
		path := filepath.Join(*out, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			fail(err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// multihashVectors lists every hash function over every input, with BLAKE3
// last.
func multihashVectors() ([]byte, error) {
	var fns []mbx.HashFunction
	for _, fn := range mbx.HashFunctions() {
		if fn != mbx.BLAKE3 {
			fns = append(fns, fn)
		}
	}
	fns = append(fns, mbx.BLAKE3)

	var buf bytes.Buffer
	buf.WriteString("# function input-hex mbhash(base58btc) mbhash(base32lower)\n")
	for _, fn := range fns {
		for _, in := range hashInputs {
			b58, err := fn.Sum(mbx.Base58BTC, in)
			if err != nil {
				return nil, err
			}
			b32, err := fn.Sum(mbx.Base32Lower, in)
			if err != nil {
				return nil, err
			}
			inHex := hex.EncodeToString(in)
			if inHex == "" {
				inHex = "-"
			}
			fmt.Fprintf(&buf, "%s %s %s %s\n", fn, inHex, b58, b32)
		}
	}
	return buf.Bytes(), nil
}

func keyVectorFile() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# type privkey(base58btc) pubkey(base58btc) did\n")
	for _, v := range keyVectors {
		scalar, err := hex.DecodeString(v.scalar)
		if err != nil {
			return nil, err
		}
		priv, err := mbx.PrivKeyFromSignerBytes(mbx.Base58BTC, mbx.SignerBytes{KeyType: v.kt, Bytes: scalar})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.kt, err)
		}
		pub, err := mbx.DerivePubKey(priv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.kt, err)
		}
		did, err := keys.DIDKey(pub)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%s %s %s %s\n", v.kt, priv.Reveal(), pub.Reveal(), did)
	}
	return buf.Bytes(), nil
}

package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"strings"

	"xdao.co/mbx/keys"
	"xdao.co/mbx/mbx"
)

func keyTypeNames() []string {
	kts := mbx.KeyTypes()
	out := make([]string, len(kts))
	for i, kt := range kts {
		out[i] = kt.String()
	}
	return out
}

func baseNames() []string { return mbx.BaseNames() }

func cmdKeygen(e *env, args []string) int {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var typeName string
	var baseName string
	var seedHex string
	var label string
	var printPub bool
	fs.StringVar(&typeName, "type", "", "Key type")
	fs.StringVar(&baseName, "base", e.cfg.KeyBase, "Base of the printed key")
	fs.StringVar(&seedHex, "seed-hex", "", "Derive the key from this seed (at least 32 bytes of hex) instead of random bytes")
	fs.StringVar(&label, "label", "", "With --seed-hex, first derive a label-specific seed")
	fs.BoolVar(&printPub, "print-pub-key", true, "Print the public key and did:key to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if typeName == "" || fs.NArg() != 0 {
		fmt.Fprintln(e.errOut, "usage: mbx keygen --type <key-type> [--base <base>] [--seed-hex <hex> [--label <label>]]")
		return 2
	}
	kt, err := mbx.ParseKeyType(typeName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --type: %v\n", err)
		return 2
	}
	base, err := mbx.ParseBase(baseName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --base: %v\n", err)
		return 2
	}
	if label != "" && seedHex == "" {
		fmt.Fprintln(e.errOut, "--label requires --seed-hex")
		return 2
	}

	var priv mbx.PrivKey
	var genErr error
	if seedHex != "" {
		seed, err := keys.ParseSeedHex(seedHex)
		if err != nil {
			fmt.Fprintf(e.errOut, "invalid --seed-hex: %v\n", err)
			return 2
		}
		if label != "" {
			if seed, err = keys.DeriveSeed(seed, label); err != nil {
				fmt.Fprintf(e.errOut, "invalid --label: %v\n", err)
				return 2
			}
		}
		priv, genErr = keys.FromSeed(kt, seed, base)
	} else {
		priv, genErr = keys.Generate(kt, rand.Reader, base)
	}
	if genErr != nil {
		fmt.Fprintf(e.errOut, "keygen: %v\n", genErr)
		return 1
	}
	e.logger.Debug("generated key", "type", kt, "key", priv)

	if printPub {
		pub, err := mbx.DerivePubKey(priv)
		if err != nil {
			fmt.Fprintf(e.errOut, "derive public key: %v\n", err)
			return 1
		}
		did, err := keys.DIDKey(pub)
		if err != nil {
			fmt.Fprintf(e.errOut, "did:key: %v\n", err)
			return 1
		}
		fmt.Fprintf(e.errOut, "Public-Key: %s\n", pub)
		fmt.Fprintf(e.errOut, "DID: %s\n", did)
	}
	_, _ = fmt.Fprintln(e.out, priv.Reveal())
	return 0
}

func cmdPubKey(e *env, args []string) int {
	fs := flag.NewFlagSet("pubkey", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var asDID bool
	fs.BoolVar(&asDID, "did", false, "Print the public key as a did:key identifier")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(e.errOut, "usage: mbx pubkey [--did] < private-key")
		return 2
	}
	input, err := e.readInput(fs)
	if err != nil {
		fmt.Fprintf(e.errOut, "%v\n", err)
		return 1
	}
	priv, err := mbx.ParsePrivKeyStr(input)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid private key: %v\n", err)
		return 1
	}
	pub, err := mbx.DerivePubKey(priv)
	if err != nil {
		fmt.Fprintf(e.errOut, "derive public key: %v\n", err)
		return 1
	}
	if asDID {
		did, err := keys.DIDKey(pub)
		if err != nil {
			fmt.Fprintf(e.errOut, "did:key: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(e.out, did)
		return 0
	}
	_, _ = fmt.Fprintln(e.out, pub)
	return 0
}

// cmdDID converts in both directions: a multikey becomes a did:key and a
// did:key becomes its base58btc multikey.
func cmdDID(e *env, args []string) int {
	fs := flag.NewFlagSet("did", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	input, err := e.readInput(fs)
	if err != nil {
		fmt.Fprintf(e.errOut, "%v\n", err)
		return 2
	}
	if strings.HasPrefix(input, keys.DIDKeyPrefix) {
		pub, err := keys.ParseDIDKey(input)
		if err != nil {
			fmt.Fprintf(e.errOut, "invalid did:key: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(e.out, pub)
		return 0
	}
	pub, err := mbx.ParsePubKeyStr(input)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid public key: %v\n", err)
		return 1
	}
	did, err := keys.DIDKey(pub)
	if err != nil {
		fmt.Fprintf(e.errOut, "did:key: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(e.out, did)
	return 0
}

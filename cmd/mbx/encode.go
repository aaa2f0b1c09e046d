package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"strings"

	"xdao.co/mbx/cidutil"
	"xdao.co/mbx/codec"
	"xdao.co/mbx/mbx"
)

// cmdCID converts between an MBHash and the raw-codec CIDv1 that carries
// the same multihash.
func cmdCID(e *env, args []string) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var baseName string
	fs.StringVar(&baseName, "base", e.cfg.HashBase, "Base of the printed MBHash when converting a CID")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	base, err := mbx.ParseBase(baseName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --base: %v\n", err)
		return 2
	}
	input, err := e.readInput(fs)
	if err != nil {
		fmt.Fprintf(e.errOut, "%v\n", err)
		return 2
	}

	if h, err := mbx.ParseMBHashStr(input); err == nil {
		id, err := cidutil.FromMBHash(h)
		if err != nil {
			fmt.Fprintf(e.errOut, "cid: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintln(e.out, id)
		return 0
	}
	id, err := cidutil.Parse(input)
	if err != nil {
		fmt.Fprintln(e.errOut, "Unrecognized input")
		return 1
	}
	h, err := cidutil.ToMBHash(base, id)
	if err != nil {
		fmt.Fprintf(e.errOut, "cid: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(e.out, h)
	return 0
}

// cmdEncode builds a value from a codec and a hex payload read from stdin.
// The category defaults to the codec's own; every value is checked the way
// parsing checks it.
func cmdEncode(e *env, args []string) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var codecName string
	var categoryName string
	var baseName string
	fs.StringVar(&codecName, "codec", "", "Codec name or numeric code (e.g. ed25519-pub or 0xed)")
	fs.StringVar(&categoryName, "category", "", "Expected category: Multihash, PubKey, PrivKey, Signature or SymmetricKey")
	fs.StringVar(&baseName, "base", e.cfg.KeyBase, "Base of the printed value")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if codecName == "" || fs.NArg() != 0 {
		fmt.Fprintln(e.errOut, "usage: mbx encode --codec <name|0xhex> [--category <category>] [--base <base>] < payload-hex")
		return 2
	}
	code, err := codec.Lookup(codecName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --codec: %v\n", err)
		return 2
	}
	category := codec.CategoryOf(code)
	if categoryName != "" {
		if category, err = codec.ParseCategory(categoryName); err != nil {
			fmt.Fprintf(e.errOut, "invalid --category: %v\n", err)
			return 2
		}
	}
	base, err := mbx.ParseBase(baseName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --base: %v\n", err)
		return 2
	}
	raw, err := io.ReadAll(e.in)
	if err != nil {
		fmt.Fprintf(e.errOut, "read stdin: %v\n", err)
		return 1
	}
	payload, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x"))
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid hex payload: %v\n", err)
		return 1
	}

	text, err := encodeAs(category, base, code, payload)
	if err != nil {
		fmt.Fprintf(e.errOut, "encode: %v\n", err)
		return 1
	}
	e.logger.Debug("encoded value", "codec", codec.DisplayName(code), "category", category)
	_, _ = fmt.Fprintln(e.out, text)
	return 0
}

func encodeAs(category codec.Category, base mbx.Base, code uint64, payload []byte) (string, error) {
	switch category {
	case codec.Multihash:
		h, err := mbx.EncodeHash(base, code, payload)
		if err != nil {
			return "", err
		}
		// EncodeHash trusts the code; parsing applies the category check.
		if _, err := mbx.ParseMBHashStr(h.String()); err != nil {
			return "", err
		}
		return h.String(), nil
	case codec.PubKey:
		return revealed[mbx.PubKeyCategory](mbx.EncodeChecked[mbx.PubKeyCategory](base, code, payload))
	case codec.PrivKey:
		return revealed[mbx.PrivKeyCategory](mbx.EncodeChecked[mbx.PrivKeyCategory](base, code, payload))
	case codec.Signature:
		return revealed[mbx.SignatureCategory](mbx.EncodeChecked[mbx.SignatureCategory](base, code, payload))
	case codec.SymmetricKey:
		return revealed[mbx.SymmetricKeyCategory](mbx.EncodeChecked[mbx.SymmetricKeyCategory](base, code, payload))
	}
	return "", fmt.Errorf("codec %s (%s) is in no supported category", codec.DisplayName(code), codec.Hex(code))
}

func revealed[C mbx.Marker](v mbx.MBX[C], err error) (string, error) {
	if err != nil {
		return "", err
	}
	return v.Reveal(), nil
}

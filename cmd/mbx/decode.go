package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"xdao.co/mbx/internal/wire"
	"xdao.co/mbx/mbx"
)

// decodeReport is the structured form of a decode result.
type decodeReport struct {
	Kind     string   `json:"kind"`
	Base     mbx.Base `json:"base"`
	Codec    string   `json:"codec"`
	Code     uint64   `json:"code"`
	Size     int      `json:"size"`
	Shown    mbx.Base `json:"shown_in"`
	Bytes    string   `json:"bytes"`
	Redacted bool     `json:"redacted,omitempty"`
}

const redactedBytes = "<REDACTED>"

// text names bases by title (Base58Btc); structured reports use flag names.
func (r decodeReport) text() string {
	if r.Kind == "MBHash" {
		return fmt.Sprintf("MBHash in %s with codec %s (0x%02x); %d digest bytes shown here in %s: %s",
			r.Base.Title(), r.Codec, r.Code, r.Size, r.Shown.Title(), r.Bytes)
	}
	return fmt.Sprintf("%s in %s with codec %s (0x%02x); bytes shown here in %s: %s",
		r.Kind, r.Base.Title(), r.Codec, r.Code, r.Shown.Title(), r.Bytes)
}

func cmdDecode(e *env, args []string) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var baseName string
	var showPriv bool
	var noNewline bool
	var output string
	fs.StringVar(&baseName, "base", e.cfg.DecodeBase, "Base used to show the decoded bytes")
	fs.BoolVar(&showPriv, "show-priv-key-bytes", false, "Show private and symmetric key bytes instead of redacting them")
	fs.BoolVar(&noNewline, "no-newline", false, "Do not print a trailing newline")
	fs.StringVar(&output, "output", e.cfg.Output, "Report format: text, json, cbor or diag")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	base, err := mbx.ParseBase(baseName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --base: %v\n", err)
		return 2
	}
	switch output {
	case "text", "json", "cbor", "diag":
	default:
		fmt.Fprintf(e.errOut, "invalid --output %q (want text, json, cbor or diag)\n", output)
		return 2
	}
	input, err := e.readInput(fs)
	if err != nil {
		fmt.Fprintf(e.errOut, "%v\n", err)
		return 2
	}

	report, err := decode(input, base, showPriv)
	if err != nil {
		e.logger.Debug("decode failed", "error", err)
		fmt.Fprintln(e.errOut, "Unrecognized input")
		return 1
	}
	e.logger.Debug("decoded value", "kind", report.Kind, "codec", report.Codec)

	switch output {
	case "json":
		b, err := json.Marshal(report)
		if err != nil {
			fmt.Fprintf(e.errOut, "json: %v\n", err)
			return 1
		}
		e.println(string(b), noNewline)
	case "cbor":
		if err := wire.NewEncoder(e.out).Encode(report); err != nil {
			fmt.Fprintf(e.errOut, "cbor: %v\n", err)
			return 1
		}
	case "diag":
		diag, err := diagnose(report)
		if err != nil {
			fmt.Fprintf(e.errOut, "cbor: %v\n", err)
			return 1
		}
		e.println(diag, noNewline)
	default:
		e.println(report.text(), noNewline)
	}
	return 0
}

// diagnose renders the report in CBOR diagnostic notation.
func diagnose(r decodeReport) (string, error) {
	b, err := wire.Marshal(r)
	if err != nil {
		return "", err
	}
	return wire.Diagnose(b)
}

// decode tries each kind in turn: MBHash, public key, private key,
// signature, symmetric key.
func decode(input string, shown mbx.Base, showSecret bool) (decodeReport, error) {
	if h, err := mbx.ParseMBHashStr(input); err == nil {
		mh, err := h.Decoded()
		if err != nil {
			return decodeReport{}, err
		}
		return bytesReport(decodeReport{
			Kind:  "MBHash",
			Base:  h.Base(),
			Codec: mh.Name(),
			Code:  mh.Code,
			Size:  len(mh.Digest),
		}, shown, mh.Digest, false)
	}

	var firstErr error
	for _, try := range []struct {
		kind   string
		parse  func(string) (mbx.Decoded, error)
		secret bool
	}{
		{"MBPubKey", decodedOf(mbx.ParsePubKeyStr), false},
		{"MBPrivKey", decodedOf(mbx.ParsePrivKeyStr), true},
		{"MBSignature", decodedOf(mbx.ParseSignatureStr), false},
		{"MBSymmetricKey", decodedOf(mbx.ParseSymmetricKeyStr), true},
	} {
		d, err := try.parse(input)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return bytesReport(decodeReport{
			Kind:  try.kind,
			Base:  d.Base,
			Codec: d.CodecName(),
			Code:  d.Codec,
			Size:  len(d.Data),
		}, shown, d.Data, try.secret && !showSecret)
	}
	return decodeReport{}, firstErr
}

func decodedOf[C mbx.Marker](parse func(string) (mbx.MBXStr[C], error)) func(string) (mbx.Decoded, error) {
	return func(s string) (mbx.Decoded, error) {
		v, err := parse(s)
		if err != nil {
			return mbx.Decoded{}, err
		}
		return v.Decoded()
	}
}

func bytesReport(r decodeReport, shown mbx.Base, data []byte, redact bool) (decodeReport, error) {
	r.Shown = shown
	if redact {
		r.Bytes = redactedBytes
		r.Redacted = true
		return r, nil
	}
	s, err := shown.Encode(data)
	if err != nil {
		return decodeReport{}, err
	}
	r.Bytes = s
	return r, nil
}

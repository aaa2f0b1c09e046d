// Command mbx decodes, validates and produces multiformat values: hashes,
// public and private keys, signatures and symmetric keys.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"xdao.co/mbx/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// env carries what every command needs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) int {
	global := flag.NewFlagSet("mbx", flag.ContinueOnError)
	global.SetOutput(errOut)
	var configPath string
	var verbose bool
	global.StringVar(&configPath, "config", "", "YAML config file (default: $"+config.EnvVar+")")
	global.BoolVar(&verbose, "verbose", false, "Log debug output to stderr")
	global.Usage = func() { printUsage(errOut) }
	if err := global.Parse(args); err != nil {
		return 2
	}
	args = global.Args()
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(errOut, "%v\n", err)
		return 2
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(errOut, "config: %v\n", err)
		return 2
	}
	if verbose {
		level = slog.LevelDebug
	}
	e := &env{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})),
		in:     in,
		out:    out,
		errOut: errOut,
	}
	e.logger.Debug("configuration loaded", "path", configPath, "output", cfg.Output)

	switch args[0] {
	case "decode":
		return cmdDecode(e, args[1:])
	case "hash":
		return cmdHash(e, args[1:])
	case "verify":
		return cmdVerify(e, args[1:])
	case "get":
		return cmdGet(e, args[1:])
	case "keygen":
		return cmdKeygen(e, args[1:])
	case "pubkey":
		return cmdPubKey(e, args[1:])
	case "did":
		return cmdDID(e, args[1:])
	case "cid":
		return cmdCID(e, args[1:])
	case "encode":
		return cmdEncode(e, args[1:])
	case "bundle":
		return cmdBundle(e, args[1:])
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "mbx: decode, validate and produce multiformat values")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  mbx [--config <file>] [--verbose] <command> ...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  mbx decode [--base <base>] [--show-priv-key-bytes] [--no-newline] [--output text|json|cbor|diag]")
	fmt.Fprintln(w, "  mbx hash [--base <base>] [-f <hash-function>] [--no-newline] [--store <dir> ...]")
	fmt.Fprintln(w, "  mbx verify --hash <mbhash> [<file>]")
	fmt.Fprintln(w, "  mbx get --store <dir> [--store <dir> ...] <mbhash>")
	fmt.Fprintln(w, "  mbx keygen --type <key-type> [--base <base>] [--seed-hex <hex> [--label <label>]]")
	fmt.Fprintln(w, "  mbx pubkey [--did]")
	fmt.Fprintln(w, "  mbx did [<multikey>|<did:key>]")
	fmt.Fprintln(w, "  mbx cid [--base <base>] [<mbhash>|<cid>]")
	fmt.Fprintln(w, "  mbx encode --codec <name|0xhex> [--category <category>] [--base <base>]")
	fmt.Fprintln(w, "  mbx bundle export --store <dir> [--label name=<mbhash> ...] <mbhash> ...")
	fmt.Fprintln(w, "  mbx bundle import --store <dir> [-f <hash-function>] [--ignore-unknown]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - decode, pubkey, did, cid and encode read their input from stdin when no argument is given")
	fmt.Fprintln(w, "  - private and symmetric key bytes are redacted unless --show-priv-key-bytes is given")
	fmt.Fprintf(w, "  - bases: %s\n", strings.Join(baseNames(), ", "))
	fmt.Fprintf(w, "  - hash functions: %s\n", strings.Join(hashFunctionNames(), ", "))
	fmt.Fprintf(w, "  - key types: %s\n", strings.Join(keyTypeNames(), ", "))
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// readInput returns the single positional argument, or stdin when there is
// none. Surrounding whitespace is trimmed.
func (e *env) readInput(fs *flag.FlagSet) (string, error) {
	switch fs.NArg() {
	case 0:
		b, err := io.ReadAll(e.in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	case 1:
		return strings.TrimSpace(fs.Arg(0)), nil
	default:
		return "", fmt.Errorf("expected at most one argument, got %d", fs.NArg())
	}
}

func (e *env) println(s string, noNewline bool) {
	_, _ = io.WriteString(e.out, s)
	if !noNewline {
		_, _ = io.WriteString(e.out, "\n")
	}
}

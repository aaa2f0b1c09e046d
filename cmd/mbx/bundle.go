package main

import (
	"flag"
	"fmt"
	"strings"

	"xdao.co/mbx/mbx"
	"xdao.co/mbx/storage"
	"xdao.co/mbx/storage/bundle"
	"xdao.co/mbx/storage/localfs"
)

func cmdBundle(e *env, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(e.errOut, "usage: mbx bundle <subcommand> ...")
		fmt.Fprintln(e.errOut, "subcommands: export, import")
		return 2
	}
	switch args[0] {
	case "export":
		return cmdBundleExport(e, args[1:])
	case "import":
		return cmdBundleImport(e, args[1:])
	default:
		fmt.Fprintf(e.errOut, "unknown bundle subcommand: %s\n", args[0])
		return 2
	}
}

func cmdBundleExport(e *env, args []string) int {
	fs := flag.NewFlagSet("bundle export", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var store string
	var index bool
	var labels stringList
	fs.StringVar(&store, "store", e.cfg.StoreDir, "Content store directory")
	fs.BoolVar(&index, "index", true, "Include index.json")
	fs.Var(&labels, "label", "Index label as name=<mbhash> (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if store == "" || fs.NArg() == 0 {
		fmt.Fprintln(e.errOut, "usage: mbx bundle export --store <dir> [--label name=<mbhash> ...] <mbhash> ...")
		return 2
	}

	hashes := make([]mbx.HashViewer, 0, fs.NArg())
	for _, arg := range fs.Args() {
		h, err := mbx.ParseMBHashStr(arg)
		if err != nil {
			fmt.Fprintf(e.errOut, "invalid hash %q: %v\n", arg, err)
			return 2
		}
		hashes = append(hashes, h)
	}
	opts := bundle.ExportOptions{IncludeIndex: index}
	for _, kv := range labels {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			fmt.Fprintf(e.errOut, "invalid --label %q (want name=<mbhash>)\n", kv)
			return 2
		}
		var h mbx.MBHash
		if err := h.UnmarshalText([]byte(value)); err != nil {
			fmt.Fprintf(e.errOut, "invalid --label %q: %v\n", kv, err)
			return 2
		}
		if opts.Labels == nil {
			opts.Labels = map[string]mbx.MBHash{}
		}
		opts.Labels[name] = h
	}

	cas, err := localfs.New(store, localfs.Options{Logger: e.logger})
	if err != nil {
		fmt.Fprintf(e.errOut, "store: %v\n", err)
		return 1
	}
	if err := bundle.Export(e.out, cas, hashes, opts); err != nil {
		if storage.IsNotFound(err) {
			fmt.Fprintln(e.errOut, "export: object not found in store")
			return 1
		}
		fmt.Fprintf(e.errOut, "export: %v\n", err)
		return 1
	}
	return 0
}

func cmdBundleImport(e *env, args []string) int {
	fs := flag.NewFlagSet("bundle import", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var store string
	var fnName string
	var ignoreUnknown bool
	fs.StringVar(&store, "store", e.cfg.StoreDir, "Content store directory")
	fs.StringVar(&fnName, "f", "sha-256", "Hash function of the objects in the bundle")
	fs.BoolVar(&ignoreUnknown, "ignore-unknown", false, "Skip entries that are not objects")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if store == "" || fs.NArg() != 0 {
		fmt.Fprintln(e.errOut, "usage: mbx bundle import --store <dir> [-f <hash-function>] [--ignore-unknown] < bundle.tar")
		return 2
	}
	fn, err := mbx.ParseHashFunction(fnName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid hash function: %v\n", err)
		return 2
	}

	cas, err := localfs.New(store, localfs.Options{Hash: fn, Logger: e.logger})
	if err != nil {
		fmt.Fprintf(e.errOut, "store: %v\n", err)
		return 1
	}
	imported, err := bundle.ImportWithOptions(e.in, cas, bundle.ImportOptions{IgnoreUnknown: ignoreUnknown})
	if err != nil {
		fmt.Fprintf(e.errOut, "import: %v\n", err)
		return 1
	}
	for _, h := range imported {
		_, _ = fmt.Fprintln(e.out, h)
	}
	return 0
}

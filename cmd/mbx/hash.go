package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"xdao.co/mbx/mbx"
	"xdao.co/mbx/storage"
	"xdao.co/mbx/storage/localfs"
)

// hashChunkSize is the read size used when streaming input into a hasher.
const hashChunkSize = 1024

func hashFunctionNames() []string {
	fns := mbx.HashFunctions()
	out := make([]string, len(fns))
	for i, fn := range fns {
		out[i] = fn.String()
	}
	return out
}

func cmdHash(e *env, args []string) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var baseName string
	var fnName string
	var noNewline bool
	var stores stringList
	fs.StringVar(&baseName, "base", e.cfg.HashBase, "Base of the printed hash")
	fs.StringVar(&fnName, "f", e.cfg.HashFunction, "Hash function")
	fs.StringVar(&fnName, "hash-function", e.cfg.HashFunction, "Hash function")
	fs.BoolVar(&noNewline, "no-newline", false, "Do not print a trailing newline")
	fs.Var(&stores, "store", "Also store the input in this content store directory (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(e.errOut, "usage: mbx hash [--base <base>] [-f <hash-function>] [--no-newline] [--store <dir> ...]")
		return 2
	}
	base, err := mbx.ParseBase(baseName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --base: %v\n", err)
		return 2
	}
	fn, err := mbx.ParseHashFunction(fnName)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid hash function: %v\n", err)
		return 2
	}
	if len(stores) == 0 && e.cfg.StoreDir != "" {
		stores = stringList{e.cfg.StoreDir}
	}

	in := e.in
	var kept bytes.Buffer
	if len(stores) > 0 {
		in = io.TeeReader(in, &kept)
	}
	hasher := fn.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			_, _ = hasher.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(e.errOut, "read stdin: %v\n", err)
			return 1
		}
	}
	h, err := hasher.Sum(base)
	if err != nil {
		fmt.Fprintf(e.errOut, "hash: %v\n", err)
		return 1
	}

	if len(stores) > 0 {
		cas, err := e.openStores(stores, fn, base)
		if err != nil {
			fmt.Fprintf(e.errOut, "store: %v\n", err)
			return 1
		}
		stored, err := cas.Put(kept.Bytes())
		if err != nil {
			fmt.Fprintf(e.errOut, "store: %v\n", err)
			return 1
		}
		if stored != h {
			fmt.Fprintf(e.errOut, "store: stored hash %s does not match %s\n", stored, h)
			return 1
		}
		e.logger.Info("stored input", "hash", h, "stores", len(stores))
	}

	e.println(h.String(), noNewline)
	return 0
}

// openStores replicates writes across every directory and reads them in
// order.
func (e *env) openStores(dirs []string, fn mbx.HashFunction, base mbx.Base) (storage.ReplicatingCAS, error) {
	var r storage.ReplicatingCAS
	for _, dir := range dirs {
		cas, err := localfs.New(dir, localfs.Options{Hash: fn, Base: base, Logger: e.logger.With("store", dir)})
		if err != nil {
			return storage.ReplicatingCAS{}, err
		}
		r.Backends = append(r.Backends, storage.NamedCAS{Name: dir, CAS: cas})
	}
	return r, nil
}

func cmdVerify(e *env, args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var hashText string
	fs.StringVar(&hashText, "hash", "", "MBHash the data must match")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if hashText == "" || fs.NArg() > 1 {
		fmt.Fprintln(e.errOut, "usage: mbx verify --hash <mbhash> [<file>]")
		return 2
	}
	h, err := mbx.ParseMBHashStr(hashText)
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid --hash: %v\n", err)
		return 2
	}

	var data []byte
	if fs.NArg() == 1 {
		data, err = os.ReadFile(fs.Arg(0))
	} else {
		data, err = io.ReadAll(e.in)
	}
	if err != nil {
		fmt.Fprintf(e.errOut, "read: %v\n", err)
		return 1
	}
	if err := mbx.Verify(h, data); err != nil {
		fmt.Fprintf(e.errOut, "verify: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(e.out, "OK")
	return 0
}

func cmdGet(e *env, args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	var stores stringList
	fs.Var(&stores, "store", "Content store directory, searched in order (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if len(stores) == 0 && e.cfg.StoreDir != "" {
		stores = stringList{e.cfg.StoreDir}
	}
	if len(stores) == 0 || fs.NArg() != 1 {
		fmt.Fprintln(e.errOut, "usage: mbx get --store <dir> [--store <dir> ...] <mbhash>")
		return 2
	}
	h, err := mbx.ParseMBHashStr(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(e.errOut, "invalid hash: %v\n", err)
		return 2
	}

	var m storage.MultiCAS
	for _, dir := range stores {
		cas, err := localfs.New(dir, localfs.Options{Logger: e.logger.With("store", dir)})
		if err != nil {
			fmt.Fprintf(e.errOut, "store: %v\n", err)
			return 1
		}
		m.Adapters = append(m.Adapters, cas)
	}
	data, err := m.Get(h)
	if err != nil {
		if storage.IsNotFound(err) {
			fmt.Fprintf(e.errOut, "not found: %s\n", h)
			return 1
		}
		fmt.Fprintf(e.errOut, "get: %v\n", err)
		return 1
	}
	_, _ = e.out.Write(data)
	return 0
}

// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Program ijson parses JSON files incrementally and prints the results.
//
// Usage:
//
//	ijson [flags] [file ...]
//
// With no files, or a file named "-", ijson reads standard input. Each input
// is parsed in chunks and its value is printed as compact JSON on one line.
//
// With -stream N, values nested at most N levels inside the top-level value
// are printed as they complete, one per line, as "path<TAB>json", and are
// then discarded rather than retained in memory.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/creachadair/ijson"
	"github.com/creachadair/ijson/ast"
	"github.com/panjf2000/ants/v2"
	"github.com/tailscale/hujson"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type config struct {
	chunk   int
	stream  int
	jwcc    bool
	workers int
	verbose bool
	log     *slog.Logger
}

// run executes the command with the given arguments, and returns its exit
// status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ijson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg config
	fs.IntVar(&cfg.chunk, "chunk", ijson.DefaultChunkSize, "Read input in chunks of this size")
	fs.IntVar(&cfg.stream, "stream", -1, "Print and discard values at most this deep (-1 to disable)")
	fs.BoolVar(&cfg.jwcc, "jwcc", false, "Accept JSON with comments and trailing commas")
	fs.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "Number of files to parse concurrently")
	fs.BoolVar(&cfg.verbose, "v", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ijson [flags] [file ...]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	cfg.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	results := make([]result, len(files))

	pool, err := ants.NewPool(max(cfg.workers, 1))
	if err != nil {
		cfg.log.Error("creating worker pool", "error", err)
		return 1
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, name := range files {
		if name == "-" {
			// Standard input is read on this goroutine, as it is not a file
			// the workers can open.
			results[i] = cfg.parse(name, stdin)
			continue
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = cfg.parseFile(name)
		}); err != nil {
			wg.Done()
			results[i] = result{name: name, err: err}
		}
	}
	wg.Wait()

	status := 0
	for _, r := range results {
		if r.err != nil {
			cfg.log.Error("parse failed", "file", r.name, "error", r.err)
			status = 1
			continue
		}
		if _, err := stdout.Write(r.out); err != nil {
			cfg.log.Error("write failed", "file", r.name, "error", err)
			status = 1
		}
	}
	return status
}

// A result is the output from parsing one input.
type result struct {
	name string
	out  []byte
	err  error
}

func (c *config) parseFile(name string) result {
	f, err := os.Open(name)
	if err != nil {
		return result{name: name, err: err}
	}
	defer f.Close()
	return c.parse(name, f)
}

func (c *config) parse(name string, r io.Reader) (res result) {
	res.name = name
	log := c.log.With("file", name)

	opts := []ijson.Option{
		ijson.WithChunkSize(c.chunk),
		ijson.WithLogger(log),
	}
	if c.stream >= 0 {
		opts = append(opts,
			ijson.MaxCallbackDepth(c.stream),
			ijson.WithCallback(func(v ast.Value, path []any) (ast.Value, bool) {
				res.out = fmt.Appendf(res.out, "%s\t%s\n", ast.ToValue(path).JSON(), v.JSON())
				return nil, false
			}),
		)
	}

	if c.jwcc {
		data, err := io.ReadAll(r)
		if err != nil {
			res.err = err
			return
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			res.err = fmt.Errorf("standardize: %w", err)
			return
		}
		r = bytes.NewReader(std)
	}

	p := ijson.NewParser(opts...)
	nr, err := p.ReadFrom(r)
	if err != nil {
		res.err = err
		return
	}
	v, err := p.Result()
	if err != nil {
		res.err = err
		return
	}
	st := p.Stats()
	log.Debug("parsed", "bytes", nr, "lines", p.Line(),
		"interned", st.Hits, "calls", st.Calls())
	if c.stream < 0 {
		res.out = append(res.out, v.JSON()...)
		res.out = append(res.out, '\n')
	}
	return
}

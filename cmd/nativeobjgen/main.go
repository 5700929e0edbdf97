// Command nativeobjgen generates vtable bindings from a contract manifest.
//
//	nativeobjgen -manifest contracts.yaml -out .
//	nativeobjgen -manifest contracts.yaml -contract Calculator -out .
//	nativeobjgen -manifest contracts.yaml -list
//	nativeobjgen -manifest contracts.yaml -i
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/nativeobjects/binding"
	"github.com/wippyai/nativeobjects/codegen"
	"github.com/wippyai/nativeobjects/contract"
)

type config struct {
	manifest     string
	out          string
	namespace    string
	contractName string
	list         bool
	lenient      bool
}

func main() {
	var (
		cfg         config
		interactive bool
		verbose     bool
	)
	flag.StringVar(&cfg.manifest, "manifest", "", "Path to the contract manifest (YAML)")
	flag.StringVar(&cfg.out, "out", ".", "Output directory")
	flag.StringVar(&cfg.namespace, "namespace", "", "Go package name (overrides the manifest)")
	flag.StringVar(&cfg.contractName, "contract", "", "Generate only this contract")
	flag.BoolVar(&cfg.list, "list", false, "List contracts and their vtable slots and exit")
	flag.BoolVar(&cfg.lenient, "lenient", false, "Skip non-method members instead of failing")
	flag.BoolVar(&interactive, "i", false, "Interactive inspector")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if cfg.manifest == "" {
		fmt.Fprintln(os.Stderr, "Usage: nativeobjgen -manifest <contracts.yaml> [-out dir] [-namespace pkg] [-contract Name] [-lenient] [-v]")
		fmt.Fprintln(os.Stderr, "       nativeobjgen -manifest <contracts.yaml> -list")
		fmt.Fprintln(os.Stderr, "       nativeobjgen -manifest <contracts.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	log, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	contract.SetLogger(log.Named("contract"))
	codegen.SetLogger(log.Named("codegen"))
	binding.SetLogger(log.Named("binding"))

	if interactive {
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func loadRegistry(cfg config) (*contract.Registry, binding.Options, error) {
	m, err := contract.LoadManifest(cfg.manifest)
	if err != nil {
		return nil, binding.Options{}, fmt.Errorf("load manifest: %w", err)
	}
	reg, err := m.Registry()
	if err != nil {
		return nil, binding.Options{}, fmt.Errorf("resolve contracts: %w", err)
	}

	opts := binding.Options{Namespace: m.Namespace, Lenient: cfg.lenient}
	if cfg.namespace != "" {
		opts.Namespace = cfg.namespace
	}
	return reg, opts, nil
}

func run(ctx context.Context, cfg config, stdout io.Writer) error {
	reg, opts, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	if cfg.list {
		return list(reg, opts, stdout)
	}

	var files []binding.File
	if cfg.contractName != "" {
		c, ok := reg.Lookup(cfg.contractName)
		if !ok {
			return fmt.Errorf("contract %q not in %s", cfg.contractName, cfg.manifest)
		}
		a, err := binding.Generate(c, opts)
		if err != nil {
			return fmt.Errorf("generate %s: %w", c.Name, err)
		}
		files = append(files, binding.File{Name: a.Filename(), Source: a.Source})
	} else {
		set, err := binding.GenerateAll(ctx, reg, opts)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		files = set.Files()
	}

	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(cfg.out, f.Name)
		if err := os.WriteFile(path, f.Source, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(stdout, "wrote %s\n", path)
	}
	return nil
}

func list(reg *contract.Registry, opts binding.Options, w io.Writer) error {
	fmt.Fprintf(w, "Package: %s\n", opts.Namespace)
	for _, c := range reg.Contracts() {
		flat, err := contract.Flatten(c, contract.FlattenOptions{SkipUnsupported: opts.Lenient})
		if err != nil {
			fmt.Fprintf(w, "\n%s: %v\n", c.Name, err)
			continue
		}
		fmt.Fprintf(w, "\n%s (%d slots)\n", c.Name, flat.Len())
		for _, s := range flat.Slots {
			owner := ""
			if s.Owner != c {
				owner = "  [" + s.Owner.Name + "]"
			}
			fmt.Fprintf(w, "  %2d  %s%s\n", s.Index, s.Method, owner)
		}
	}
	return nil
}

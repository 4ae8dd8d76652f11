// Command actgen generates an actor layer for one or more types in a Go
// source file: a message protocol, a dispatcher owning the instance and a
// concurrency-safe handle mirroring the type's methods.
//
// Typical use, from the package being generated for:
//
//	//go:generate actgen -source counter.go -type Counter -id
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/codewandler/actgen-go/core/config"
	"github.com/codewandler/actgen-go/core/gen"
	"github.com/codewandler/actgen-go/core/model"
	"github.com/codewandler/actgen-go/core/protocol"
	"github.com/codewandler/actgen-go/core/sf"
	"github.com/codewandler/actgen-go/internal/fingerprint"
)

// listFlag accepts repeated and comma-separated values.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*l = append(*l, s)
		}
	}
	return nil
}

type cliFlags struct {
	source   string
	types    listFlag
	output   string
	capacity int
	backend  string
	identity bool
	naming   string
	cfgPath  string
	verbose  bool

	methods   listFlag
	overrides listFlag
	wait      listFlag
	fnf       listFlag

	set map[string]bool // flag name -> explicitly set
}

func parseFlags(args []string) (*cliFlags, error) {
	cf := &cliFlags{set: map[string]bool{}}
	fs := flag.NewFlagSet("actgen", flag.ContinueOnError)

	fs.StringVar(&cf.source, "source", "", "Go source file containing the target type(s)")
	fs.Var(&cf.types, "type", "target type name (repeatable, or comma-separated)")
	fs.StringVar(&cf.output, "output", "", "output file; only valid with a single -type")
	fs.IntVar(&cf.capacity, "capacity", 0, "mailbox capacity, 0 means unbounded")
	fs.StringVar(&cf.backend, "backend", "", "dispatcher backend: task or thread")
	fs.BoolVar(&cf.identity, "id", false, "stamp handles with process-unique ordered ids")
	fs.StringVar(&cf.naming, "naming", "", "identifier template over {{.Type}}")
	fs.StringVar(&cf.cfgPath, "config", "", "YAML config file with per-type option blocks")
	fs.BoolVar(&cf.verbose, "v", false, "debug logging")
	fs.Var(&cf.methods, "methods", "restrict and order the generated methods")
	fs.Var(&cf.overrides, "override", "methods dispatched through a caller-supplied hook")
	fs.Var(&cf.wait, "wait", "unit methods forced to wait for completion")
	fs.Var(&cf.fnf, "fnf", "methods forced to fire-and-forget")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { cf.set[f.Name] = true })

	if cf.source == "" {
		return nil, errors.New("-source is required")
	}
	if len(cf.types) == 0 {
		return nil, errors.New("at least one -type is required")
	}
	if cf.output != "" && len(cf.types) > 1 {
		return nil, errors.New("-output is only valid with a single -type")
	}
	return cf, nil
}

// resolve merges the YAML block for typeName with the CLI flags. Flags win
// over file values, but only when explicitly set.
func (cf *cliFlags) resolve(file *config.File, typeName string) config.Config {
	c := file.For(typeName)
	c.Source = cf.source

	if cf.set["output"] {
		c.Output = cf.output
	}
	if cf.set["capacity"] {
		c.Capacity = cf.capacity
	}
	if cf.set["backend"] {
		c.Backend = config.Backend(cf.backend)
	}
	if cf.set["id"] {
		c.Identity = cf.identity
	}
	if cf.set["naming"] {
		c.Naming = cf.naming
	}
	if cf.set["methods"] {
		c.Methods = cf.methods
	}
	if cf.set["override"] {
		c.Overrides = cf.overrides
	}
	if cf.set["wait"] {
		c.Wait = cf.wait
	}
	if cf.set["fnf"] {
		c.FireAndForget = cf.fnf
	}
	c.Normalize()
	return c
}

// outputPath derives the artifact path when none is configured. A single
// type lands next to its source as <source>_actor.go; with several types
// each gets <type>_actor.go in the source directory.
func outputPath(c config.Config, multi bool) string {
	if c.Output != "" {
		return c.Output
	}
	base := strings.TrimSuffix(c.Source, ".go")
	if multi {
		return filepath.Join(filepath.Dir(c.Source), strings.ToLower(c.Type)+"_actor.go")
	}
	return base + "_actor.go"
}

func main() {
	cf, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "actgen:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cf.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, cf); err != nil {
		log.Error("generation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger, cf *cliFlags) error {
	var file *config.File
	if cf.cfgPath != "" {
		f, err := config.Load(cf.cfgPath)
		if err != nil {
			return err
		}
		file = f
	}

	// one read per source file no matter how many types it serves
	sources := sf.NewCache[[]byte]()
	readSource := func(path string) ([]byte, error) {
		src, err := sources.Do(path, func() (*[]byte, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read source: %w", err)
			}
			return &data, nil
		})
		if err != nil {
			return nil, err
		}
		return *src, nil
	}

	var g errgroup.Group
	for _, typeName := range cf.types {
		cfg := cf.resolve(file, typeName)
		out := outputPath(cfg, len(cf.types) > 1)

		g.Go(func() error {
			return generateOne(log.With(slog.String("type", typeName)), cfg, out, readSource)
		})
	}
	return g.Wait()
}

func generateOne(log *slog.Logger, cfg config.Config, out string, readSource func(string) ([]byte, error)) error {
	src, err := readSource(cfg.Source)
	if err != nil {
		return err
	}

	fp := fingerprint.Sum(src, []byte(cfg.Canonical()))
	if prev, err := os.ReadFile(out); err == nil {
		if have, ok := fingerprint.FromHeader(prev); ok && have == fp {
			log.Debug("up to date", slog.String("output", out))
			return nil
		}
	}

	iface, err := model.ParseSource(cfg.Source, src, cfg.Type)
	if err != nil {
		return err
	}
	p, err := protocol.Build(iface, cfg)
	if err != nil {
		return err
	}
	rendered, err := gen.Generate(p, cfg, fp)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, rendered, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info("generated",
		slog.String("output", out),
		slog.Int("methods", len(p.Variants)),
		slog.String("fingerprint", fp),
	)
	return nil
}

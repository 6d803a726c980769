// tuskgen generates Go table bindings from a YAML schema document.
//
// Usage:
//
//	tuskgen -schema schema.yaml -target ./internal/tables [-pkg tables] [-watch]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuskdb/tusk/compiler/gen"
)

func main() {
	var (
		schemaPath = flag.String("schema", "", "path to the YAML schema document")
		target     = flag.String("target", "", "output directory for generated files")
		pkg        = flag.String("pkg", "", "package name of generated files (default: base of target)")
		workers    = flag.Int("workers", 0, "number of parallel workers (default: GOMAXPROCS)")
		watch      = flag.Bool("watch", false, "regenerate on schema changes")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := gen.NewConfig(
		gen.WithSchema(*schemaPath),
		gen.WithTarget(*target),
		gen.WithPackage(*pkg),
		gen.WithWorkers(*workers),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		if err := gen.Watch(ctx, cfg); err != nil && ctx.Err() == nil {
			slog.Error("watch failed", "err", err)
			os.Exit(1)
		}
		return
	}

	g, err := gen.NewGenerator(cfg)
	if err != nil {
		slog.Error("loading schema failed", "err", err)
		os.Exit(1)
	}
	if err := g.Generate(ctx); err != nil {
		slog.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

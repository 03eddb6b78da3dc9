package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/funvibe/semcore/internal/analyzer"
	"github.com/funvibe/semcore/internal/ast"
	"github.com/funvibe/semcore/internal/astyaml"
	"github.com/funvibe/semcore/internal/config"
	"github.com/funvibe/semcore/internal/diagnostics"
	"github.com/funvibe/semcore/internal/pipeline"
	"github.com/funvibe/semcore/internal/prettyprinter"
	"github.com/funvibe/semcore/internal/report"
	"github.com/funvibe/semcore/internal/store"
	"github.com/funvibe/semcore/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run analyzes the modules named by args and returns the exit code:
// 0 when every module is clean, 1 on diagnostics or failures, 2 on usage errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("semcore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultConfigFile, "configuration file")
	strict := fs.Bool("strict", false, "stop each module at the first diagnostic")
	reportPath := fs.String("report", "", "write a YAML report to this file (- for stdout)")
	storePath := fs.String("store", "", "persist results in this SQLite database")
	color := fs.String("color", "", "diagnostic colour: auto, always or never")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	printSource := fs.Bool("print", false, "print each module as source text before analysing it")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: semcore [options] [module.yaml | dir ...]")
		fmt.Fprintln(stderr, "Reads a module from stdin when no path is given.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			opts.Strict = *strict
		case "report":
			opts.ReportPath = *reportPath
		case "store":
			opts.StorePath = *storePath
		case "color":
			opts.Color = *color
		case "log-level":
			opts.LogLevel = *logLevel
		}
	})
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: opts.Level()}))

	modules, err := loadModules(fs.Args(), stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	stages := []pipeline.Processor{&analyzer.Processor{}, &report.Processor{}}
	if opts.StorePath != "" {
		st, err := store.Open(ctx, opts.StorePath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer st.Close()
		stages = append(stages, &store.Processor{Store: st})
	}
	p := pipeline.New(stages...)

	emitter := diagnostics.NewEmitter(stderr, opts.Color)
	var reports []*report.Report
	failed := false
	for _, mod := range modules {
		if *printSource {
			fmt.Fprintf(stdout, "// %s\n%s", mod.File, prettyprinter.Print(mod))
		}
		pctx := pipeline.NewPipelineContext(ctx, mod, opts)
		pctx.Logger = logger.With("run", pctx.RunID.String())
		pctx = p.Run(pctx)

		emitter.EmitAll(pctx.Errors)
		for _, err := range pctx.Failures {
			fmt.Fprintln(stderr, err)
		}
		if pctx.Failed() {
			failed = true
		}
		if r := report.FromContext(pctx); r != nil {
			reports = append(reports, r)
		}
		logger.Info("module analyzed", "file", pctx.FilePath, "errors", len(pctx.Errors))
	}

	if opts.ReportPath != "" {
		if err := writeReports(opts.ReportPath, stdout, reports); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	if failed {
		return 1
	}
	return 0
}

// loadModules decodes every path, expanding directories to the module files
// they contain. No paths means one module read from stdin.
func loadModules(paths []string, stdin io.Reader) ([]*ast.Module, error) {
	if len(paths) == 0 {
		mod, err := astyaml.Decode(stdin, "<stdin>")
		if err != nil {
			return nil, err
		}
		return []*ast.Module{mod}, nil
	}

	files, err := utils.ExpandModulePaths(paths)
	if err != nil {
		return nil, err
	}

	mods := make([]*ast.Module, 0, len(files))
	for _, f := range files {
		mod, err := astyaml.DecodeFile(f)
		if err != nil {
			return nil, err
		}
		mods = append(mods, mod)
	}
	return mods, nil
}

func writeReports(path string, stdout io.Writer, reports []*report.Report) error {
	if path == "-" {
		return report.WriteAll(stdout, reports)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.WriteAll(f, reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package main is the entry point for selengine.
//
// selengine loads a document outline, runs a Lua selection script against
// it and prints the resulting ranges. With -view the document is drawn in
// the terminal with the selection highlighted until a key is pressed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/selengine/internal/config"
	"github.com/dshills/selengine/internal/dom"
	"github.com/dshills/selengine/internal/engine/selection"
	"github.com/dshills/selengine/internal/event"
	"github.com/dshills/selengine/internal/logging"
	"github.com/dshills/selengine/internal/paint"
	"github.com/dshills/selengine/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	docPath     string
	scriptPath  string
	kind        string
	logLevel    string
	view        bool
	showVersion bool
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "selengine %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}
	if opts.docPath == "" {
		fmt.Fprintln(stderr, "Error: -doc is required")
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel(), Output: stderr, Prefix: "selengine"})

	doc, err := loadDocument(opts.docPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.configPath != "" {
		err := config.Watch(ctx, opts.configPath, func(c config.Config, err error) {
			if err != nil {
				log.Warn("config reload failed: %v", err)
				return
			}
			log.SetLevel(c.LogLevel())
			log.Info("config reloaded, log level %s", c.LogLevel())
		})
		if err != nil {
			log.Warn("watching %s: %v", opts.configPath, err)
		}
	}

	bus := event.NewBus()
	if _, err := bus.Subscribe("selection.**", func(_ context.Context, msg event.Message) error {
		log.Debug("event %s", msg.Header().Topic)
		return nil
	}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	painter := paint.New(doc, paint.WithLogger(log))
	sel := selection.New(doc,
		selection.WithKind(cfg.Kind()),
		selection.WithCrossBoundary(cfg.Selection.CrossBoundary),
		selection.WithRegistry(selection.NewRegistry()),
		selection.WithLogger(log),
		selection.WithNotifier(selection.Notifiers(selection.BusNotifier(bus, log), painter)),
		selection.WithListener(selection.BusListener(bus, log)),
	)
	defer sel.Close()
	painter.Track(sel)

	if opts.scriptPath != "" {
		rt := script.New(sel, doc, script.WithOutput(stdout), script.WithLogger(log))
		defer rt.Close()
		if err := rt.RunFile(ctx, opts.scriptPath); err != nil {
			fmt.Fprintf(stderr, "Error: script: %v\n", err)
			return 1
		}
		if err := rt.LastError(); err != nil {
			log.Warn("script handler: %v", err)
		}
	}

	printRanges(stdout, sel)

	stats := bus.Stats()
	log.Debug("published %d events, %d handler errors", stats.Published, stats.Failed)

	if opts.view {
		screen, err := tcell.NewScreen()
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
			return 1
		}
		if err := screen.Init(); err != nil {
			fmt.Fprintf(stderr, "Error: failed to initialize terminal: %v\n", err)
			return 1
		}
		defer screen.Fini()
		view(screen, painter)
	}

	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("selengine", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.docPath, "doc", "", "Path to YAML document outline")
	fs.StringVar(&opts.scriptPath, "script", "", "Path to Lua selection script")
	fs.StringVar(&opts.kind, "kind", "", "Selection kind (normal, highlight, spellcheck)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.view, "view", false, "Draw the selection in the terminal until a key is pressed")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "selengine - selection range-set engine\n\n")
		fmt.Fprintf(stderr, "Usage: selengine -doc outline.yaml [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  selengine -doc page.yaml -script select.lua\n")
		fmt.Fprintf(stderr, "  selengine -doc page.yaml -script find.lua -kind highlight -view\n")
	}

	err := fs.Parse(args)
	return opts, err
}

// loadConfig layers the command line over the loaded configuration.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.kind != "" {
		cfg.Selection.Kind = opts.kind
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadDocument(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dom.LoadYAML(f)
}

// printRanges writes one line per range, marking the primary with '*'.
func printRanges(w io.Writer, sel *selection.Selection) {
	primary, hasPrimary := sel.PrimaryIndex()
	for i, r := range sel.Ranges() {
		mark := " "
		if hasPrimary && i == primary {
			mark = "*"
		}
		fmt.Fprintf(w, "%s%d %s\n", mark, i, r)
	}
	fmt.Fprintf(w, "ranges: %d direction: %s\n", sel.RangeCount(), sel.Direction())
}

// view draws until a key press, redrawing on resize.
func view(screen tcell.Screen, p *paint.Painter) {
	p.Draw(screen)
	screen.Show()
	for {
		switch screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			screen.Sync()
			p.Draw(screen)
			screen.Show()
		}
	}
}

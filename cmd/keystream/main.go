// Package main is the entry point for the keystream input monitor.
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
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dshills/keystream/internal/config"
	"github.com/dshills/keystream/internal/input"
	"github.com/dshills/keystream/internal/input/evdev"
	"github.com/dshills/keystream/internal/input/event"
	"github.com/dshills/keystream/internal/input/key"
	"github.com/dshills/keystream/internal/input/terminal"
	"github.com/dshills/keystream/internal/logging"
	"github.com/dshills/keystream/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// pollInterval is how often the stream is processed and drained.
const pollInterval = 10 * time.Millisecond

type options struct {
	configPath string
	logLevel   string
	capacity   int
	evdev      bool
	grab       bool
	script     string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if cfg, err = applyFlags(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !opts.evdev && opts.script == "" && cfg.Log.File == "" {
		// The screen owns the terminal while it is open.
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.script != "":
		err = runScript(ctx, cfg, logger, opts.script)
	case opts.evdev:
		err = runEvdev(ctx, cfg, logger)
	default:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal; use -evdev or -script")
			return 1
		}
		err = runTerminal(ctx, cfg, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.IntVar(&opts.capacity, "capacity", 0, "Event stream capacity")
	flag.BoolVar(&opts.evdev, "evdev", false, "Read Linux input devices instead of the terminal")
	flag.BoolVar(&opts.grab, "grab", false, "Grab evdev devices exclusively")
	flag.StringVar(&opts.script, "script", "", "Run a Lua input script and print the events it posts")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keystream - normalized input event monitor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keystream [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keystream                   Show terminal input events\n")
		fmt.Fprintf(os.Stderr, "  keystream -evdev -grab      Show events from /dev/input\n")
		fmt.Fprintf(os.Stderr, "  keystream -script keys.lua  Replay a scripted session\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("keystream %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}
	return opts
}

// applyFlags overrides cfg with the command line and validates the result.
func applyFlags(cfg config.Config, opts options) (config.Config, error) {
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.capacity > 0 {
		cfg.Stream.Capacity = opts.capacity
	}
	if opts.grab {
		cfg.Evdev.Grab = true
	}
	cfg.Normalize()
	return cfg, cfg.Validate()
}

// runScript runs a Lua script against a synthetic module and prints what
// it posted.
func runScript(ctx context.Context, cfg config.Config, logger *zap.Logger, path string) error {
	m, err := input.New(cfg, input.WithTranslator(input.Synthetic), input.WithLogger(logger))
	if err != nil {
		return err
	}
	defer m.Close()

	r := script.New(m, script.WithLogger(logger))
	runErr := r.RunFile(ctx, path)
	closeErr := r.Close()

	printEvents(os.Stdout, m.Stream().Drain(nil))
	printSnapshot(os.Stdout, m.Snapshot())
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// runEvdev reads every input device until ctx is cancelled.
func runEvdev(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	m, err := input.New(cfg, input.WithTranslator(input.Synthetic), input.WithLogger(logger))
	if err != nil {
		return err
	}
	defer m.Close()

	mgr := evdev.NewManager(m.Env(), evdev.Config{Dir: cfg.Evdev.Dir, Grab: cfg.Evdev.Grab})
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return mgr.Run(ctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		var buf []event.Event
		for {
			select {
			case <-ctx.Done():
				printEvents(os.Stdout, m.Stream().Drain(buf[:0]))
				printSnapshot(os.Stdout, m.Snapshot())
				return nil
			case <-ticker.C:
				buf = m.Stream().Drain(buf[:0])
				printEvents(os.Stdout, buf)
			}
		}
	})
	return g.Wait()
}

// runTerminal shows the terminal's input events on screen until Ctrl-C or
// Escape is pressed.
func runTerminal(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	screen, err := terminal.Open()
	if err != nil {
		return err
	}
	m, err := input.New(cfg,
		input.WithTranslator(input.Terminal),
		input.WithNative(screen),
		input.WithLogger(logger),
		input.WithCloser(closerFunc(func() error { screen.Fini(); return nil })),
	)
	if err != nil {
		screen.Fini()
		return err
	}

	lines := make([]string, 0, 64)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	var buf []event.Event
	for {
		select {
		case <-ctx.Done():
			return closeWithSnapshot(m)
		case <-ticker.C:
		}

		m.Process()
		buf = m.Stream().Drain(buf[:0])
		if len(buf) == 0 {
			continue
		}
		for _, e := range buf {
			if isQuit(e) {
				return closeWithSnapshot(m)
			}
			lines = append(lines, e.String())
		}
		_, h := screen.Size()
		if n := len(lines) - (h - 1); n > 0 {
			lines = append(lines[:0], lines[n:]...)
		}
		draw(screen, lines, m.Stream().Stats())
	}
}

func closeWithSnapshot(m *input.Module) error {
	snap := m.Snapshot()
	err := m.Close()
	printSnapshot(os.Stdout, snap)
	return err
}

func isQuit(e event.Event) bool {
	p, ok := e.Key()
	if !ok || e.Kind != event.KindKeyDown {
		return false
	}
	return p.Key == key.KeyEscape || (p.Key == key.KeyC && p.Flags.Has(key.ModCtrl))
}

func draw(screen tcell.Screen, lines []string, stats event.Stats) {
	screen.Clear()
	header := fmt.Sprintf("keystream  posted=%d dropped=%d  (Esc or Ctrl-C quits)", stats.Posted, stats.Dropped)
	drawText(screen, 0, header, tcell.StyleDefault.Reverse(true))
	for i, line := range lines {
		drawText(screen, i+1, line, tcell.StyleDefault)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, row int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func printEvents(w io.Writer, events []event.Event) {
	for _, e := range events {
		fmt.Fprintf(w, "%6d %s\n", e.Seq, e)
	}
}

func printSnapshot(w io.Writer, s input.MetricsSnapshot) {
	fmt.Fprintf(w, "posted=%d rejected=%d dropped=%d native=%d/%d uptime=%s\n",
		s.PostedTotal, s.Rejected, s.Dropped, s.NativeHandled, s.NativeHandled+s.NativeIgnored,
		s.Uptime.Round(time.Millisecond))
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

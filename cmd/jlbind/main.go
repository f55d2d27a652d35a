package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/broady/jlbind/cmd/jlbind/internal/check"
	"github.com/broady/jlbind/cmd/jlbind/internal/emit"
	"github.com/broady/jlbind/cmd/jlbind/internal/gen"
)

type CLI struct {
	Verbose bool `help:"Log per-tool progress at debug level." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Julia parameter binding files."`
	Check   check.Cmd  `cmd:"" help:"Classify and validate tools without writing files."`
	Emit    emit.Cmd   `cmd:"" help:"Print one tool's binding block to stdout."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

// newLogger logs text to a terminal and JSON everywhere else.
func newLogger(w io.Writer, fd uintptr, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("jlbind"),
		kong.Description("Generate Julia bindings that hand tool parameters to a native parameter store."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(os.Stderr, os.Stderr.Fd(), cli.Verbose)
	slog.SetDefault(logger)

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}

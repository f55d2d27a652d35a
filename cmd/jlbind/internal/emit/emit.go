package emit

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/broady/jlbind"
	"github.com/broady/jlbind/cmd/jlbind/internal/source"
)

type Cmd struct {
	source.Flags `embed:""`

	Tool   string `help:"Program to emit (required if several tools are loaded)." short:"t"`
	Wrap   bool   `help:"Wrap the block in a Julia function."`
	Prefix string `help:"Parameter store accessor prefix (default Store)."`
	Indent *int   `help:"Base indentation level; 0 for column zero (default 1)."`

	out io.Writer
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	w := c.out
	if w == nil {
		w = os.Stdout
	}

	tools, err := c.Load()
	if err != nil {
		return err
	}
	tool, err := source.Select(tools, c.Tool)
	if err != nil {
		return err
	}

	g := jlbind.FromTools(tool).
		WithStorePrefix(c.Prefix).
		WithLogger(logger)
	if c.Indent != nil {
		g = g.WithBaseIndent(*c.Indent)
	}
	if c.Wrap {
		g = g.WrapFunction()
	}

	code, err := g.Bytes(ctx)
	if err != nil {
		return err
	}
	_, err = w.Write(code)
	return err
}

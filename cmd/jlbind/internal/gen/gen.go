package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/broady/jlbind"
	"github.com/broady/jlbind/cmd/jlbind/internal/source"
	"github.com/broady/jlbind/sink"
)

type Cmd struct {
	source.Flags `embed:""`

	Out         string `help:"Output directory for generated files." short:"o" default:"."`
	Stdout      bool   `help:"Write files to stdout instead of --out."`
	SingleFile  bool   `help:"Emit every tool into one file." name:"single-file"`
	FileName    string `help:"File name used with --single-file." name:"file-name"`
	Wrap        bool   `help:"Wrap each tool in a Julia function."`
	Prefix      string `help:"Parameter store accessor prefix (default Store)."`
	Indent      *int   `help:"Base indentation level; 0 for column zero (default 1)."`
	Frontmatter string `help:"Content added to the top of each file."`
	Concurrency int    `help:"Maximum tools emitted at once (0 = unbounded)." short:"j"`
	Overwrite   bool   `help:"Replace existing files." default:"true" negatable:""`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	tools, err := c.Load()
	if err != nil {
		return err
	}

	g := jlbind.FromTools(tools...).
		WithConfig(jlbind.Config{
			StorePrefix:  c.Prefix,
			BaseIndent:   c.Indent,
			WrapFunction: c.Wrap,
			SingleFile:   c.SingleFile,
			FileName:     c.FileName,
			Frontmatter:  c.Frontmatter,
			Concurrency:  c.Concurrency,
		}).
		WithLogger(logger)

	var out sink.OutputSink
	if c.Stdout {
		out = sink.NewWriterSink(os.Stdout)
	} else {
		// Resolve output directory to absolute path
		dir, err := filepath.Abs(c.Out)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		fs := sink.NewFilesystemSink(dir)
		fs.Overwrite = c.Overwrite
		out = fs
	}

	result, err := g.ToSink(ctx, out)
	if result != nil && !c.Stdout {
		for _, f := range result.Files {
			fmt.Fprintf(os.Stderr, "wrote %s\n", filepath.Join(c.Out, f.Path))
		}
	}
	return err
}

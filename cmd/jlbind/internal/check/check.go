package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/jlbind"
	"github.com/broady/jlbind/classify"
	"github.com/broady/jlbind/cmd/jlbind/internal/source"
	"github.com/broady/jlbind/ir"
)

type Cmd struct {
	source.Flags `embed:""`

	Prefix string `help:"Parameter store accessor prefix to validate against."`

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

	result, genErr := jlbind.FromTools(tools...).
		WithStorePrefix(c.Prefix).
		WithLogger(logger).
		Generate(ctx)
	if result == nil {
		return genErr
	}

	for i, tr := range result.Tools {
		if tr.Err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", tr.Program, tr.Err)
			continue
		}
		fmt.Fprintf(w, "✓ %s: %s\n", tr.Program, summarize(tools[i]))
	}

	if failed := len(result.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d tools failed", failed, len(result.Tools))
	}
	fmt.Fprintf(w, "✓ %d tools, all parameters classified\n", len(result.Tools))
	return nil
}

// summarize counts parameters per category for a tool that already
// generated cleanly.
func summarize(t ir.Tool) string {
	counts := make(map[ir.Category]int)
	for _, p := range t.Parameters {
		c, err := classify.Parameter(p)
		if err != nil {
			continue
		}
		counts[c.Category()]++
	}
	return fmt.Sprintf("%d params (%d plain, %d matrix, %d object)",
		len(t.Parameters),
		counts[ir.CategoryPlain], counts[ir.CategoryMatrixLike], counts[ir.CategoryObjectLike])
}

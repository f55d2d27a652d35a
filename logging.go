package jlbind

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/jlbind/ir"
)

// emitFunc renders one tool.
type emitFunc func(ctx context.Context, t ir.Tool) ([]byte, error)

// withLogging wraps an emitFunc so each tool logs its start and end,
// including duration and error status.
func withLogging(logger *slog.Logger, runID string, next emitFunc) emitFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, t ir.Tool) ([]byte, error) {
		start := time.Now()

		logger.DebugContext(ctx, "tool started",
			slog.String("run_id", runID),
			slog.String("program", t.Program),
			slog.Int("params", len(t.Parameters)),
		)

		code, err := next(ctx, t)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "tool failed",
				slog.String("run_id", runID),
				slog.String("program", t.Program),
				slog.String("code", string(ir.CodeOf(err))),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.InfoContext(ctx, "tool generated",
				slog.String("run_id", runID),
				slog.String("program", t.Program),
				slog.Int("bytes", len(code)),
				slog.Duration("duration", duration),
			)
		}

		return code, err
	}
}

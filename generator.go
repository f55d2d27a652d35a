// Package jlbind generates the input-processing section of Julia bindings
// for command-line computation tools.
//
// Each tool's parameters are classified and rendered by package julia into a
// private buffer; buffers are then assembled into files in tool order.
package jlbind

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/broady/jlbind/ir"
	"github.com/broady/jlbind/julia"
)

// GenerateResult describes one generation run.
type GenerateResult struct {
	// RunID identifies the run in log records.
	RunID string

	// Tools holds one entry per input tool, in input order.
	Tools []ToolResult

	// Files lists the assembled output files.
	Files []OutputFile
}

// ToolResult is the outcome for a single tool.
type ToolResult struct {
	Program string

	// Code is the rendered block, or nil when Err is set.
	Code []byte

	Err error
}

// OutputFile is an assembled file ready for a sink.
type OutputFile struct {
	// Path is relative to the sink root.
	Path string

	Content []byte
}

// Failed returns the tools that produced an error.
func (r *GenerateResult) Failed() []ToolResult {
	var out []ToolResult
	for _, t := range r.Tools {
		if t.Err != nil {
			out = append(out, t)
		}
	}
	return out
}

// Generate renders every tool. Tools are emitted concurrently, each into its
// own buffer, and assembled in input order. A failing tool contributes no
// text; its error is joined into the returned error while the other tools
// are still produced. Invalid configuration or cancellation returns a nil
// result.
func Generate(ctx context.Context, tools []ir.Tool, cfg *Config, logger *slog.Logger) (*GenerateResult, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	cfg = applyConfigDefaults(cfg)
	if logger == nil {
		logger = slog.Default()
	}

	result := &GenerateResult{
		RunID: uuid.NewString(),
		Tools: make([]ToolResult, len(tools)),
	}

	dupes := duplicatePrograms(tools)
	emitter := julia.NewEmitter(julia.Config{
		StorePrefix: cfg.StorePrefix,
		BaseIndent:  cfg.BaseIndent,
	})
	emit := withLogging(logger, result.RunID, renderFunc(emitter, cfg.WrapFunction))

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for i, tool := range tools {
		i, tool := i, tool
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr := ToolResult{Program: tool.Program}
			if dupes[tool.Program] {
				tr.Err = ir.NewError(ir.CodeMalformedDescriptor, "program name is used by more than one tool").WithTool(tool.Program)
			} else {
				tr.Code, tr.Err = emit(gctx, tool)
			}
			result.Tools[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Files = assemble(result.Tools, cfg)

	var errs []error
	for _, t := range result.Tools {
		if t.Err != nil {
			errs = append(errs, t.Err)
		}
	}
	return result, errors.Join(errs...)
}

// renderFunc returns the per-tool emission for the configured output shape.
func renderFunc(e *julia.Emitter, wrap bool) emitFunc {
	return func(_ context.Context, t ir.Tool) ([]byte, error) {
		if !wrap {
			return e.EmitTool(t)
		}
		var buf bytes.Buffer
		if err := e.EmitFunction(&buf, t); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func duplicatePrograms(tools []ir.Tool) map[string]bool {
	seen := make(map[string]int, len(tools))
	for _, t := range tools {
		seen[t.Program]++
	}
	dupes := make(map[string]bool)
	for name, n := range seen {
		if n > 1 {
			dupes[name] = true
		}
	}
	return dupes
}

// assemble builds output files from successful tools, preserving order.
func assemble(tools []ToolResult, cfg *Config) []OutputFile {
	header := frontmatter(cfg.Frontmatter)

	if cfg.SingleFile {
		var buf bytes.Buffer
		buf.WriteString(header)
		n := 0
		for _, t := range tools {
			if t.Err != nil {
				continue
			}
			if n > 0 && cfg.WrapFunction {
				buf.WriteByte('\n')
			}
			buf.Write(t.Code)
			n++
		}
		if n == 0 {
			return nil
		}
		return []OutputFile{{Path: cfg.FileName, Content: buf.Bytes()}}
	}

	files := make([]OutputFile, 0, len(tools))
	for _, t := range tools {
		if t.Err != nil {
			continue
		}
		files = append(files, OutputFile{
			Path:    fmt.Sprintf("%s.jl", t.Program),
			Content: append([]byte(header), t.Code...),
		})
	}
	return files
}

func frontmatter(s string) string {
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s + "\n"
}

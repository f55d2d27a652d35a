package jlbind

import (
	"context"
	"log/slog"

	"github.com/broady/jlbind/ir"
	"github.com/broady/jlbind/sink"
)

// DefaultFileName is the output file used when SingleFile is set.
const DefaultFileName = "bindings.jl"

// Config holds the configuration for binding generation.
type Config struct {
	// StorePrefix is the parameter store accessor family.
	// Default: "Store". Use "CLISetParam" for the historical engine API.
	StorePrefix string `validate:"omitempty,jlident"`

	// BaseIndent is the indentation level of unguarded store calls.
	// Default (nil): 1, inside a function body. 0 renders at column zero.
	BaseIndent *int `validate:"omitempty,gte=0,lte=8"`

	// WrapFunction wraps each tool's block in a Julia function with
	// required parameters positional and optional ones as keywords.
	WrapFunction bool

	// SingleFile emits every tool into one file, in tool order.
	// Default (false) writes <program>.jl per tool.
	SingleFile bool

	// FileName is the output file name when SingleFile is set.
	// Default: "bindings.jl".
	FileName string `validate:"omitempty,endswith=.jl"`

	// Frontmatter is content added to the top of each generated file.
	// e.g. "# Code generated by jlbind. DO NOT EDIT."
	Frontmatter string

	// Concurrency bounds how many tools are emitted at once.
	// Default: 0 (unbounded). Output order never depends on it.
	Concurrency int `validate:"gte=0,lte=256"`
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.FileName == "" {
		result.FileName = DefaultFileName
	}

	return &result
}

// validateConfig checks the configuration with the shared validator.
func validateConfig(cfg *Config) error {
	if err := ir.Validator().Struct(cfg); err != nil {
		return ir.FromValidation(ir.CodeInvalidConfig, err)
	}
	return nil
}

// Generator provides a fluent API for binding generation.
// Create with FromTools() and configure with method chaining.
//
// Example:
//
//	jlbind.FromTools(tools...).
//	    WrapFunction().
//	    Frontmatter("# Code generated by jlbind. DO NOT EDIT.").
//	    ToDir("./src/bindings")
type Generator struct {
	tools  []ir.Tool
	cfg    Config
	logger *slog.Logger
}

// FromTools creates a Generator for the given tools. Output follows the
// order tools are passed in.
func FromTools(tools ...ir.Tool) *Generator {
	return &Generator{tools: tools}
}

// WithConfig replaces the whole configuration.
func (g *Generator) WithConfig(cfg Config) *Generator {
	g.cfg = cfg
	return g
}

// WithStorePrefix sets the parameter store accessor prefix.
func (g *Generator) WithStorePrefix(prefix string) *Generator {
	g.cfg.StorePrefix = prefix
	return g
}

// WithBaseIndent sets the indentation level of unguarded statements.
func (g *Generator) WithBaseIndent(level int) *Generator {
	g.cfg.BaseIndent = &level
	return g
}

// WrapFunction wraps each tool in a Julia function definition.
func (g *Generator) WrapFunction() *Generator {
	g.cfg.WrapFunction = true
	return g
}

// SingleFile emits all tools into one file.
func (g *Generator) SingleFile() *Generator {
	g.cfg.SingleFile = true
	return g
}

// WithFileName sets the single-file output name.
func (g *Generator) WithFileName(name string) *Generator {
	g.cfg.FileName = name
	return g
}

// Frontmatter adds content to the top of generated files.
func (g *Generator) Frontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	return g
}

// WithConcurrency bounds the number of tools emitted at once.
func (g *Generator) WithConcurrency(n int) *Generator {
	g.cfg.Concurrency = n
	return g
}

// WithLogger sets the logger for per-tool records. Default: slog.Default().
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// Generate returns generated files in memory without writing them.
func (g *Generator) Generate(ctx context.Context) (*GenerateResult, error) {
	return Generate(ctx, g.tools, &g.cfg, g.logger)
}

// ToSink generates and writes every produced file to s. Files of tools that
// failed are not written; the returned error reports those tools.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*GenerateResult, error) {
	result, genErr := g.Generate(ctx)
	if result == nil {
		return nil, genErr
	}
	for _, f := range result.Files {
		if err := s.WriteFile(ctx, f.Path, f.Content); err != nil {
			return result, err
		}
	}
	return result, genErr
}

// Bytes renders every tool into a single buffer, in tool order, ignoring
// the SingleFile and FileName settings. Tools that fail are left out and
// reported in the returned error.
func (g *Generator) Bytes(ctx context.Context) ([]byte, error) {
	cfg := g.cfg
	cfg.SingleFile = true
	cfg.FileName = ""
	result, err := Generate(ctx, g.tools, &cfg, g.logger)
	if result == nil || len(result.Files) == 0 {
		return nil, err
	}
	return result.Files[0].Content, err
}

// ToDir generates files into dir.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(dir string) (*GenerateResult, error) {
	return g.ToSink(context.Background(), sink.NewFilesystemSink(dir))
}

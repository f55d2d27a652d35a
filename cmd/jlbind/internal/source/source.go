// Package source resolves command-line tool sources into descriptors.
package source

import (
	"errors"
	"fmt"

	"github.com/broady/jlbind/ir"
	"github.com/broady/jlbind/manifest"
	"github.com/broady/jlbind/provider"
)

// Flags selects where tools come from. Embed it in a command.
type Flags struct {
	Manifests []string `arg:"" optional:"" help:"YAML manifest files."`
	Package   string   `help:"Go package to scan for //jlbind:tool structs." short:"p"`
	Program   string   `help:"Program name for --param tools."`
	Params    []string `help:"Inline parameter as a query string, e.g. 'name=k&type=int'." name:"param" sep:"none"`
}

// Load collects tools from every selected source: manifests first, then the
// Go package, then the inline tool.
func (f *Flags) Load() ([]ir.Tool, error) {
	if len(f.Manifests) == 0 && f.Package == "" && f.Program == "" {
		return nil, errors.New("no tool source: give manifest files, --package, or --program with --param")
	}
	if len(f.Params) > 0 && f.Program == "" {
		return nil, errors.New("--param requires --program")
	}

	var tools []ir.Tool
	for _, path := range f.Manifests {
		ts, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		tools = append(tools, ts...)
	}

	if f.Package != "" {
		ts, err := provider.Load(f.Package)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", f.Package, err)
		}
		if len(ts) == 0 {
			return nil, fmt.Errorf("package %s: no //jlbind:tool structs found", f.Package)
		}
		tools = append(tools, ts...)
	}

	if f.Program != "" {
		t, err := manifest.DecodeInline(f.Program, f.Params)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}

	return tools, nil
}

// Select returns the tool named program, or an error listing the names
// available.
func Select(tools []ir.Tool, program string) (ir.Tool, error) {
	if program == "" {
		if len(tools) == 1 {
			return tools[0], nil
		}
		return ir.Tool{}, fmt.Errorf("%d tools found; choose one with --tool (%s)", len(tools), names(tools))
	}
	for _, t := range tools {
		if t.Program == program {
			return t, nil
		}
	}
	return ir.Tool{}, fmt.Errorf("tool %q not found (have %s)", program, names(tools))
}

func names(tools []ir.Tool) string {
	var s string
	for i, t := range tools {
		if i > 0 {
			s += ", "
		}
		s += t.Program
	}
	return s
}

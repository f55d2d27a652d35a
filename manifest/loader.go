// Package manifest loads tool parameter metadata from YAML manifests and
// from inline query-style parameter specs.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/broady/jlbind/ir"
)

// LoadFile loads and parses a YAML manifest from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ir.NewError(ir.CodeInvalidManifest, "manifest is empty")
		}
		return nil, &ir.Error{Code: ir.CodeInvalidManifest, Message: "failed to parse manifest YAML", Err: err}
	}

	applyDefaults(&f)

	if err := ir.Validator().Struct(&f); err != nil {
		return nil, ir.FromValidation(ir.CodeInvalidManifest, err)
	}
	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// ResolveTools resolves every tool in the manifest, in file order.
func (f *File) ResolveTools() ([]ir.Tool, error) {
	tools := make([]ir.Tool, 0, len(f.Tools))
	for _, ts := range f.Tools {
		t, err := ts.Tool()
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// Tool resolves the spec to an ir.Tool.
func (ts ToolSpec) Tool() (ir.Tool, error) {
	t := ir.Tool{
		Program:    ts.Program,
		Parameters: make([]ir.ParameterDescriptor, 0, len(ts.Parameters)),
	}
	for _, ps := range ts.Parameters {
		p, err := ps.Descriptor()
		if err != nil {
			return ir.Tool{}, &ir.Error{Code: ir.CodeInvalidManifest, Tool: ts.Program, Param: ps.Name, Message: "bad parameter", Err: err}
		}
		t.Parameters = append(t.Parameters, p)
	}
	return t, nil
}

// Load reads a manifest and resolves its tools, recording the path as
// each tool's source.
func Load(path string) ([]ir.Tool, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	tools, err := f.ResolveTools()
	if err != nil {
		return nil, err
	}
	for i := range tools {
		tools[i].Source = path
	}
	return tools, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

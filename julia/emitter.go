// Package julia renders the input-processing section of Julia bindings.
//
// For each parameter the Emitter writes one store call, wrapped in a
// nothing-check when the parameter is optional:
//
//	  if verbose !== nothing
//	    Store("verbose", convert(Bool, verbose))
//	  end
//
// Matrix-like parameters use Store[U][Row|Col] and serializable objects use
// Store<Type>Ptr.
package julia

import (
	"bytes"
	"strings"

	"github.com/broady/jlbind/classify"
	"github.com/broady/jlbind/ir"
)

const (
	// DefaultStorePrefix is the accessor family of the parameter store.
	DefaultStorePrefix = "Store"

	// DefaultBaseIndent places unguarded statements inside a function body.
	DefaultBaseIndent = 1
)

// Config controls emitted text.
type Config struct {
	// StorePrefix is the accessor name prefix (default "Store").
	StorePrefix string

	// BaseIndent is the indentation level of unguarded statements.
	// nil means DefaultBaseIndent; 0 is column zero.
	BaseIndent *int
}

// Emitter renders parameters into a buffer. It holds no per-call state and
// may be shared between goroutines as long as each uses its own buffer.
type Emitter struct {
	prefix string
	base   int
}

// NewEmitter creates an Emitter with defaults applied.
func NewEmitter(cfg Config) *Emitter {
	e := &Emitter{prefix: cfg.StorePrefix, base: DefaultBaseIndent}
	if e.prefix == "" {
		e.prefix = DefaultStorePrefix
	}
	if cfg.BaseIndent != nil {
		e.base = max(*cfg.BaseIndent, 0)
	}
	return e
}

// EmitParameter renders p according to its classification.
func (e *Emitter) EmitParameter(buf *bytes.Buffer, p ir.ParameterDescriptor, c ir.Classification) error {
	if err := ir.ValidateParameter(p); err != nil {
		return err
	}

	switch c := c.(type) {
	case ir.Plain:
		return e.EmitPlain(buf, p, c)
	case ir.MatrixLike:
		return e.EmitMatrix(buf, p, c)
	case ir.ObjectLike:
		return e.EmitObject(buf, p, c)
	default:
		return ir.Errorf(ir.CodeConfiguration, "unsupported classification %T", c).WithParam(p.Name)
	}
}

// EmitPlain renders a scalar, string, enum or vector-of-primitive parameter.
func (e *Emitter) EmitPlain(buf *bytes.Buffer, p ir.ParameterDescriptor, c ir.Plain) error {
	return e.emitStore(buf, p, e.prefix, ResolveTargetType(p, c))
}

// EmitMatrix renders a native container parameter.
func (e *Emitter) EmitMatrix(buf *bytes.Buffer, p ir.ParameterDescriptor, c ir.MatrixLike) error {
	accessor := e.prefix + Suffix(c.ElementIsUnsignedIntegral(), c.Shape)
	return e.emitStore(buf, p, accessor, ResolveTargetType(p, c))
}

// EmitObject renders a serializable model parameter.
func (e *Emitter) EmitObject(buf *bytes.Buffer, p ir.ParameterDescriptor, c ir.ObjectLike) error {
	stripped := StripQualifiers(c.TypeName)
	if stripped == "" {
		return ir.Errorf(ir.CodeMalformedDescriptor, "type %q has no usable accessor name", c.TypeName).WithParam(p.Name)
	}
	return e.emitStore(buf, p, e.prefix+stripped+"Ptr", ResolveTargetType(p, c))
}

// emitStore writes the store call, guarded when p is optional. Nothing is
// written when an error is returned.
func (e *Emitter) emitStore(buf *bytes.Buffer, p ir.ParameterDescriptor, accessor, target string) error {
	if target == "" {
		return ir.Errorf(ir.CodeMalformedDescriptor, "no Julia type for %q", p.Type.Name).WithParam(p.Name)
	}

	b := newBlock(buf, e.base)
	if !p.Required {
		b.openGuard(p.Name)
	}
	b.line(storeCall(accessor, p.Name, target))
	if !p.Required {
		return b.closeGuard()
	}
	return nil
}

func storeCall(accessor, name, target string) string {
	var sb strings.Builder
	sb.WriteString(accessor)
	sb.WriteString(`("`)
	sb.WriteString(name)
	sb.WriteString(`", convert(`)
	sb.WriteString(target)
	sb.WriteString(", ")
	sb.WriteString(name)
	sb.WriteString("))")
	return sb.String()
}

// EmitTool validates, classifies and renders every parameter of t in
// declaration order. On any error no text is returned, so a half-formed
// binding never reaches the output.
func (e *Emitter) EmitTool(t ir.Tool) ([]byte, error) {
	if err := ir.ValidateTool(t); err != nil {
		return nil, err
	}

	classes, err := classify.Tool(t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for i, p := range t.Parameters {
		if err := e.EmitParameter(&buf, p, classes[i]); err != nil {
			return nil, withTool(err, t.Program)
		}
	}
	return buf.Bytes(), nil
}

func withTool(err error, program string) error {
	if genErr, ok := err.(*ir.Error); ok {
		return genErr.WithTool(program)
	}
	return err
}

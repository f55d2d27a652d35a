// Package classify resolves a parameter's static type to the category that
// selects its emission strategy.
package classify

import (
	"strings"

	"github.com/broady/jlbind/ir"
)

// Classify assigns a static type to exactly one category.
//
// A type is ObjectLike when it is serializable and not a container,
// MatrixLike when it is a native numeric container, and Plain when it has a
// primitive kind. A type matching none or several of these is a defect in the
// upstream type model and is reported as a CodeConfiguration error.
func Classify(td ir.TypeDescriptor) (ir.Classification, error) {
	object := td.Serializable && td.Container == nil
	matrix := td.Container != nil
	plain := td.Primitive != ir.PrimitiveNone

	var matched []string
	if object {
		matched = append(matched, ir.CategoryObjectLike.String())
	}
	if matrix {
		matched = append(matched, ir.CategoryMatrixLike.String())
	}
	if plain {
		matched = append(matched, ir.CategoryPlain.String())
	}

	switch len(matched) {
	case 0:
		return nil, ir.Errorf(ir.CodeConfiguration, "type %q matches no category", td.Name)
	case 1:
	default:
		return nil, ir.Errorf(ir.CodeConfiguration, "type %q matches several categories: %s",
			td.Name, strings.Join(matched, ", "))
	}

	switch {
	case object:
		return ir.ObjectLike{TypeName: td.Name}, nil
	case matrix:
		shape, err := shapeOf(td)
		if err != nil {
			return nil, err
		}
		return ir.MatrixLike{Element: td.Container.Element, Shape: shape}, nil
	default:
		return ir.Plain{Kind: td.Primitive}, nil
	}
}

func shapeOf(td ir.TypeDescriptor) (ir.Shape, error) {
	c := td.Container
	switch {
	case c.SingleRow && c.SingleCol:
		return 0, ir.Errorf(ir.CodeConfiguration, "container %q is both a single row and a single column", td.Name)
	case c.SingleRow:
		return ir.ShapeRowVector, nil
	case c.SingleCol:
		return ir.ShapeColumnVector, nil
	default:
		return ir.ShapeGeneral, nil
	}
}

// Parameter classifies a parameter's type and attributes errors to it.
func Parameter(p ir.ParameterDescriptor) (ir.Classification, error) {
	c, err := Classify(p.Type)
	if err != nil {
		return nil, attribute(err, "", p.Name)
	}
	// ObjectLike keeps the descriptor's own spelling so accessor names can
	// be overridden without touching the shared type.
	if obj, ok := c.(ir.ObjectLike); ok {
		obj.TypeName = p.TypeName()
		return obj, nil
	}
	return c, nil
}

// Tool classifies every parameter in declaration order. The first failure
// aborts classification of the whole tool.
func Tool(t ir.Tool) ([]ir.Classification, error) {
	out := make([]ir.Classification, 0, len(t.Parameters))
	for _, p := range t.Parameters {
		c, err := Parameter(p)
		if err != nil {
			return nil, attribute(err, t.Program, p.Name)
		}
		out = append(out, c)
	}
	return out, nil
}

func attribute(err error, program, param string) error {
	genErr, ok := err.(*ir.Error)
	if !ok {
		return err
	}
	if program != "" {
		genErr = genErr.WithTool(program)
	}
	if param != "" {
		genErr = genErr.WithParam(param)
	}
	return genErr
}

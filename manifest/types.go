package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/broady/jlbind/ir"
)

// File is a tool manifest: the parameter metadata of one or more programs.
//
//	version: "1"
//	tools:
//	  - program: linear_regression
//	    parameters:
//	      - name: training
//	        type: mat
//	      - name: input_model
//	        model: LinearRegression<>
//	      - name: verbose
//	        type: bool
type File struct {
	Version string     `yaml:"version,omitempty"`
	Tools   []ToolSpec `yaml:"tools" validate:"required,min=1,dive"`
}

// ToolSpec describes one program.
type ToolSpec struct {
	Program    string      `yaml:"program" validate:"required"`
	Parameters []ParamSpec `yaml:"parameters" validate:"dive"`
}

// ParamSpec describes one parameter.
type ParamSpec struct {
	Name     string   `yaml:"name" validate:"required"`
	Required bool     `yaml:"required,omitempty"`
	Type     TypeSpec `yaml:"type,omitempty"`

	// Model is shorthand for a serializable type with this spelling.
	Model string `yaml:"model,omitempty"`

	// TypeName overrides the spelling used for accessor names.
	TypeName string `yaml:"type_name,omitempty"`

	// Julia overrides the target type in convert(...).
	Julia string `yaml:"julia,omitempty" validate:"omitempty,jltype"`

	Description string `yaml:"description,omitempty"`
}

// TypeSpec is either an alias ("mat", "bool", "arma::Col<size_t>") or an
// explicit capability description:
//
//	type:
//	  name: arma::imat
//	  serializable: true
//	  container: {element: int}
type TypeSpec struct {
	// Alias is set when the YAML node was a plain scalar.
	Alias string `yaml:"-"`

	Name         string         `yaml:"name,omitempty"`
	Primitive    string         `yaml:"primitive,omitempty"`
	Container    *ContainerSpec `yaml:"container,omitempty"`
	Serializable bool           `yaml:"serializable,omitempty"`
}

// ContainerSpec describes a native numeric container.
type ContainerSpec struct {
	Element   string `yaml:"element,omitempty"`
	SingleRow bool   `yaml:"single_row,omitempty"`
	SingleCol bool   `yaml:"single_col,omitempty"`
}

// IsZero reports whether no type was given.
func (t TypeSpec) IsZero() bool {
	return t.Alias == "" && t.Name == "" && t.Primitive == "" && t.Container == nil && !t.Serializable
}

// UnmarshalYAML accepts both the scalar alias form and the mapping form.
func (t *TypeSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = TypeSpec{Alias: node.Value}
		return nil
	case yaml.MappingNode:
		type plain TypeSpec
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*t = TypeSpec(p)
		return nil
	default:
		return fmt.Errorf("line %d: type must be a name or a mapping", node.Line)
	}
}

// MarshalYAML writes aliases back in scalar form.
func (t TypeSpec) MarshalYAML() (any, error) {
	if t.Alias != "" {
		return t.Alias, nil
	}
	type plain TypeSpec
	return plain(t), nil
}

var aliases = map[string]func() ir.TypeDescriptor{
	"bool":                     ir.Bool,
	"int":                      ir.Int,
	"double":                   ir.Double,
	"float":                    ir.Float,
	"string":                   ir.String,
	"std::string":              ir.String,
	"enum":                     ir.Enum,
	"vector<string>":           ir.StringVector,
	"std::vector<std::string>": ir.StringVector,
	"vector<int>":              ir.IntVector,
	"std::vector<int>":         ir.IntVector,
	"mat":                      ir.Mat,
	"arma::mat":                ir.Mat,
	"umat":                     ir.UMat,
	"arma::Mat<size_t>":        ir.UMat,
	"row":                      ir.Row,
	"arma::rowvec":             ir.Row,
	"urow":                     ir.URow,
	"arma::Row<size_t>":        ir.URow,
	"col":                      ir.Col,
	"arma::vec":                ir.Col,
	"ucol":                     ir.UCol,
	"arma::Col<size_t>":        ir.UCol,
}

var primitives = map[string]ir.PrimitiveKind{
	"bool":          ir.PrimitiveBool,
	"int":           ir.PrimitiveInt,
	"double":        ir.PrimitiveDouble,
	"float":         ir.PrimitiveFloat,
	"string":        ir.PrimitiveString,
	"string_vector": ir.PrimitiveStringVector,
	"int_vector":    ir.PrimitiveIntVector,
	"enum":          ir.PrimitiveEnum,
}

var elements = map[string]ir.ElementKind{
	"":       ir.ElementDouble,
	"double": ir.ElementDouble,
	"float":  ir.ElementFloat,
	"int":    ir.ElementInt,
	"size_t": ir.ElementSize,
}

// Descriptor resolves the spec to a static type. Explicit descriptions are
// passed through as written; conflicting capabilities are left for the
// classifier to report.
func (t TypeSpec) Descriptor() (ir.TypeDescriptor, error) {
	if t.Alias != "" {
		fn, ok := aliases[t.Alias]
		if !ok {
			return ir.TypeDescriptor{}, fmt.Errorf("unknown type %q", t.Alias)
		}
		return fn(), nil
	}

	td := ir.TypeDescriptor{Name: t.Name, Serializable: t.Serializable}
	if t.Primitive != "" {
		k, ok := primitives[t.Primitive]
		if !ok {
			return ir.TypeDescriptor{}, fmt.Errorf("unknown primitive %q", t.Primitive)
		}
		td.Primitive = k
	}
	if t.Container != nil {
		elem, ok := elements[t.Container.Element]
		if !ok {
			return ir.TypeDescriptor{}, fmt.Errorf("unknown container element %q", t.Container.Element)
		}
		td.Container = &ir.Container{
			Element:   elem,
			SingleRow: t.Container.SingleRow,
			SingleCol: t.Container.SingleCol,
		}
	}
	return td, nil
}

// Descriptor resolves the parameter to an ir.ParameterDescriptor.
func (p ParamSpec) Descriptor() (ir.ParameterDescriptor, error) {
	var td ir.TypeDescriptor
	switch {
	case p.Model != "" && !p.Type.IsZero():
		return ir.ParameterDescriptor{}, fmt.Errorf("parameter %q: type and model are mutually exclusive", p.Name)
	case p.Model != "":
		td = ir.Model(p.Model)
	case p.Type.IsZero():
		return ir.ParameterDescriptor{}, fmt.Errorf("parameter %q: type or model is required", p.Name)
	default:
		var err error
		td, err = p.Type.Descriptor()
		if err != nil {
			return ir.ParameterDescriptor{}, fmt.Errorf("parameter %q: %w", p.Name, err)
		}
	}

	return ir.ParameterDescriptor{
		Name:               p.Name,
		Required:           p.Required,
		Type:               td,
		UnderlyingTypeName: p.TypeName,
		TargetType:         p.Julia,
		Description:        p.Description,
	}, nil
}

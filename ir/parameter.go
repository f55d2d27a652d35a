package ir

// ParameterDescriptor describes one bound parameter of a tool.
// Descriptors are values; the emitter never modifies them.
type ParameterDescriptor struct {
	// Name is emitted quoted as the parameter store key and unquoted as the
	// bound Julia variable, so it must be a plain identifier.
	Name string `validate:"required,jlident"`

	// Required parameters are stored unconditionally. Optional parameters
	// are guarded by a nothing-check.
	Required bool

	// Type is the static type resolved by the collector.
	Type TypeDescriptor

	// UnderlyingTypeName is the source spelling used to build accessor
	// names for serializable types. Defaults to Type.Name.
	UnderlyingTypeName string

	// TargetType overrides the Julia type used in convert(...).
	TargetType string `validate:"omitempty,jltype"`

	// Description is user-facing documentation; it is not emitted.
	Description string
}

// TypeName returns the spelling used for accessor names.
func (p ParameterDescriptor) TypeName() string {
	if p.UnderlyingTypeName != "" {
		return p.UnderlyingTypeName
	}
	return p.Type.Name
}

// Tool is the ordered parameter list of one command-line program.
type Tool struct {
	// Program names the generated Julia function and output file.
	Program string `validate:"required,jlident"`

	// Parameters in declaration order. Output preserves this order.
	Parameters []ParameterDescriptor `validate:"unique=Name,dive"`

	// Source records where the tool was collected from, for diagnostics.
	Source string
}

// Required returns the required parameters in declaration order.
func (t Tool) Required() []ParameterDescriptor {
	var out []ParameterDescriptor
	for _, p := range t.Parameters {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// Optional returns the optional parameters in declaration order.
func (t Tool) Optional() []ParameterDescriptor {
	var out []ParameterDescriptor
	for _, p := range t.Parameters {
		if !p.Required {
			out = append(out, p)
		}
	}
	return out
}

package ir

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// tagIdentifier is the validator tag for Julia identifiers.
	tagIdentifier = "jlident"

	// tagTypeExpr is the validator tag for Julia type expressions.
	tagTypeExpr = "jltype"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation(tagIdentifier, func(fl validator.FieldLevel) bool {
		return IsIdentifier(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation(tagTypeExpr, func(fl validator.FieldLevel) bool {
		return IsTypeExpr(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validator returns the shared validator with the jlident and jltype tags
// registered.
// Other packages use it for their own configuration structs.
func Validator() *validator.Validate {
	return validate
}

// ValidateParameter checks that a descriptor can be rendered.
func ValidateParameter(p ParameterDescriptor) error {
	if err := validate.Struct(p); err != nil {
		return FromValidation(CodeMalformedDescriptor, err).WithParam(p.Name)
	}
	return nil
}

// ValidateTool checks the program name, every parameter, and that parameter
// names are unique within the tool.
func ValidateTool(t Tool) error {
	if err := validate.Struct(t); err != nil {
		return FromValidation(CodeMalformedDescriptor, err).WithTool(t.Program)
	}
	return nil
}

// Julia keywords plus names the generated code relies on.
var reservedWords = map[string]bool{
	"baremodule": true,
	"begin":      true,
	"break":      true,
	"catch":      true,
	"const":      true,
	"continue":   true,
	"do":         true,
	"else":       true,
	"elseif":     true,
	"end":        true,
	"export":     true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"global":     true,
	"if":         true,
	"import":     true,
	"let":        true,
	"local":      true,
	"macro":      true,
	"module":     true,
	"quote":      true,
	"return":     true,
	"struct":     true,
	"true":       true,
	"try":        true,
	"using":      true,
	"while":      true,
	"nothing":    true,
	"convert":    true,
}

// IsReserved reports whether name cannot be used as a bound variable.
func IsReserved(name string) bool {
	return reservedWords[name]
}

// IsIdentifier reports whether name matches [A-Za-z_][A-Za-z0-9_]* and is
// not reserved. Names are emitted verbatim, so nothing is escaped.
func IsIdentifier(name string) bool {
	if name == "" || IsReserved(name) {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// IsTypeExpr reports whether s is a Julia type expression such as
// "Float64", "Array{Float64, 2}" or "Base.Vector{UInt}". Only identifier
// characters, digits, '.', ',', spaces and balanced braces are allowed, so
// the expression cannot close the surrounding convert(...) call.
func IsTypeExpr(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if c := s[0]; !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == ',', c == ' ':
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth < 0 {
				return false
			}
		default:
			return false
		}
	}
	return depth == 0
}

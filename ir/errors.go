package ir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// CodeConfiguration means a static type matched zero or several
	// categories. The upstream type model is inconsistent.
	CodeConfiguration ErrorCode = "configuration"

	// CodeMalformedDescriptor means a parameter descriptor cannot be
	// rendered, e.g. a missing name or an empty stripped type name.
	CodeMalformedDescriptor ErrorCode = "malformed_descriptor"

	// CodeInvalidConfig means the generator configuration is invalid.
	CodeInvalidConfig ErrorCode = "invalid_config"

	// CodeInvalidManifest means a tool manifest could not be decoded.
	CodeInvalidManifest ErrorCode = "invalid_manifest"

	// CodeInvalidSource means annotated Go source could not be turned into
	// tool descriptors.
	CodeInvalidSource ErrorCode = "invalid_source"
)

// Error is a generation failure for one tool or parameter.
// Any Error aborts generation for the tool it belongs to.
type Error struct {
	Code    ErrorCode
	Tool    string // program name, if known
	Param   string // parameter name, if known
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	if e.Tool != "" {
		b.WriteString(": tool ")
		b.WriteString(e.Tool)
	}
	if e.Param != "" {
		b.WriteString(": param ")
		b.WriteString(e.Param)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new generation error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new generation error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithTool returns a copy of the error attributed to the given tool.
func (e *Error) WithTool(program string) *Error {
	c := *e
	c.Tool = program
	return &c
}

// WithParam returns a copy of the error attributed to the given parameter.
func (e *Error) WithParam(name string) *Error {
	c := *e
	c.Param = name
	return &c
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Code
	}
	return ""
}

// FromValidation converts validator errors into a single *Error with the
// given code. Other errors are wrapped unchanged.
func FromValidation(code ErrorCode, err error) *Error {
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return &Error{Code: code, Message: "validation failed", Err: err}
	}

	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Namespace()+": "+formatValidationError(ve))
	}
	return &Error{
		Code:    code,
		Message: strings.Join(messages, "; "),
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "unique":
		return "must not contain duplicates"
	case tagIdentifier:
		return fmt.Sprintf("%q is not a usable Julia identifier", ve.Value())
	case tagTypeExpr:
		return fmt.Sprintf("%q is not a Julia type expression", ve.Value())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

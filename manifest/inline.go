package manifest

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/broady/jlbind/ir"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(false)
	return d
}

// InlineParam is a parameter given on the command line as a query string:
//
//	name=verbose&type=bool
//	name=input_model&model=LinearRegression<>&required=true
type InlineParam struct {
	Name        string `schema:"name,required"`
	Type        string `schema:"type"`
	Model       string `schema:"model"`
	Required    bool   `schema:"required"`
	TypeName    string `schema:"type_name"`
	Julia       string `schema:"julia"`
	Description string `schema:"description"`
}

// Spec converts the inline form to a ParamSpec.
func (p InlineParam) Spec() ParamSpec {
	return ParamSpec{
		Name:        p.Name,
		Required:    p.Required,
		Type:        TypeSpec{Alias: p.Type},
		Model:       p.Model,
		TypeName:    p.TypeName,
		Julia:       p.Julia,
		Description: p.Description,
	}
}

// ParseInline decodes one query-style parameter spec.
func ParseInline(spec string) (InlineParam, error) {
	values, err := url.ParseQuery(spec)
	if err != nil {
		return InlineParam{}, &ir.Error{Code: ir.CodeInvalidManifest, Message: "bad inline parameter " + spec, Err: err}
	}
	var p InlineParam
	if err := decoder.Decode(&p, values); err != nil {
		return InlineParam{}, &ir.Error{Code: ir.CodeInvalidManifest, Message: "bad inline parameter " + spec, Err: err}
	}
	return p, nil
}

// DecodeInline builds a tool from inline parameter specs, in order.
func DecodeInline(program string, specs []string) (ir.Tool, error) {
	ts := ToolSpec{Program: program}
	for _, s := range specs {
		p, err := ParseInline(s)
		if err != nil {
			return ir.Tool{}, err
		}
		ts.Parameters = append(ts.Parameters, p.Spec())
	}
	if err := ir.Validator().Struct(&ts); err != nil {
		return ir.Tool{}, ir.FromValidation(ir.CodeInvalidManifest, err).WithTool(program)
	}
	t, err := ts.Tool()
	if err != nil {
		return ir.Tool{}, err
	}
	t.Source = "inline"
	return t, nil
}

package provider

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

const tagKey = "jlbind"

// fieldOptions is the parsed form of a `jlbind:"..."` struct tag.
type fieldOptions struct {
	name     string
	skip     bool
	required bool
	row      bool
	col      bool
	enum     bool
	julia    string // target type override
	typeName string // accessor type name override
}

// parseTag parses a struct tag value such as
//
//	`jlbind:"input_model,required,typename=LinearRegression<>"`
//
// The first element is the parameter name; an empty name derives one from
// the field name. A name of "-" skips the field.
func parseTag(fieldName, tag string) (fieldOptions, error) {
	raw, _ := reflect.StructTag(tag).Lookup(tagKey)
	parts := strings.Split(raw, ",")

	opts := fieldOptions{name: parts[0]}
	if opts.name == "-" && len(parts) == 1 {
		opts.skip = true
		return opts, nil
	}
	if opts.name == "" {
		opts.name = snakeCase(fieldName)
	}

	for _, p := range parts[1:] {
		key, value, hasValue := strings.Cut(p, "=")
		switch key {
		case "required":
			opts.required = true
		case "row":
			opts.row = true
		case "col":
			opts.col = true
		case "enum":
			opts.enum = true
		case "julia":
			opts.julia = value
		case "typename":
			opts.typeName = value
		default:
			return fieldOptions{}, fmt.Errorf("unknown tag option %q", p)
		}
		if hasValue && (key != "julia" && key != "typename") {
			return fieldOptions{}, fmt.Errorf("tag option %q takes no value", key)
		}
		if !hasValue && (key == "julia" || key == "typename") {
			return fieldOptions{}, fmt.Errorf("tag option %q needs a value", key)
		}
	}
	return opts, nil
}

// snakeCase converts a Go field name to a lower-case parameter name:
// "InputModel" -> "input_model", "KNNCount" -> "knn_count".
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			startsWord := i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])))
			if startsWord {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

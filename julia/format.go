package julia

import (
	"regexp"
	"strings"

	"github.com/broady/jlbind/ir"
)

// indentWidth is the number of spaces per indentation level.
const indentWidth = 2

// Indent returns the leading whitespace for the given level.
func Indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*indentWidth)
}

// GuardLevel returns the level of the store statement: base when the
// parameter is required, one deeper when it sits inside a nothing-check.
func GuardLevel(required bool, base int) int {
	if required {
		return base
	}
	return base + 1
}

// Suffix returns the accessor suffix for a matrix-like parameter: "U" for
// unsigned elements followed by "Row", "Col" or nothing for the shape.
func Suffix(unsigned bool, shape ir.Shape) string {
	var s string
	if unsigned {
		s = "U"
	}
	switch shape {
	case ir.ShapeRowVector:
		s += "Row"
	case ir.ShapeColumnVector:
		s += "Col"
	}
	return s
}

var (
	emptyTemplate = regexp.MustCompile(`<\s*>`)
	qualifierWord = regexp.MustCompile(`\b(const|volatile|typename|struct|class)\b`)
	namespacePart = regexp.MustCompile(`(?:[A-Za-z_][A-Za-z0-9_]*)?\s*::\s*`)
	nonIdentRun   = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// StripQualifiers collapses a source type spelling into a bare identifier
// usable inside a generated function name.
//
//	LinearRegression<>            -> LinearRegression
//	const mlpack::HMM<GMM>&       -> HMM_GMM
//	RAModel<NeighborSearch, Tree> -> RAModel_NeighborSearch_Tree
//
// The result is empty when nothing identifier-like remains.
func StripQualifiers(typeName string) string {
	s := emptyTemplate.ReplaceAllString(typeName, "")
	s = qualifierWord.ReplaceAllString(s, " ")
	s = namespacePart.ReplaceAllString(s, "")
	s = nonIdentRun.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

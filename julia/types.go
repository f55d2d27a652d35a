package julia

import (
	"github.com/broady/jlbind/ir"
)

// TargetType returns the Julia type a parameter is converted to before it
// is stored. It returns "" for classifications it has no mapping for.
func TargetType(c ir.Classification) string {
	switch c := c.(type) {
	case ir.Plain:
		return primitiveType(c.Kind)
	case ir.MatrixLike:
		elem := elementType(c.Element)
		if elem == "" {
			return ""
		}
		dims := "2"
		if c.Shape != ir.ShapeGeneral {
			dims = "1"
		}
		return "Array{" + elem + ", " + dims + "}"
	case ir.ObjectLike:
		return StripQualifiers(c.TypeName)
	default:
		return ""
	}
}

// ResolveTargetType honours a descriptor's explicit override.
func ResolveTargetType(p ir.ParameterDescriptor, c ir.Classification) string {
	if p.TargetType != "" {
		return p.TargetType
	}
	return TargetType(c)
}

func primitiveType(k ir.PrimitiveKind) string {
	switch k {
	case ir.PrimitiveBool:
		return "Bool"
	case ir.PrimitiveInt:
		return "Int"
	case ir.PrimitiveDouble:
		return "Float64"
	case ir.PrimitiveFloat:
		return "Float32"
	case ir.PrimitiveString, ir.PrimitiveEnum:
		return "String"
	case ir.PrimitiveStringVector:
		return "Vector{String}"
	case ir.PrimitiveIntVector:
		return "Vector{Int}"
	default:
		return ""
	}
}

func elementType(k ir.ElementKind) string {
	switch k {
	case ir.ElementDouble:
		return "Float64"
	case ir.ElementFloat:
		return "Float32"
	case ir.ElementInt:
		return "Int"
	case ir.ElementSize:
		return "UInt"
	default:
		return ""
	}
}

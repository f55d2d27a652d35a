// Package ir defines the intermediate representation handed from parameter
// collectors (manifests, Go source) to the Julia emitter.
//
// A TypeDescriptor is the static type of a parameter as it is known at
// generation time. It carries capabilities rather than a closed kind so the
// classifier can detect descriptors that claim more than one category.
package ir

// PrimitiveKind identifies a plain value type.
type PrimitiveKind int

const (
	PrimitiveNone PrimitiveKind = iota
	PrimitiveBool
	PrimitiveInt
	PrimitiveDouble
	PrimitiveFloat
	PrimitiveString
	PrimitiveStringVector // std::vector<std::string>
	PrimitiveIntVector    // std::vector<int>
	PrimitiveEnum         // enumerated option, passed as a string
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveNone:
		return "None"
	case PrimitiveBool:
		return "Bool"
	case PrimitiveInt:
		return "Int"
	case PrimitiveDouble:
		return "Double"
	case PrimitiveFloat:
		return "Float"
	case PrimitiveString:
		return "String"
	case PrimitiveStringVector:
		return "StringVector"
	case PrimitiveIntVector:
		return "IntVector"
	case PrimitiveEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// ElementKind identifies the element type of a numeric container.
type ElementKind int

const (
	ElementDouble ElementKind = iota
	ElementFloat
	ElementInt
	ElementSize // size_t; the only element kind with the unsigned accessor marker
)

// String returns the string representation of the element kind.
func (k ElementKind) String() string {
	switch k {
	case ElementDouble:
		return "Double"
	case ElementFloat:
		return "Float"
	case ElementInt:
		return "Int"
	case ElementSize:
		return "Size"
	default:
		return "Unknown"
	}
}

// IsUnsignedIntegral reports whether containers of this element kind use the
// unsigned accessor family.
func (k ElementKind) IsUnsignedIntegral() bool {
	return k == ElementSize
}

// Container describes a native numeric container (matrix, row, column).
type Container struct {
	Element ElementKind

	// SingleRow is set when the container is statically a single row.
	SingleRow bool

	// SingleCol is set when the container is statically a single column.
	SingleCol bool
}

// TypeDescriptor is the static type of a parameter.
type TypeDescriptor struct {
	// Name is the source-level spelling of the type, e.g. "double",
	// "arma::Mat<size_t>" or "LinearRegression<>".
	Name string

	// Primitive is set for plain value types.
	Primitive PrimitiveKind

	// Container is non-nil for native numeric containers.
	Container *Container

	// Serializable marks types that support structured serialization.
	Serializable bool
}

// IsZero reports whether the descriptor carries no information at all.
func (t TypeDescriptor) IsZero() bool {
	return t.Name == "" && t.Primitive == PrimitiveNone && t.Container == nil && !t.Serializable
}

// Convenience constructors for the types the engine understands.

// Bool returns the descriptor for bool.
func Bool() TypeDescriptor {
	return TypeDescriptor{Name: "bool", Primitive: PrimitiveBool}
}

// Int returns the descriptor for int.
func Int() TypeDescriptor {
	return TypeDescriptor{Name: "int", Primitive: PrimitiveInt}
}

// Double returns the descriptor for double.
func Double() TypeDescriptor {
	return TypeDescriptor{Name: "double", Primitive: PrimitiveDouble}
}

// Float returns the descriptor for float.
func Float() TypeDescriptor {
	return TypeDescriptor{Name: "float", Primitive: PrimitiveFloat}
}

// String returns the descriptor for std::string.
func String() TypeDescriptor {
	return TypeDescriptor{Name: "std::string", Primitive: PrimitiveString}
}

// StringVector returns the descriptor for std::vector<std::string>.
func StringVector() TypeDescriptor {
	return TypeDescriptor{Name: "std::vector<std::string>", Primitive: PrimitiveStringVector}
}

// IntVector returns the descriptor for std::vector<int>.
func IntVector() TypeDescriptor {
	return TypeDescriptor{Name: "std::vector<int>", Primitive: PrimitiveIntVector}
}

// Enum returns the descriptor for a string-valued enumerated option.
func Enum() TypeDescriptor {
	return TypeDescriptor{Name: "std::string", Primitive: PrimitiveEnum}
}

// Armadillo containers are serializable; the classifier still treats them
// as matrices.

// Mat returns the descriptor for arma::mat.
func Mat() TypeDescriptor {
	return container("arma::mat", ElementDouble, false, false)
}

// UMat returns the descriptor for arma::Mat<size_t>.
func UMat() TypeDescriptor {
	return container("arma::Mat<size_t>", ElementSize, false, false)
}

// Row returns the descriptor for arma::rowvec.
func Row() TypeDescriptor {
	return container("arma::rowvec", ElementDouble, true, false)
}

// URow returns the descriptor for arma::Row<size_t>.
func URow() TypeDescriptor {
	return container("arma::Row<size_t>", ElementSize, true, false)
}

// Col returns the descriptor for arma::vec.
func Col() TypeDescriptor {
	return container("arma::vec", ElementDouble, false, true)
}

// UCol returns the descriptor for arma::Col<size_t>.
func UCol() TypeDescriptor {
	return container("arma::Col<size_t>", ElementSize, false, true)
}

// Model returns the descriptor for a serializable model type such as
// "LinearRegression<>".
func Model(name string) TypeDescriptor {
	return TypeDescriptor{Name: name, Serializable: true}
}

func container(name string, elem ElementKind, row, col bool) TypeDescriptor {
	return TypeDescriptor{
		Name:         name,
		Container:    &Container{Element: elem, SingleRow: row, SingleCol: col},
		Serializable: true,
	}
}

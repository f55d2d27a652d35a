package ir

// Category identifies which emission strategy applies to a parameter.
type Category int

const (
	CategoryPlain Category = iota
	CategoryMatrixLike
	CategoryObjectLike
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryPlain:
		return "Plain"
	case CategoryMatrixLike:
		return "MatrixLike"
	case CategoryObjectLike:
		return "ObjectLike"
	default:
		return "Unknown"
	}
}

// Shape is the static shape of a matrix-like parameter.
type Shape int

const (
	ShapeGeneral Shape = iota
	ShapeRowVector
	ShapeColumnVector
)

// String returns the string representation of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeGeneral:
		return "General"
	case ShapeRowVector:
		return "RowVector"
	case ShapeColumnVector:
		return "ColumnVector"
	default:
		return "Unknown"
	}
}

// Classification is the resolved category of a parameter's static type.
// It is one of Plain, MatrixLike or ObjectLike.
type Classification interface {
	// Category returns the category for switching without a type switch.
	Category() Category

	// Ensure only types in this package can implement Classification.
	sealed()
}

// Plain covers scalars, strings, enumerated options and booleans.
type Plain struct {
	Kind PrimitiveKind
}

// MatrixLike covers native numeric containers.
type MatrixLike struct {
	Element ElementKind
	Shape   Shape
}

// ObjectLike covers serializable types that are not containers.
type ObjectLike struct {
	// TypeName is the undecorated source spelling, e.g. "LinearRegression<>".
	TypeName string
}

// Category returns CategoryPlain.
func (Plain) Category() Category { return CategoryPlain }

// Category returns CategoryMatrixLike.
func (MatrixLike) Category() Category { return CategoryMatrixLike }

// Category returns CategoryObjectLike.
func (ObjectLike) Category() Category { return CategoryObjectLike }

// ElementIsUnsignedIntegral reports whether the unsigned accessor marker applies.
func (m MatrixLike) ElementIsUnsignedIntegral() bool {
	return m.Element.IsUnsignedIntegral()
}

func (Plain) sealed()      {}
func (MatrixLike) sealed() {}
func (ObjectLike) sealed() {}

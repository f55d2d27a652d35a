package julia

import (
	"strings"
	"testing"

	"github.com/broady/jlbind/ir"
)

func TestSuffix(t *testing.T) {
	tests := []struct {
		unsigned bool
		shape    ir.Shape
		want     string
	}{
		{false, ir.ShapeGeneral, ""},
		{false, ir.ShapeRowVector, "Row"},
		{false, ir.ShapeColumnVector, "Col"},
		{true, ir.ShapeGeneral, "U"},
		{true, ir.ShapeRowVector, "URow"},
		{true, ir.ShapeColumnVector, "UCol"},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			got := Suffix(tt.unsigned, tt.shape)
			if got != tt.want {
				t.Errorf("Suffix(%v, %v) = %q, want %q", tt.unsigned, tt.shape, got, tt.want)
			}
			if again := Suffix(tt.unsigned, tt.shape); again != got {
				t.Errorf("Suffix not stable: %q then %q", got, again)
			}
			if tt.unsigned && !strings.HasPrefix(got, "U") {
				t.Errorf("unsigned marker must precede the shape suffix, got %q", got)
			}
		})
	}
}

func TestStripQualifiers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LinearRegression<>", "LinearRegression"},
		{"LinearRegression", "LinearRegression"},
		{"mlpack::LinearRegression<>", "LinearRegression"},
		{"const mlpack::regression::LinearRegression<>&", "LinearRegression"},
		{"HMM<GMM>", "HMM_GMM"},
		{"mlpack::HMM<mlpack::GMM>*", "HMM_GMM"},
		{"RAModel<NeighborSearch, KDTree>", "RAModel_NeighborSearch_KDTree"},
		{"std::tuple<data::DatasetInfo, arma::mat>", "tuple_DatasetInfo_mat"},
		{"  DTree< >  ", "DTree"},
		{"ConstantModel", "ConstantModel"},
		{"<>", ""},
		{"const &", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StripQualifiers(tt.in)
			if got != tt.want {
				t.Errorf("StripQualifiers(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if strings.ContainsAny(got, "<>:&*, ") {
				t.Errorf("StripQualifiers(%q) = %q still contains decoration", tt.in, got)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{-1, ""},
		{0, ""},
		{1, "  "},
		{2, "    "},
		{3, "      "},
	}
	for _, tt := range tests {
		if got := Indent(tt.level); got != tt.want {
			t.Errorf("Indent(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestGuardLevel(t *testing.T) {
	if got := GuardLevel(true, 1); got != 1 {
		t.Errorf("GuardLevel(required) = %d, want 1", got)
	}
	if got := GuardLevel(false, 1); got != 2 {
		t.Errorf("GuardLevel(optional) = %d, want 2", got)
	}
}

func TestTargetType(t *testing.T) {
	tests := []struct {
		name string
		c    ir.Classification
		want string
	}{
		{"bool", ir.Plain{Kind: ir.PrimitiveBool}, "Bool"},
		{"int", ir.Plain{Kind: ir.PrimitiveInt}, "Int"},
		{"double", ir.Plain{Kind: ir.PrimitiveDouble}, "Float64"},
		{"float", ir.Plain{Kind: ir.PrimitiveFloat}, "Float32"},
		{"string", ir.Plain{Kind: ir.PrimitiveString}, "String"},
		{"enum", ir.Plain{Kind: ir.PrimitiveEnum}, "String"},
		{"vector<string>", ir.Plain{Kind: ir.PrimitiveStringVector}, "Vector{String}"},
		{"vector<int>", ir.Plain{Kind: ir.PrimitiveIntVector}, "Vector{Int}"},
		{"none", ir.Plain{Kind: ir.PrimitiveNone}, ""},
		{"mat", ir.MatrixLike{Element: ir.ElementDouble}, "Array{Float64, 2}"},
		{"umat", ir.MatrixLike{Element: ir.ElementSize}, "Array{UInt, 2}"},
		{"row", ir.MatrixLike{Element: ir.ElementDouble, Shape: ir.ShapeRowVector}, "Array{Float64, 1}"},
		{"ucol", ir.MatrixLike{Element: ir.ElementSize, Shape: ir.ShapeColumnVector}, "Array{UInt, 1}"},
		{"fmat", ir.MatrixLike{Element: ir.ElementFloat}, "Array{Float32, 2}"},
		{"imat", ir.MatrixLike{Element: ir.ElementInt}, "Array{Int, 2}"},
		{"model", ir.ObjectLike{TypeName: "mlpack::LinearRegression<>"}, "LinearRegression"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetType(tt.c); got != tt.want {
				t.Errorf("TargetType(%#v) = %q, want %q", tt.c, got, tt.want)
			}
		})
	}
}

func TestResolveTargetType_Override(t *testing.T) {
	p := ir.ParameterDescriptor{Name: "data", Type: ir.Col(), TargetType: "Mat"}
	if got := ResolveTargetType(p, ir.MatrixLike{Shape: ir.ShapeColumnVector}); got != "Mat" {
		t.Errorf("ResolveTargetType() = %q, want Mat", got)
	}
}

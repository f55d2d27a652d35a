package julia

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/broady/jlbind/classify"
	"github.com/broady/jlbind/ir"
)

func emit(t *testing.T, e *Emitter, p ir.ParameterDescriptor, c ir.Classification) string {
	t.Helper()
	var buf bytes.Buffer
	if err := e.EmitParameter(&buf, p, c); err != nil {
		t.Fatalf("EmitParameter(%s) error = %v", p.Name, err)
	}
	return buf.String()
}

func TestEmitParameter_Scenarios(t *testing.T) {
	e := NewEmitter(Config{})

	tests := []struct {
		name string
		p    ir.ParameterDescriptor
		c    ir.Classification
		want string
	}{
		{
			name: "optional plain bool",
			p:    ir.ParameterDescriptor{Name: "verbose", Type: ir.Bool(), TargetType: "Bool"},
			c:    ir.Plain{Kind: ir.PrimitiveBool},
			want: "  if verbose !== nothing\n" +
				"    Store(\"verbose\", convert(Bool, verbose))\n" +
				"  end\n",
		},
		{
			name: "required column vector",
			p:    ir.ParameterDescriptor{Name: "data", Required: true, Type: ir.Col(), TargetType: "Mat"},
			c:    ir.MatrixLike{Element: ir.ElementDouble, Shape: ir.ShapeColumnVector},
			want: "  StoreCol(\"data\", convert(Mat, data))\n",
		},
		{
			name: "required model",
			p: ir.ParameterDescriptor{
				Name:               "model",
				Required:           true,
				Type:               ir.Model("LinearRegression<>"),
				UnderlyingTypeName: "LinearRegression<>",
				TargetType:         "LinearRegression",
			},
			c:    ir.ObjectLike{TypeName: "LinearRegression<>"},
			want: "  StoreLinearRegressionPtr(\"model\", convert(LinearRegression, model))\n",
		},
		{
			name: "optional unsigned row",
			p:    ir.ParameterDescriptor{Name: "labels", Type: ir.URow()},
			c:    ir.MatrixLike{Element: ir.ElementSize, Shape: ir.ShapeRowVector},
			want: "  if labels !== nothing\n" +
				"    StoreURow(\"labels\", convert(Array{UInt, 1}, labels))\n" +
				"  end\n",
		},
		{
			name: "required general matrix",
			p:    ir.ParameterDescriptor{Name: "training", Required: true, Type: ir.Mat()},
			c:    ir.MatrixLike{Element: ir.ElementDouble, Shape: ir.ShapeGeneral},
			want: "  Store(\"training\", convert(Array{Float64, 2}, training))\n",
		},
		{
			name: "optional model",
			p:    ir.ParameterDescriptor{Name: "input_model", Type: ir.Model("mlpack::HMM<GMM>")},
			c:    ir.ObjectLike{TypeName: "mlpack::HMM<GMM>"},
			want: "  if input_model !== nothing\n" +
				"    StoreHMM_GMMPtr(\"input_model\", convert(HMM_GMM, input_model))\n" +
				"  end\n",
		},
		{
			name: "required string vector",
			p:    ir.ParameterDescriptor{Name: "names", Required: true, Type: ir.StringVector()},
			c:    ir.Plain{Kind: ir.PrimitiveStringVector},
			want: "  Store(\"names\", convert(Vector{String}, names))\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emit(t, e, tt.p, tt.c); got != tt.want {
				t.Errorf("EmitParameter() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestEmitParameter_ColumnZero(t *testing.T) {
	zero := 0
	e := NewEmitter(Config{BaseIndent: &zero})
	p := ir.ParameterDescriptor{Name: "verbose", Type: ir.Bool(), TargetType: "Bool"}
	got := emit(t, e, p, ir.Plain{Kind: ir.PrimitiveBool})
	want := "if verbose !== nothing\n" +
		"  Store(\"verbose\", convert(Bool, verbose))\n" +
		"end\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestNewEmitter_BaseIndent(t *testing.T) {
	level := func(n int) *int { return &n }
	p := ir.ParameterDescriptor{Name: "k", Required: true, Type: ir.Int()}
	tests := []struct {
		name string
		base *int
		want string
	}{
		{"default", nil, "  Store(\"k\", convert(Int, k))\n"},
		{"column zero", level(0), "Store(\"k\", convert(Int, k))\n"},
		{"explicit one", level(1), "  Store(\"k\", convert(Int, k))\n"},
		{"two", level(2), "    Store(\"k\", convert(Int, k))\n"},
		{"negative clamps to zero", level(-3), "Store(\"k\", convert(Int, k))\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := emit(t, NewEmitter(Config{BaseIndent: tt.base}), p, ir.Plain{Kind: ir.PrimitiveInt})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitParameter_StorePrefix(t *testing.T) {
	e := NewEmitter(Config{StorePrefix: "CLISetParam"})
	p := ir.ParameterDescriptor{Name: "labels", Required: true, Type: ir.UCol()}
	got := emit(t, e, p, ir.MatrixLike{Element: ir.ElementSize, Shape: ir.ShapeColumnVector})
	want := "  CLISetParamUCol(\"labels\", convert(Array{UInt, 1}, labels))\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// Removing the guard lines from an optional parameter and de-indenting must
// give the required rendering.
func TestEmitParameter_GuardStripsToRequired(t *testing.T) {
	e := NewEmitter(Config{})
	cases := []struct {
		td ir.TypeDescriptor
		c  ir.Classification
	}{
		{ir.Double(), ir.Plain{Kind: ir.PrimitiveDouble}},
		{ir.UMat(), ir.MatrixLike{Element: ir.ElementSize}},
		{ir.Model("Perceptron<>"), ir.ObjectLike{TypeName: "Perceptron<>"}},
	}
	for _, tc := range cases {
		t.Run(tc.td.Name, func(t *testing.T) {
			required := emit(t, e, ir.ParameterDescriptor{Name: "x", Required: true, Type: tc.td}, tc.c)
			optional := emit(t, e, ir.ParameterDescriptor{Name: "x", Type: tc.td}, tc.c)

			lines := strings.Split(strings.TrimSuffix(optional, "\n"), "\n")
			if len(lines) != 3 {
				t.Fatalf("optional output has %d lines, want 3:\n%s", len(lines), optional)
			}
			if lines[0] != "  if x !== nothing" || lines[2] != "  end" {
				t.Errorf("unexpected guard lines: %q / %q", lines[0], lines[2])
			}
			inner := strings.TrimPrefix(lines[1], Indent(1))
			if inner+"\n" != required {
				t.Errorf("de-indented %q != required %q", inner+"\n", required)
			}
			if strings.Count(required, "\n") != 1 {
				t.Errorf("required output should be a single line, got %q", required)
			}
		})
	}
}

func TestEmitParameter_Idempotent(t *testing.T) {
	e := NewEmitter(Config{})
	p := ir.ParameterDescriptor{Name: "input_model", Type: ir.Model("LinearRegression<>")}
	c := ir.ObjectLike{TypeName: "LinearRegression<>"}

	var a, b bytes.Buffer
	if err := e.EmitParameter(&a, p, c); err != nil {
		t.Fatal(err)
	}
	if err := e.EmitParameter(&b, p, c); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("outputs differ:\n%s\n---\n%s", a.String(), b.String())
	}
}

func TestEmitParameter_Errors(t *testing.T) {
	e := NewEmitter(Config{})
	tests := []struct {
		name     string
		p        ir.ParameterDescriptor
		c        ir.Classification
		wantCode ir.ErrorCode
	}{
		{
			name:     "missing name",
			p:        ir.ParameterDescriptor{Type: ir.Bool()},
			c:        ir.Plain{Kind: ir.PrimitiveBool},
			wantCode: ir.CodeMalformedDescriptor,
		},
		{
			name:     "empty stripped type",
			p:        ir.ParameterDescriptor{Name: "m", Type: ir.Model("<>")},
			c:        ir.ObjectLike{TypeName: "<>"},
			wantCode: ir.CodeMalformedDescriptor,
		},
		{
			name:     "plain without a Julia type",
			p:        ir.ParameterDescriptor{Name: "x", Type: ir.TypeDescriptor{Name: "void"}},
			c:        ir.Plain{},
			wantCode: ir.CodeMalformedDescriptor,
		},
		{
			name:     "target override breaking out of convert",
			p:        ir.ParameterDescriptor{Name: "x", Type: ir.Bool(), TargetType: `Bool"); rm("x`},
			c:        ir.Plain{Kind: ir.PrimitiveBool},
			wantCode: ir.CodeMalformedDescriptor,
		},
		{
			name:     "nil classification",
			p:        ir.ParameterDescriptor{Name: "x", Type: ir.Bool()},
			c:        nil,
			wantCode: ir.CodeConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := e.EmitParameter(&buf, tt.p, tt.c)
			if err == nil {
				t.Fatalf("EmitParameter() wrote %q, want error", buf.String())
			}
			if ir.CodeOf(err) != tt.wantCode {
				t.Errorf("CodeOf() = %q, want %q (err: %v)", ir.CodeOf(err), tt.wantCode, err)
			}
			if buf.Len() != 0 {
				t.Errorf("buffer should be untouched on error, got %q", buf.String())
			}
		})
	}
}

func TestEmitTool_Ordering(t *testing.T) {
	e := NewEmitter(Config{})
	tool := ir.Tool{
		Program: "linear_regression",
		Parameters: []ir.ParameterDescriptor{
			{Name: "training", Type: ir.Mat()},
			{Name: "training_responses", Type: ir.Row()},
			{Name: "input_model", Type: ir.Model("LinearRegression<>")},
			{Name: "test", Type: ir.Mat()},
			{Name: "lambda", Type: ir.Double()},
			{Name: "verbose", Type: ir.Bool()},
		},
	}

	got, err := e.EmitTool(tool)
	if err != nil {
		t.Fatal(err)
	}

	var want bytes.Buffer
	for _, p := range tool.Parameters {
		c, err := classify.Parameter(p)
		if err != nil {
			t.Fatal(err)
		}
		if err := e.EmitParameter(&want, p, c); err != nil {
			t.Fatal(err)
		}
	}
	if string(got) != want.String() {
		t.Errorf("EmitTool() =\n%s\nwant concatenation:\n%s", got, want.String())
	}
	if strings.Count(string(got), "!== nothing") != strings.Count(string(got), "  end\n") {
		t.Error("every guard must be closed exactly once")
	}
}

func TestEmitTool_AbortsWholeTool(t *testing.T) {
	e := NewEmitter(Config{})
	tool := ir.Tool{
		Program: "pca",
		Parameters: []ir.ParameterDescriptor{
			{Name: "input", Required: true, Type: ir.Mat()},
			{Name: "model", Type: ir.Model("<>")},
		},
	}
	out, err := e.EmitTool(tool)
	if err == nil {
		t.Fatalf("EmitTool() = %q, want error", out)
	}
	if out != nil {
		t.Errorf("EmitTool() should return no text on error, got %q", out)
	}
	var genErr *ir.Error
	if !errors.As(err, &genErr) || genErr.Tool != "pca" || genErr.Param != "model" {
		t.Errorf("error attribution wrong: %v", err)
	}
	if n := strings.Count(err.Error(), "pca"); n != 1 {
		t.Errorf("program named %d times in %q, want once", n, err.Error())
	}
}

func TestEmitTool_ConfigurationError(t *testing.T) {
	e := NewEmitter(Config{})
	tool := ir.Tool{
		Program: "pca",
		Parameters: []ir.ParameterDescriptor{
			{Name: "x", Type: ir.TypeDescriptor{Name: "Weird", Primitive: ir.PrimitiveInt, Serializable: true}},
		},
	}
	if _, err := e.EmitTool(tool); ir.CodeOf(err) != ir.CodeConfiguration {
		t.Errorf("EmitTool() error = %v, want configuration error", err)
	}
}

func TestEmitTool_DuplicateNames(t *testing.T) {
	e := NewEmitter(Config{})
	tool := ir.Tool{
		Program: "pca",
		Parameters: []ir.ParameterDescriptor{
			{Name: "x", Type: ir.Int()},
			{Name: "x", Type: ir.Int()},
		},
	}
	if _, err := e.EmitTool(tool); ir.CodeOf(err) != ir.CodeMalformedDescriptor {
		t.Errorf("EmitTool() error = %v, want malformed descriptor", err)
	}
}

func TestBlock_Balance(t *testing.T) {
	var buf bytes.Buffer
	b := newBlock(&buf, 1)
	if err := b.closeGuard(); !errors.Is(err, errUnbalanced) {
		t.Errorf("closeGuard() on empty block = %v, want errUnbalanced", err)
	}
	b.openGuard("a")
	b.openGuard("b")
	b.line("x")
	if b.balanced() {
		t.Error("block with open guards reported balanced")
	}
	if err := b.closeGuard(); err != nil {
		t.Fatal(err)
	}
	if err := b.closeGuard(); err != nil {
		t.Fatal(err)
	}
	if !b.balanced() {
		t.Error("block should be balanced after closing every guard")
	}
	want := "  if a !== nothing\n    if b !== nothing\n      x\n    end\n  end\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

// Package provider collects tool descriptors from annotated Go source.
//
// A tool is a struct type marked with a directive; each exported field is a
// parameter, in declaration order:
//
//	//jlbind:tool linear_regression
//	type LinearRegressionParams struct {
//		Training  [][]float64      `jlbind:"training,required"`
//		Responses []float64        `jlbind:",row"`
//		Model     *LinearRegressor `jlbind:"input_model"`
//		Lambda    float64
//	}
//
// Field types map onto the descriptor model: Go basic types become plain
// values, numeric slices become row or column vectors, slices of slices
// become matrices, and named types with a MarshalBinary method are
// serializable.
package provider

import (
	"fmt"
	"go/ast"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/broady/jlbind/ir"
)

// Load scans the package matching pattern for tool directives.
//
// The pattern follows go command semantics:
//   - "." for current directory
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
func Load(pattern string) ([]ir.Tool, error) {
	return LoadDir(pattern, "")
}

// LoadDir is like Load but allows specifying a working directory.
func LoadDir(pattern, dir string) ([]ir.Tool, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir: dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	var tools []ir.Tool
	for _, file := range pkg.Syntax {
		directives, err := parseFile(pkg.Fset, file)
		if err != nil {
			return nil, &ir.Error{Code: ir.CodeInvalidSource, Message: "bad directive", Err: err}
		}
		for _, d := range directives {
			st := findStruct(file, d.TypeName)
			t, err := collectTool(pkg, d, st)
			if err != nil {
				return nil, err
			}
			tools = append(tools, t)
		}
	}
	return tools, nil
}

func findStruct(file *ast.File, name string) *ast.StructType {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gd.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == name {
				st, _ := ts.Type.(*ast.StructType)
				return st
			}
		}
	}
	return nil
}

func collectTool(pkg *packages.Package, d Directive, st *ast.StructType) (ir.Tool, error) {
	t := ir.Tool{Program: d.Program, Source: d.Pos.String()}
	fail := func(param string, err error) (ir.Tool, error) {
		return ir.Tool{}, &ir.Error{Code: ir.CodeInvalidSource, Tool: d.Program, Param: param, Message: d.TypeName, Err: err}
	}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return fail("", fmt.Errorf("embedded field %s is not supported", types.ExprString(field.Type)))
		}
		var tag string
		if field.Tag != nil {
			tag, _ = strconv.Unquote(field.Tag.Value)
		}
		typ := pkg.TypesInfo.TypeOf(field.Type)

		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}
			opts, err := parseTag(ident.Name, tag)
			if err != nil {
				return fail(ident.Name, err)
			}
			if opts.skip {
				continue
			}

			td, err := descriptorOf(typ, opts, pkg.Types)
			if err != nil {
				return fail(opts.name, err)
			}
			t.Parameters = append(t.Parameters, ir.ParameterDescriptor{
				Name:               opts.name,
				Required:           opts.required,
				Type:               td,
				UnderlyingTypeName: opts.typeName,
				TargetType:         opts.julia,
				Description:        fieldDoc(field),
			})
		}
	}
	return t, nil
}

func fieldDoc(f *ast.Field) string {
	if f.Doc != nil {
		return strings.TrimSpace(f.Doc.Text())
	}
	if f.Comment != nil {
		return strings.TrimSpace(f.Comment.Text())
	}
	return ""
}

// descriptorOf maps a Go field type to a TypeDescriptor. Named types are
// spelled relative to the scanned package.
func descriptorOf(typ types.Type, opts fieldOptions, local *types.Package) (ir.TypeDescriptor, error) {
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = ptr.Elem()
	}

	if named, ok := typ.(*types.Named); ok && isSerializable(named) {
		name := types.TypeString(named, types.RelativeTo(local))
		if _, isStruct := named.Underlying().(*types.Struct); isStruct {
			return ir.Model(name), nil
		}
		// A serializable non-struct keeps whatever capabilities its
		// underlying type has; the classifier rejects the ambiguous ones.
		td, err := descriptorOf(named.Underlying(), opts, local)
		if err != nil {
			return ir.TypeDescriptor{}, err
		}
		td.Name = name
		td.Serializable = true
		return td, nil
	}

	switch u := typ.Underlying().(type) {
	case *types.Basic:
		return basicDescriptor(u, opts)
	case *types.Slice:
		return sliceDescriptor(u, opts)
	}
	return ir.TypeDescriptor{}, fmt.Errorf("unsupported field type %s", types.TypeString(typ, types.RelativeTo(local)))
}

func basicDescriptor(b *types.Basic, opts fieldOptions) (ir.TypeDescriptor, error) {
	info := b.Info()
	switch {
	case info&types.IsBoolean != 0:
		return ir.Bool(), nil
	case info&types.IsString != 0:
		if opts.enum {
			return ir.Enum(), nil
		}
		return ir.String(), nil
	case info&types.IsInteger != 0 && info&types.IsUnsigned == 0:
		return ir.Int(), nil
	case b.Kind() == types.Float64:
		return ir.Double(), nil
	case b.Kind() == types.Float32:
		return ir.Float(), nil
	}
	return ir.TypeDescriptor{}, fmt.Errorf("unsupported basic type %s", b.Name())
}

func sliceDescriptor(s *types.Slice, opts fieldOptions) (ir.TypeDescriptor, error) {
	// [][]T is a dense matrix.
	if inner, ok := s.Elem().Underlying().(*types.Slice); ok {
		elem, err := elementKind(inner.Elem())
		if err != nil {
			return ir.TypeDescriptor{}, err
		}
		if opts.row || opts.col {
			return ir.TypeDescriptor{}, fmt.Errorf("row and col options do not apply to matrices")
		}
		return containerDescriptor(elem, false, false), nil
	}

	if b, ok := s.Elem().Underlying().(*types.Basic); ok && !opts.row && !opts.col {
		switch {
		case b.Info()&types.IsString != 0:
			return ir.StringVector(), nil
		case b.Kind() == types.Int:
			return ir.IntVector(), nil
		}
	}

	elem, err := elementKind(s.Elem())
	if err != nil {
		return ir.TypeDescriptor{}, err
	}
	if !opts.row && !opts.col {
		return containerDescriptor(elem, false, true), nil
	}
	return containerDescriptor(elem, opts.row, opts.col), nil
}

func elementKind(t types.Type) (ir.ElementKind, error) {
	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return 0, fmt.Errorf("unsupported container element %s", t)
	}
	switch b.Kind() {
	case types.Float64:
		return ir.ElementDouble, nil
	case types.Float32:
		return ir.ElementFloat, nil
	case types.Int, types.Int32, types.Int64:
		return ir.ElementInt, nil
	case types.Uint, types.Uint64, types.Uintptr:
		return ir.ElementSize, nil
	}
	return 0, fmt.Errorf("unsupported container element %s", b.Name())
}

// containerDescriptor spells containers the way the native library does,
// so that manifests and Go source produce identical descriptors.
func containerDescriptor(elem ir.ElementKind, row, col bool) ir.TypeDescriptor {
	switch {
	case elem == ir.ElementDouble && !row && !col:
		return ir.Mat()
	case elem == ir.ElementSize && !row && !col:
		return ir.UMat()
	case elem == ir.ElementDouble && row && !col:
		return ir.Row()
	case elem == ir.ElementSize && row && !col:
		return ir.URow()
	case elem == ir.ElementDouble && col && !row:
		return ir.Col()
	case elem == ir.ElementSize && col && !row:
		return ir.UCol()
	}

	// Both flags set falls through to Mat; the classifier rejects it.
	kind := "Mat"
	switch {
	case row && col:
	case row:
		kind = "Row"
	case col:
		kind = "Col"
	}
	return ir.TypeDescriptor{
		Name:         fmt.Sprintf("arma::%s<%s>", kind, nativeElement(elem)),
		Container:    &ir.Container{Element: elem, SingleRow: row, SingleCol: col},
		Serializable: true,
	}
}

func nativeElement(k ir.ElementKind) string {
	switch k {
	case ir.ElementFloat:
		return "float"
	case ir.ElementInt:
		return "int"
	case ir.ElementSize:
		return "size_t"
	}
	return "double"
}

// isSerializable reports whether the named type (or a pointer to it) has a
// MarshalBinary method.
func isSerializable(named *types.Named) bool {
	for _, t := range []types.Type{named, types.NewPointer(named)} {
		ms := types.NewMethodSet(t)
		for i := 0; i < ms.Len(); i++ {
			if ms.At(i).Obj().Name() == "MarshalBinary" {
				return true
			}
		}
	}
	return false
}

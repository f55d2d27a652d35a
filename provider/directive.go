package provider

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const directivePrefix = "//jlbind:"

// Directive is a parsed //jlbind:tool comment attached to a struct type.
type Directive struct {
	Program  string         // program name given in the directive
	TypeName string         // name of the annotated struct type
	Pos      token.Position // source location of the comment
}

// parseFile extracts tool directives from a single file. Each directive must
// sit in the doc comment of a type declaration.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	type pending struct {
		program string
		pos     token.Position
	}
	byGroupEnd := make(map[token.Pos]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, directivePrefix) {
				continue
			}

			parts := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
			if len(parts) == 0 {
				continue
			}

			pos := fset.Position(c.Pos())
			switch parts[0] {
			case "tool":
				if len(parts) != 2 {
					return nil, fmt.Errorf("%s: //jlbind:tool takes exactly one program name", pos)
				}
				if prev, ok := byGroupEnd[cg.End()]; ok {
					return nil, fmt.Errorf("%s: second //jlbind:tool directive (first at %s)", pos, prev.pos)
				}
				byGroupEnd[cg.End()] = pending{program: parts[1], pos: pos}
			default:
				return nil, fmt.Errorf("%s: unknown directive //jlbind:%s", pos, parts[0])
			}
		}
	}

	var directives []Directive
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)

			// A lone "type X struct" carries its doc on the GenDecl; grouped
			// declarations carry it on the spec.
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			if doc == nil {
				continue
			}
			p, ok := byGroupEnd[doc.End()]
			if !ok {
				continue
			}
			if _, isStruct := ts.Type.(*ast.StructType); !isStruct {
				return nil, fmt.Errorf("%s: //jlbind:tool must annotate a struct type, %s is not", p.pos, ts.Name.Name)
			}
			directives = append(directives, Directive{
				Program:  p.program,
				TypeName: ts.Name.Name,
				Pos:      p.pos,
			})
			delete(byGroupEnd, doc.End())
		}
	}

	for _, p := range byGroupEnd {
		return nil, fmt.Errorf("%s: //jlbind:tool directive must be followed by a type declaration", p.pos)
	}

	return directives, nil
}

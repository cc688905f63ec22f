package symbols

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/sirkon/carefulnow/internal/annotation"
)

// Annotated is a declaration of the current package that carries annotations.
type Annotated struct {
	Object      types.Object
	Annotations []annotation.Annotation

	// Local is set for types declared inside function bodies. Such objects
	// are invisible to importers and cannot be exported as facts.
	Local bool
}

// Scan collects annotated declarations of the given files: top level funcs,
// methods, named types and methods of named interfaces, and also types
// declared inside function bodies. The order follows the source.
func Scan(files []*ast.File, info *types.Info) []Annotated {
	s := scanner{info: info}
	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				s.add(d.Name, false, d.Doc)
				if d.Body != nil {
					s.body(d.Body)
				}

			case *ast.GenDecl:
				s.typeDecl(d, false)
			}
		}
	}

	return s.res
}

type scanner struct {
	info *types.Info
	res  []Annotated
}

func (s *scanner) add(name *ast.Ident, local bool, docs ...*ast.CommentGroup) {
	anns := annotation.FromDoc(docs...)
	if len(anns) == 0 {
		return
	}

	obj := s.info.Defs[name]
	if obj == nil {
		// Blank identifiers and broken code.
		return
	}

	s.res = append(s.res, Annotated{
		Object:      obj,
		Annotations: anns,
		Local:       local,
	})
}

// body collects types declared in a function body, function literals included.
func (s *scanner) body(body *ast.BlockStmt) {
	ast.Inspect(body, func(n ast.Node) bool {
		stmt, ok := n.(*ast.DeclStmt)
		if !ok {
			return true
		}

		if d, ok := stmt.Decl.(*ast.GenDecl); ok {
			s.typeDecl(d, true)
		}
		return true
	})
}

func (s *scanner) typeDecl(d *ast.GenDecl, local bool) {
	if d.Tok != token.TYPE {
		return
	}

	for _, spec := range d.Specs {
		ts := spec.(*ast.TypeSpec)

		// Doc of an unparenthesized declaration belongs to its only spec.
		if d.Lparen.IsValid() {
			s.add(ts.Name, local, ts.Doc)
		} else {
			s.add(ts.Name, local, d.Doc, ts.Doc)
		}

		iface, ok := ts.Type.(*ast.InterfaceType)
		if !ok || iface.Methods == nil {
			continue
		}
		for _, field := range iface.Methods.List {
			for _, name := range field.Names {
				s.add(name, local, field.Doc, field.Comment)
			}
		}
	}
}

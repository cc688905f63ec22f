package symbols

import (
	"fmt"
	"go/types"

	"github.com/sirkon/carefulnow/internal/annotation"
)

// DeclKind describes varieties of declarations a call site can resolve to.
type DeclKind int

const (
	DeclKindInvalid DeclKind = iota

	// DeclFunc is a package level function.
	DeclFunc

	// DeclMethod is a method of a named type or an interface.
	DeclMethod

	// DeclType is a named type, the target of constructor sites.
	DeclType
)

var declKindValueMap = map[DeclKind]string{
	DeclFunc:   "func",
	DeclMethod: "method",
	DeclType:   "type",
}

func (k DeclKind) String() string {
	v, ok := declKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

// Declaration is a resolved target of a call site.
type Declaration struct {
	// Object is either *types.Func or *types.TypeName. It is the generic
	// origin for instantiated targets.
	Object types.Object
	Kind   DeclKind

	// Name is the simple name of the declaration.
	Name string

	// Signature is the qualified name of the declaration:
	//
	//	example.com/pkg.Func
	//	(*example.com/pkg.Type).Method
	//	example.com/pkg.Type
	Signature string

	// Annotations are in the order of their appearance in the doc comment.
	// Empty when the declaration has none.
	Annotations []annotation.Annotation
}

func newDeclaration(obj types.Object, anns []annotation.Annotation) *Declaration {
	d := &Declaration{
		Object:      obj,
		Name:        obj.Name(),
		Annotations: anns,
	}

	switch o := obj.(type) {
	case *types.Func:
		d.Kind = DeclFunc
		if o.Signature().Recv() != nil {
			d.Kind = DeclMethod
		}
		d.Signature = o.FullName()

	case *types.TypeName:
		d.Kind = DeclType
		if pkg := o.Pkg(); pkg != nil {
			d.Signature = pkg.Path() + "." + o.Name()
		} else {
			d.Signature = o.Name()
		}
	}

	return d
}

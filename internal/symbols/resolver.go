package symbols

import (
	"fmt"
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/sirkon/carefulnow/internal/annotation"
)

// Outcome tells how the resolution of a site ended.
type Outcome int

const (
	// Resolved means a declaration was found.
	Resolved Outcome = iota

	// Unresolved means there is no type information for the site.
	Unresolved

	// NotDeclared means the site binds to something that is not a declared
	// function, method or named type: builtins, conversions, func values,
	// anonymous composite types.
	NotDeclared
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	case NotDeclared:
		return "not-declared"
	default:
		return fmt.Sprintf("outcome-invalid(%d)", o)
	}
}

// Resolver binds sites to their declarations. It is read only once created
// and is safe for concurrent use.
type Resolver struct {
	info  *types.Info
	known map[types.Object][]annotation.Annotation
}

// NewResolver creates a resolver over the given type information. The known
// map holds annotations of declarations, both local and imported ones. It is
// taken as is and must not be changed afterwards.
func NewResolver(info *types.Info, known map[types.Object][]annotation.Annotation) *Resolver {
	if known == nil {
		known = map[types.Object][]annotation.Annotation{}
	}

	return &Resolver{
		info:  info,
		known: known,
	}
}

// ResolveCall resolves a call expression into the called function or method.
func (r *Resolver) ResolveCall(call *ast.CallExpr) (*Declaration, Outcome) {
	if tv, ok := r.info.Types[call.Fun]; ok && tv.IsType() {
		// T(x) is a conversion.
		return nil, NotDeclared
	}

	obj := typeutil.Callee(r.info, call)
	if obj == nil {
		return nil, Unresolved
	}

	fn, ok := obj.(*types.Func)
	if !ok {
		// Builtins and func typed variables.
		return nil, NotDeclared
	}

	return r.declaration(fn.Origin()), Resolved
}

// ResolveComposite resolves a composite literal into the named type it constructs.
func (r *Resolver) ResolveComposite(lit *ast.CompositeLit) (*Declaration, Outcome) {
	typ := r.info.TypeOf(lit)
	if typ == nil {
		return nil, Unresolved
	}

	// Elided &T in []*T{{…}}.
	if ptr, ok := typ.(*types.Pointer); ok {
		typ = ptr.Elem()
	}

	named, ok := types.Unalias(typ).(*types.Named)
	if !ok {
		return nil, NotDeclared
	}

	return r.declaration(named.Origin().Obj()), Resolved
}

// ResolveFuncDecl resolves a function declaration into its own object.
func (r *Resolver) ResolveFuncDecl(decl *ast.FuncDecl) (*Declaration, Outcome) {
	obj := r.info.Defs[decl.Name]
	if obj == nil {
		return nil, Unresolved
	}

	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, NotDeclared
	}

	return r.declaration(fn), Resolved
}

func (r *Resolver) declaration(obj types.Object) *Declaration {
	return newDeclaration(obj, r.known[obj])
}

package callsite

import (
	"go/ast"

	"github.com/sirkon/carefulnow/internal/rules"
)

// Site is a syntax node rules are evaluated at. The set of implementations is
// closed: [MethodCall], [ConstructorCall] and [MethodDecl].
type Site interface {
	// Node returns the syntax node diagnostics are bound to.
	Node() ast.Node

	// Kind returns the node kind rules subscribe to.
	Kind() rules.NodeKind

	isSite()
}

// MethodCall is a call of a function or a method:
//
//	obj.someMethod()
//	Log.d("tag", "msg")
type MethodCall struct {
	Call *ast.CallExpr
}

// ConstructorCall is a composite literal:
//
//	Store{}
//	&Store{name: "main"}
type ConstructorCall struct {
	Lit *ast.CompositeLit
}

// MethodDecl is a function or a method declaration.
type MethodDecl struct {
	Decl *ast.FuncDecl
}

func (s MethodCall) Node() ast.Node      { return s.Call }
func (s ConstructorCall) Node() ast.Node { return s.Lit }
func (s MethodDecl) Node() ast.Node      { return s.Decl }

func (MethodCall) Kind() rules.NodeKind      { return rules.NodeKindMethodCall }
func (ConstructorCall) Kind() rules.NodeKind { return rules.NodeKindConstructorCall }
func (MethodDecl) Kind() rules.NodeKind      { return rules.NodeKindMethodDecl }

func (MethodCall) isSite()      {}
func (ConstructorCall) isSite() {}
func (MethodDecl) isSite()      {}

// Of wraps a node into a site of the matching kind.
func Of(n ast.Node) (Site, bool) {
	switch v := n.(type) {
	case *ast.CallExpr:
		return MethodCall{Call: v}, true
	case *ast.CompositeLit:
		return ConstructorCall{Lit: v}, true
	case *ast.FuncDecl:
		return MethodDecl{Decl: v}, true
	default:
		return nil, false
	}
}

// NodeTypes returns the node filter for a traversal delivering sites of the given kinds.
func NodeTypes(kinds []rules.NodeKind) []ast.Node {
	var res []ast.Node
	for _, k := range kinds {
		switch k {
		case rules.NodeKindMethodCall:
			res = append(res, (*ast.CallExpr)(nil))
		case rules.NodeKindConstructorCall:
			res = append(res, (*ast.CompositeLit)(nil))
		case rules.NodeKindMethodDecl:
			res = append(res, (*ast.FuncDecl)(nil))
		}
	}

	return res
}

// AppliesTo checks if the file with the given name is to be scanned. Every file is.
func AppliesTo(filename string) bool {
	return true
}

// Package annotation defines declaration annotations as they are written in Go
// source and the analysis fact carrying them across package boundaries.
//
// Go has no annotation syntax, so an annotation is a doc comment directive
// placed right before a declaration:
//
//	//annotation:com.annotations.CarefulNow
//	func (s *Store) Purge() { … }
//
// The first token after the "//annotation:" prefix is the annotation
// signature. Anything after it is a free-form remark and is ignored.
//
// Annotations may be attached to functions, methods, interface methods and
// named types. Being directives, they are stripped by [ast.CommentGroup.Text]
// and never show up in godoc.
package annotation

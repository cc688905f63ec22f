// Package symbols resolves call sites into the declarations they bind to and
// attaches annotations known for these declarations.
package symbols

package rules

import (
	"github.com/sirkon/carefulnow/internal/symbols"
)

// AnnotationMatcher matches declarations carrying the marker annotation.
type AnnotationMatcher struct {
	qualified string
}

// MatchAnnotation creates a matcher for annotation with the given fully qualified name.
func MatchAnnotation(qualified string) *AnnotationMatcher {
	return &AnnotationMatcher{qualified: qualified}
}

// Match gives a hit for every matching annotation instance. An annotation
// referenced twice under different package roots produces two hits.
func (m *AnnotationMatcher) Match(decl *symbols.Declaration) []Hit {
	var hits []Hit
	for i, a := range decl.Annotations {
		if a.Is(m.qualified) {
			hits = append(hits, Hit{Trigger: a.Signature, Index: i})
		}
	}

	return hits
}

// NameMatcher matches functions and methods by their simple names. The package
// and the receiver are not looked at, so anything sharing a name matches too.
type NameMatcher struct {
	known map[string]struct{}
}

// MatchNames creates a matcher over the given closed set of names.
func MatchNames(names ...string) *NameMatcher {
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}

	return &NameMatcher{known: known}
}

// Match gives at most one hit. Types never match.
func (m *NameMatcher) Match(decl *symbols.Declaration) []Hit {
	if decl.Kind == symbols.DeclType {
		return nil
	}

	if _, ok := m.known[decl.Name]; !ok {
		return nil
	}

	return []Hit{{Trigger: decl.Name}}
}

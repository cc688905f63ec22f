package annotation

import (
	"errors"
	"fmt"
	"go/ast"
	"strings"
	"unicode"
)

// DirectivePrefix starts every annotation directive.
const DirectivePrefix = "//annotation:"

// Annotation is a single annotation attached to a declaration.
type Annotation struct {
	// Signature is a fully qualified annotation name, like
	// "com.annotations.CarefulNow" or "example.com/annotations.CarefulNow".
	Signature string
}

// SimpleName returns the terminal segment of the signature, the part after the last dot.
func (a Annotation) SimpleName() string {
	return a.Signature[strings.LastIndexByte(a.Signature, '.')+1:]
}

// Is checks if the annotation is the one with the given fully qualified name.
//
// The signature either equals the name exactly or ends with the name's simple
// part behind a dot. The latter lets an annotation relocated to another package
// root still be recognized while the migration is going on.
func (a Annotation) Is(qualified string) bool {
	if a.Signature == qualified {
		return true
	}

	simple := Annotation{Signature: qualified}.SimpleName()
	if strings.HasSuffix(a.Signature, "."+simple) {
		return true
	}

	return false
}

func (a Annotation) String() string {
	return a.Signature
}

// MarshalText is a counterpart of UnmarshalText. Facts are gob encoded and gob
// needs both of them or none.
func (a Annotation) MarshalText() ([]byte, error) {
	return []byte(a.Signature), nil
}

// UnmarshalText parses annotation signature.
func (a *Annotation) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return errors.New("empty annotation signature")
	}

	// Expected forms:
	//   Name
	//   com.annotations.Name
	//   example.com/pkg/path.Name
	name := s[strings.LastIndexByte(s, '.')+1:]
	if !isIdent(name) {
		return fmt.Errorf("invalid annotation name %q in signature %q", name, s)
	}
	if strings.ContainsFunc(s, unicode.IsSpace) {
		return fmt.Errorf("annotation signature must not contain spaces: %q", s)
	}

	a.Signature = s
	return nil
}

// Parse extracts an annotation from a single comment text. It returns false
// if the comment is not an annotation directive or the directive is malformed.
func Parse(comment string) (Annotation, bool) {
	rest, ok := strings.CutPrefix(comment, DirectivePrefix)
	if !ok {
		return Annotation{}, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Annotation{}, false
	}

	var a Annotation
	if err := a.UnmarshalText([]byte(fields[0])); err != nil {
		return Annotation{}, false
	}

	return a, true
}

// FromDoc collects annotations from the given doc comment groups in the order
// of appearance. Nil groups are fine.
func FromDoc(groups ...*ast.CommentGroup) []Annotation {
	var res []Annotation
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if a, ok := Parse(c.Text); ok {
				res = append(res, a)
			}
		}
	}

	return res
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

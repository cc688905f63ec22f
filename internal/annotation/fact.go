package annotation

import (
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Fact is exported for every annotated declaration of a package, so importers
// see annotations of declarations they have no syntax for.
type Fact struct {
	Annotations []Annotation
}

var _ analysis.Fact = (*Fact)(nil)

func (*Fact) AFact() {}

func (f *Fact) String() string {
	sigs := make([]string, len(f.Annotations))
	for i, a := range f.Annotations {
		sigs[i] = a.Signature
	}

	return "annotations(" + strings.Join(sigs, ", ") + ")"
}

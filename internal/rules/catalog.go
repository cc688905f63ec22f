package rules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Catalog is an immutable ordered set of rules.
type Catalog struct {
	rules []*Rule
	kinds []NodeKind
}

// NewCatalog creates a catalog of the given rules. The order of rules is kept.
func NewCatalog(rules ...*Rule) (*Catalog, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(rules))
	var kinds []NodeKind
	for _, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("%w: nil rule", ErrBadMatcher)
		}
		if _, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("%w %q", ErrDuplicateRule, r.ID)
		}
		seen[r.ID] = struct{}{}
		kinds = append(kinds, r.kinds...)
	}

	slices.Sort(kinds)
	return &Catalog{
		rules: slices.Clone(rules),
		kinds: slices.Compact(kinds),
	}, nil
}

// Builtin loads the catalog embedded into the binary.
func Builtin() (*Catalog, error) {
	return Load(builtinCatalog)
}

// MustBuiltin is like [Builtin] but panics if the embedded catalog is broken,
// which can only be a build time defect.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic(fmt.Errorf("load builtin catalog: %w", err))
	}

	return c
}

// Rules returns rules in the catalog order.
func (c *Catalog) Rules() []*Rule {
	return slices.Clone(c.rules)
}

// All iterates over rules in the catalog order.
func (c *Catalog) All() iter.Seq[*Rule] {
	return slices.Values(c.rules)
}

// Rule looks up a rule by its id.
func (c *Catalog) Rule(id string) (*Rule, bool) {
	for _, r := range c.rules {
		if r.ID == id {
			return r, true
		}
	}

	return nil, false
}

// Kinds returns a sorted union of node kinds rules are subscribed to.
func (c *Catalog) Kinds() []NodeKind {
	return slices.Clone(c.kinds)
}

type catalogDef struct {
	Rules []ruleDef `yaml:"rules"`
}

type ruleDef struct {
	ID          string     `yaml:"id"`
	Category    Category   `yaml:"category"`
	Priority    int        `yaml:"priority"`
	Severity    Severity   `yaml:"severity"`
	Summary     string     `yaml:"summary"`
	Explanation string     `yaml:"explanation"`
	Message     string     `yaml:"message"`
	Kinds       []NodeKind `yaml:"kinds"`
	Match       matchDef   `yaml:"match"`
}

type matchDef struct {
	Annotation string   `yaml:"annotation"`
	Names      []string `yaml:"names"`
}

func (d matchDef) matcher() (Matcher, error) {
	switch {
	case d.Annotation != "" && len(d.Names) > 0:
		return nil, errors.New("annotation and names are mutually exclusive")
	case d.Annotation != "":
		return MatchAnnotation(d.Annotation), nil
	case len(d.Names) > 0:
		for _, name := range d.Names {
			if name == "" {
				return nil, errors.New("empty name in the names list")
			}
		}
		return MatchNames(d.Names...), nil
	default:
		return nil, errors.New("either annotation or names must be set")
	}
}

// Load parses and validates catalog document.
func Load(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def catalogDef
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	rules := make([]*Rule, 0, len(def.Rules))
	for i, rd := range def.Rules {
		m, err := rd.Match.matcher()
		if err != nil {
			return nil, fmt.Errorf("%w: rule #%d %q: %w", ErrBadMatcher, i, rd.ID, err)
		}

		r, err := NewRule(
			Identity{
				ID:       rd.ID,
				Category: rd.Category,
				Priority: rd.Priority,
				Severity: rd.Severity,
			},
			rd.Summary,
			rd.Explanation,
			rd.Message,
			rd.Kinds,
			m,
		)
		if err != nil {
			return nil, fmt.Errorf("rule #%d: %w", i, err)
		}

		rules = append(rules, r)
	}

	c, err := NewCatalog(rules...)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	return c, nil
}

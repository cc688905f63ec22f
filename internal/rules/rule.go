package rules

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirkon/carefulnow/internal/symbols"
)

// Canonical rule identifiers. They are stable: external baselines refer to them.
const (
	CarefulNow      = "CarefulNow"
	SywLogIsNotUsed = "SywLogIsNotUsed"
)

var (
	ErrEmptyID       = errors.New("rule id must not be empty")
	ErrDuplicateRule = errors.New("duplicate rule id")
	ErrNoKinds       = errors.New("rule must be subscribed to at least one node kind")
	ErrBadIdentity   = errors.New("invalid rule identity")
	ErrBadMatcher    = errors.New("invalid rule matcher")
	ErrEmptyCatalog  = errors.New("catalog has no rules")
)

// Identity is what a rule is known by outside: in reports, baselines and such.
type Identity struct {
	ID       string
	Category Category
	Priority int
	Severity Severity
}

// Hit is a single match of a rule against a declaration.
type Hit struct {
	// Trigger is what matched: an annotation signature or a declaration name.
	Trigger string

	// Index is the position of the matched annotation among annotations of
	// the declaration. It tells apart repeated annotations with the same
	// signature. Always zero for name hits.
	Index int
}

// Matcher decides if a declaration violates a rule. It must be pure and safe
// for concurrent use.
type Matcher interface {
	Match(decl *symbols.Declaration) []Hit
}

// Rule is an immutable rule predicate along with its diagnostic metadata.
type Rule struct {
	Identity

	// Summary is a one line description of the rule.
	Summary string

	// Explanation is a longer description for catalog listings.
	Explanation string

	// Message is what is reported at every violation.
	Message string

	kinds   []NodeKind
	matcher Matcher
}

// NewRule creates a rule subscribed to the given node kinds.
func NewRule(id Identity, summary, explanation, message string, kinds []NodeKind, m Matcher) (*Rule, error) {
	if id.ID == "" {
		return nil, ErrEmptyID
	}
	if _, ok := severityValueMap[id.Severity]; !ok {
		return nil, fmt.Errorf("%w: rule %s has %s severity", ErrBadIdentity, id.ID, id.Severity)
	}
	if _, ok := categoryValueMap[id.Category]; !ok {
		return nil, fmt.Errorf("%w: rule %s has %s category", ErrBadIdentity, id.ID, id.Category)
	}
	if id.Priority < 1 || id.Priority > 10 {
		return nil, fmt.Errorf("%w: rule %s priority %d is out of 1..10", ErrBadIdentity, id.ID, id.Priority)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: rule %s", ErrNoKinds, id.ID)
	}
	for _, k := range kinds {
		if _, ok := nodeKindValueMap[k]; !ok {
			return nil, fmt.Errorf("%w: rule %s has %s node kind", ErrBadIdentity, id.ID, k)
		}
	}
	if m == nil {
		return nil, fmt.Errorf("%w: rule %s has no matcher", ErrBadMatcher, id.ID)
	}
	if message == "" {
		message = summary
	}

	kinds = slices.Clone(kinds)
	slices.Sort(kinds)

	return &Rule{
		Identity:    id,
		Summary:     summary,
		Explanation: explanation,
		Message:     message,
		kinds:       slices.Compact(kinds),
		matcher:     m,
	}, nil
}

// Kinds returns node kinds the rule is subscribed to.
func (r *Rule) Kinds() []NodeKind {
	return slices.Clone(r.kinds)
}

// Subscribed checks if the rule wants sites of the given kind.
func (r *Rule) Subscribed(kind NodeKind) bool {
	return slices.Contains(r.kinds, kind)
}

// Match runs the rule predicate over the declaration.
func (r *Rule) Match(decl *symbols.Declaration) []Hit {
	return r.matcher.Match(decl)
}

// String returns the rule id.
func (r *Rule) String() string {
	return r.ID
}

// Description returns the human-readable explanation of the rule.
func (r *Rule) Description() string {
	if r.Summary != "" {
		return r.Summary
	}

	return r.Message
}

package rules

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"
)

func TestBuiltin_IdentityTable(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatal(err)
	}

	var got []Identity
	for r := range c.All() {
		got = append(got, r.Identity)
	}

	want := []Identity{
		{
			ID:       "CarefulNow",
			Category: CategoryUsability,
			Priority: 7,
			Severity: SeverityWarning,
		},
		{
			ID:       "SywLogIsNotUsed",
			Category: CategoryUsability,
			Priority: 9,
			Severity: SeverityError,
		},
	}
	if !slices.Equal(got, want) {
		t.Error("identity table mismatch")
		deepequal.SideBySide(t, "identities", want, got)
	}
}

func TestBuiltin_Rules(t *testing.T) {
	c := MustBuiltin()

	careful, ok := c.Rule(CarefulNow)
	if !ok {
		t.Fatal("no CarefulNow rule")
	}
	const carefulMessage = "This method has special conditions surrounding it's use, " +
		"be careful when calling it and refer to it's documentation."
	if careful.Message != carefulMessage {
		t.Errorf("unexpected CarefulNow message %q", careful.Message)
	}
	if !careful.Subscribed(NodeKindMethodCall) || !careful.Subscribed(NodeKindConstructorCall) {
		t.Errorf("CarefulNow must watch method and constructor calls, got %v", careful.Kinds())
	}

	logs, ok := c.Rule(SywLogIsNotUsed)
	if !ok {
		t.Fatal("no SywLogIsNotUsed rule")
	}
	if logs.Subscribed(NodeKindConstructorCall) {
		t.Error("SywLogIsNotUsed must not watch constructor calls")
	}
	if !strings.Contains(logs.Message, "SywLog") {
		t.Errorf("unexpected SywLogIsNotUsed message %q", logs.Message)
	}

	wantKinds := []NodeKind{NodeKindMethodCall, NodeKindConstructorCall}
	if got := c.Kinds(); !slices.Equal(got, wantKinds) {
		t.Errorf("catalog kinds %v, want %v", got, wantKinds)
	}

	if _, ok := c.Rule("NoSuchRule"); ok {
		t.Error("unknown rule must not be found")
	}
}

func TestBuiltin_Stable(t *testing.T) {
	a := MustBuiltin()
	b := MustBuiltin()

	ra, rb := a.Rules(), b.Rules()
	if len(ra) != len(rb) {
		t.Fatalf("rule counts differ: %d vs %d", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].Identity != rb[i].Identity {
			t.Errorf("rule #%d: %v vs %v", i, ra[i].Identity, rb[i].Identity)
		}
	}

	// Mutating a returned slice must not affect the catalog.
	ra[0] = nil
	if a.Rules()[0] == nil {
		t.Error("Rules() returned the internal slice")
	}
}

func TestLoad_Errors(t *testing.T) {
	const valid = `
  - id: A
    category: usability
    priority: 5
    severity: warning
    summary: a
    kinds: [method-call]
    match:
      annotation: x.A
`

	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{
			name: "empty-document",
			doc:  "",
			err:  ErrEmptyCatalog,
		},
		{
			name: "no-rules",
			doc:  "rules: []",
			err:  ErrEmptyCatalog,
		},
		{
			name: "duplicate-id",
			doc:  "rules:" + valid + valid,
			err:  ErrDuplicateRule,
		},
		{
			name: "empty-id",
			doc: `rules:
  - category: usability
    priority: 5
    severity: warning
    kinds: [method-call]
    match: {annotation: x.A}
`,
			err: ErrEmptyID,
		},
		{
			name: "no-kinds",
			doc: `rules:
  - id: A
    category: usability
    priority: 5
    severity: warning
    match: {annotation: x.A}
`,
			err: ErrNoKinds,
		},
		{
			name: "priority-out-of-range",
			doc: `rules:
  - id: A
    category: usability
    priority: 11
    severity: warning
    kinds: [method-call]
    match: {annotation: x.A}
`,
			err: ErrBadIdentity,
		},
		{
			name: "missing-severity",
			doc: `rules:
  - id: A
    category: usability
    priority: 5
    kinds: [method-call]
    match: {annotation: x.A}
`,
			err: ErrBadIdentity,
		},
		{
			name: "no-matcher",
			doc: `rules:
  - id: A
    category: usability
    priority: 5
    severity: warning
    kinds: [method-call]
`,
			err: ErrBadMatcher,
		},
		{
			name: "both-matchers",
			doc: `rules:
  - id: A
    category: usability
    priority: 5
    severity: warning
    kinds: [method-call]
    match: {annotation: x.A, names: [d]}
`,
			err: ErrBadMatcher,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load([]byte(tt.doc))
			if err == nil {
				t.Fatalf("error expected, got catalog with %d rules", len(c.Rules()))
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("got error %q, want it to be %q", err, tt.err)
			}
		})
	}
}

func TestLoad_DecodeErrors(t *testing.T) {
	docs := map[string]string{
		"unknown-severity": `rules:
  - id: A
    category: usability
    priority: 5
    severity: catastrophic
    kinds: [method-call]
    match: {annotation: x.A}
`,
		"unknown-kind": `rules:
  - id: A
    category: usability
    priority: 5
    severity: warning
    kinds: [field-access]
    match: {annotation: x.A}
`,
		"unknown-field": `rules:
  - id: A
    category: usability
    priority: 5
    severity: warning
    speed: fast
    kinds: [method-call]
    match: {annotation: x.A}
`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			if _, err := Load([]byte(doc)); err == nil {
				t.Fatal("error expected")
			} else {
				t.Log(err)
			}
		})
	}
}

func TestNewCatalog_KindsUnion(t *testing.T) {
	a, err := NewRule(
		Identity{ID: "A", Category: CategoryCorrectness, Priority: 1, Severity: SeverityInformational},
		"a", "", "", []NodeKind{NodeKindMethodDecl, NodeKindMethodCall, NodeKindMethodCall},
		MatchNames("x"),
	)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRule(
		Identity{ID: "B", Category: CategorySecurity, Priority: 10, Severity: SeverityFatal},
		"b", "", "", []NodeKind{NodeKindConstructorCall},
		MatchAnnotation("x.B"),
	)
	if err != nil {
		t.Fatal(err)
	}

	c, err := NewCatalog(a, b)
	if err != nil {
		t.Fatal(err)
	}

	want := []NodeKind{NodeKindMethodCall, NodeKindConstructorCall, NodeKindMethodDecl}
	if got := c.Kinds(); !slices.Equal(got, want) {
		t.Errorf("kinds %v, want %v", got, want)
	}
	if got := a.Kinds(); !slices.Equal(got, []NodeKind{NodeKindMethodCall, NodeKindMethodDecl}) {
		t.Errorf("rule kinds %v are not deduplicated", got)
	}
	if a.Message != "a" {
		t.Errorf("message must default to summary, got %q", a.Message)
	}
}

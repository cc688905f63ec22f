package rules

import (
	"encoding"
	"fmt"
)

// Severity describes how serious a rule violation is.
type Severity int

const (
	SeverityInvalid Severity = iota
	SeverityInformational
	SeverityWarning

	// SeverityError is the highest level a finding can have without
	// stopping the analysis.
	SeverityError
	SeverityFatal
)

var severityValueMap = map[Severity]string{
	SeverityInformational: "informational",
	SeverityWarning:       "warning",
	SeverityError:         "error",
	SeverityFatal:         "fatal",
}

func (s Severity) String() string {
	v, ok := severityValueMap[s]
	if !ok {
		return fmt.Sprintf("invalid(%d)", s)
	}

	return v
}

var (
	_ encoding.TextMarshaler   = Severity(0)
	_ encoding.TextUnmarshaler = (*Severity)(nil)
)

// MarshalText for JSON output and such.
func (s Severity) MarshalText() ([]byte, error) {
	v, ok := severityValueMap[s]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid severity %d", s)
	}

	return []byte(v), nil
}

// UnmarshalText for setting values with the catalog.
func (s *Severity) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range severityValueMap {
		if v == text {
			*s = k
			return nil
		}
	}

	return fmt.Errorf("unknown severity %q", text)
}

// Category groups rules by the area of concern.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryCorrectness
	CategorySecurity
	CategoryPerformance
	CategoryUsability
	CategoryAccessibility
	CategoryInternationalization
)

var categoryValueMap = map[Category]string{
	CategoryCorrectness:          "correctness",
	CategorySecurity:             "security",
	CategoryPerformance:          "performance",
	CategoryUsability:            "usability",
	CategoryAccessibility:        "accessibility",
	CategoryInternationalization: "internationalization",
}

func (c Category) String() string {
	v, ok := categoryValueMap[c]
	if !ok {
		return fmt.Sprintf("invalid(%d)", c)
	}

	return v
}

var (
	_ encoding.TextMarshaler   = Category(0)
	_ encoding.TextUnmarshaler = (*Category)(nil)
)

func (c Category) MarshalText() ([]byte, error) {
	v, ok := categoryValueMap[c]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid category %d", c)
	}

	return []byte(v), nil
}

func (c *Category) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range categoryValueMap {
		if v == text {
			*c = k
			return nil
		}
	}

	return fmt.Errorf("unknown category %q", text)
}

// NodeKind describes varieties of syntax nodes rules can be subscribed to.
type NodeKind int

const (
	NodeKindInvalid NodeKind = iota

	// NodeKindMethodCall is a call of a function or a method.
	NodeKindMethodCall

	// NodeKindConstructorCall is a composite literal of a named type.
	NodeKindConstructorCall

	// NodeKindMethodDecl is a function or a method declaration.
	NodeKindMethodDecl
)

var nodeKindValueMap = map[NodeKind]string{
	NodeKindMethodCall:      "method-call",
	NodeKindConstructorCall: "constructor-call",
	NodeKindMethodDecl:      "method-decl",
}

func (k NodeKind) String() string {
	v, ok := nodeKindValueMap[k]
	if !ok {
		return fmt.Sprintf("invalid(%d)", k)
	}

	return v
}

var (
	_ encoding.TextMarshaler   = NodeKind(0)
	_ encoding.TextUnmarshaler = (*NodeKind)(nil)
)

func (k NodeKind) MarshalText() ([]byte, error) {
	v, ok := nodeKindValueMap[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid node kind %d", k)
	}

	return []byte(v), nil
}

func (k *NodeKind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for kk, v := range nodeKindValueMap {
		if v == text {
			*k = kk
			return nil
		}
	}

	return fmt.Errorf("unknown node kind %q", text)
}

// Package rules defines call-site rules and the catalog they are served from.
//
// A rule is a pure predicate over a resolved declaration paired with the
// identity it is reported under:
//
//	CarefulNow       usability  7  warning
//	SywLogIsNotUsed  usability  9  error
//
// # Catalog
//
// The builtin catalog is a YAML document embedded into the binary. It is
// loaded and validated once at startup: duplicate ids, unknown enumerations
// and rules with no node kinds are build time defects, so [MustBuiltin] panics
// on them.
//
// Catalog order is the evaluation order. It is not meaningful by itself, but
// it is fixed, which keeps the diagnostic order identical between runs.
//
// # Notes
//
//   - Rule identifiers are stable and must never be renamed.
//   - Rules are immutable and safe to share between goroutines.
package rules

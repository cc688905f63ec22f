// Package report turns rule hits into located diagnostics.
package report
